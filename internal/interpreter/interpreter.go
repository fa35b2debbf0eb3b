// Package interpreter turns free-text task-management commands into
// operations against a task store. Matching is deterministic keyword and
// pattern work; there is no tokenizer, no learned model, and no
// multi-turn state. Every message is resolved in a single pass from its
// own text plus a snapshot of current board entities.
package interpreter

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"taskchat/internal/model"
)

// Action tags the kind of operation a Result reflects.
type Action string

const (
	ActionError   Action = "error"
	ActionUnknown Action = "unknown"
	ActionHelp    Action = "help"
	ActionInfo    Action = "info"
	ActionSearch  Action = "search"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionMove    Action = "move"
	ActionDelete  Action = "delete"
)

// Result is the sole output contract to the caller. A Result with
// Success false never reflects a completed mutation: handlers validate
// before writing.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Action  Action `json:"action,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func failf(format string, args ...any) *Result {
	return &Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// Interpreter is stateless between calls; it is safe for concurrent use
// as long as the TaskStore is.
type Interpreter struct {
	store TaskStore
	log   *zap.Logger
}

// New returns an interpreter over the given store. A nil logger disables
// logging.
func New(store TaskStore, log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{store: store, log: log}
}

// Process interprets one message and performs the requested operation.
// Store faults never escape: they come back as a failure Result.
func (in *Interpreter) Process(ctx context.Context, message string) *Result {
	res, err := in.process(ctx, message)
	if err != nil {
		in.log.Error("message processing failed", zap.Error(err))
		return &Result{
			Success: false,
			Message: fmt.Sprintf("Sorry, something went wrong: %v", err),
			Action:  ActionError,
		}
	}
	return res
}

func (in *Interpreter) process(ctx context.Context, message string) (*Result, error) {
	cat, err := in.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	ents := Extract(message, cat)
	intent := Detect(message)

	in.log.Debug("classified message",
		zap.Stringer("intent", intent),
		zap.Int("projects", len(ents.Projects)),
		zap.Int("columns", len(ents.Columns)),
		zap.Int("labels", len(ents.Labels)),
		zap.Int("tasks", len(ents.Tasks)))

	switch intent {
	case IntentHelp:
		return in.handleHelp(), nil
	case IntentInfo:
		return in.handleInfo(ctx)
	case IntentSearch:
		return in.handleSearch(ctx, ents)
	case IntentCreate:
		return in.handleCreate(ctx, ents)
	case IntentMove, IntentMarkDone:
		return in.handleMove(ctx, cat, ents)
	case IntentAddTag:
		return in.handleAddLabel(ctx, cat, ents)
	case IntentRemoveTag:
		return in.handleRemoveLabel(ctx, ents)
	case IntentDelete:
		return in.handleDelete(ctx, cat, ents)
	case IntentPrependTitle:
		return in.handlePrependTitle(ctx, ents)
	case IntentAppendTitle:
		return in.handleAppendTitle(ctx, ents)
	case IntentRenameTitle:
		return in.handleRename(ctx, cat, ents)
	case IntentUpdate:
		if len(ents.Priorities) > 0 {
			return in.handleUpdatePriority(ctx, ents)
		}
		if len(ents.Labels) > 0 {
			return in.handleAddLabel(ctx, cat, ents)
		}
		return failf("What would you like to update? You can change priority, add labels, or move tasks."), nil
	default:
		return in.handleUnknown(ctx, cat, ents)
	}
}

// handleUnknown guesses from extracted entities before giving up.
func (in *Interpreter) handleUnknown(ctx context.Context, cat *Catalog, ents EntitySet) (*Result, error) {
	lower := strings.ToLower(ents.RawMessage)
	if len(ents.Labels) > 0 && (strings.Contains(lower, "add") || strings.Contains(lower, "tag")) {
		return in.handleAddLabel(ctx, cat, ents)
	}
	if len(ents.Tasks) > 0 || len(ents.Columns) > 0 {
		return in.handleSearch(ctx, ents)
	}

	return &Result{
		Success: false,
		Message: `I'm not sure what you want to do. Try being more specific or say "help" to see what I can do!

**Quick examples:**
• "Add tag Bug to all tasks in To Do"
• "Show all high priority tasks"
• "Move task X to Done"
• "Create task called Fix bug in To Do"`,
		Action: ActionUnknown,
	}, nil
}

// scopedTasks resolves the target set for bulk operations: tasks in the
// matched columns, else tasks in the matched projects, else every task
// on the board when wholeBoard is allowed.
func (in *Interpreter) scopedTasks(ctx context.Context, ents EntitySet, wholeBoard bool) ([]model.Task, error) {
	var tasks []model.Task
	switch {
	case len(ents.Columns) > 0:
		for _, col := range ents.Columns {
			ts, err := in.store.Tasks(ctx, TaskFilter{ColumnID: col.ID})
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, ts...)
		}
	case len(ents.Projects) > 0:
		for _, proj := range ents.Projects {
			ts, err := in.store.Tasks(ctx, TaskFilter{ProjectID: proj.ID})
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, ts...)
		}
	case wholeBoard:
		return in.store.Tasks(ctx, TaskFilter{})
	}
	return tasks, nil
}

// scopeContext names the column or project a bulk result applied to.
func scopeContext(ents EntitySet) string {
	if len(ents.Columns) > 0 {
		return fmt.Sprintf(" in %q column", ents.Columns[0].Name)
	}
	if len(ents.Projects) > 0 {
		return fmt.Sprintf(" in %q project", ents.Projects[0].Name)
	}
	return ""
}
