package interpreter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"taskchat/internal/fuzzy"
	"taskchat/internal/model"
)

// positionGap leaves room between tasks so later drags don't cascade
// renumbering.
const positionGap = 1000

var movePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)move\s+(?:task\s+)?["']?(.+?)["']?\s+to`),
	regexp.MustCompile(`(?i)transfer\s+["']?(.+?)["']?\s+to`),
	regexp.MustCompile(`(?i)mark\s+["']?(.+?)["']?\s+as`),
}

// handleMove also serves MARK_DONE: "mark X as done" is a move into a
// "Done"-like column.
func (in *Interpreter) handleMove(ctx context.Context, cat *Catalog, ents EntitySet) (*Result, error) {
	var task *model.Task
	if len(ents.Tasks) > 0 {
		task = &ents.Tasks[0]
	} else {
		for _, p := range movePatterns {
			m := p.FindStringSubmatch(ents.RawMessage)
			if m == nil {
				continue
			}
			if best := fuzzy.BestMatch(m[1], cat.Tasks, taskTitle); best != nil {
				task = &best.Item
				break
			}
		}
	}
	if task == nil {
		return failf("Could not find the task. Please specify the task name more clearly."), nil
	}

	var target *model.Column
	for _, c := range ents.Columns {
		if c.ID != task.ColumnID {
			target = &c
			break
		}
	}

	normalized := fuzzy.Normalize(ents.RawMessage)
	if target == nil && (strings.Contains(normalized, "done") || strings.Contains(normalized, "complete")) {
		if m := fuzzy.BestMatch("done", cat.Columns, columnName); m != nil {
			target = &m.Item
		}
	}
	if target == nil {
		return failf("Please specify the target column. Example: \"Move task X to Done\""), nil
	}

	oldName := "Unknown"
	for _, c := range cat.Columns {
		if c.ID == task.ColumnID {
			oldName = c.Name
			break
		}
	}

	maxPos, err := in.store.MaxPosition(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	if err := in.store.MoveTask(ctx, task.ID, target.ID, maxPos+positionGap); err != nil {
		return nil, fmt.Errorf("move task: %w", err)
	}
	if err := in.store.LogActivity(ctx, task.ID, "moved",
		fmt.Sprintf("Moved from %q to %q", oldName, target.Name)); err != nil {
		in.log.Warn("activity log failed", zap.Error(err))
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("✅ Moved %q from %q to %q.", task.Title, oldName, target.Name),
		Action:  ActionMove,
		Data:    map[string]any{"task_id": task.ID, "column_id": target.ID},
	}, nil
}
