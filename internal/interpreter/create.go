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

// Title extraction for CREATE, tried in order. Quoted text adjacent to
// the trigger verb is the most reliable signal.
var createTitlePatterns = []*regexp.Regexp{
	// create task "Fix bug" / add a task 'Fix bug'
	regexp.MustCompile(`(?i)(?:create|add|new|make)\s+(?:a\s+)?task\s+["']([^"']+)["']`),
	// create task called Fix bug in To Do
	regexp.MustCompile(`(?i)(?:called|named|titled)\s+["']?(.+?)["']?\s+(?:in\s+(?:the\s+)?(?:column\s+)?)`),
	// task "Fix bug" anywhere
	regexp.MustCompile(`(?i)task\s+["']([^"']+)["']`),
}

// "create a task in done" names a column but no title.
var createNoTitle = regexp.MustCompile(`(?i)(?:create|add|new|make)\s+(?:a\s+)?task\s+in\s+`)

// Canonical column names to try when the message names a column the
// extractor missed (typo'd or partial).
var canonicalColumns = []string{"to do", "todo", "in progress", "done", "testing", "review"}

func (in *Interpreter) handleCreate(ctx context.Context, ents EntitySet) (*Result, error) {
	var title string
	for _, p := range createTitlePatterns {
		if m := p.FindStringSubmatch(ents.RawMessage); m != nil {
			title = strings.TrimSpace(m[1])
			break
		}
	}

	if title == "" {
		if createNoTitle.MatchString(ents.RawMessage) {
			return failf("Please provide a task title. Use quotes for the title, like:\n• \"Create task 'Fix login bug' in Done\"\n• \"Create task called Fix bug in To Do\""), nil
		}
		return failf("Please provide a task title. Example:\n• \"Create task 'Fix login bug' in To Do\"\n• \"Create task called Fix bug in Done in My Project\""), nil
	}

	targetColumn, err := in.resolveCreateColumn(ctx, ents)
	if err != nil {
		return nil, err
	}
	if targetColumn == nil {
		return failf("No column found. Please create a project with columns first."), nil
	}

	priority := model.PriorityMedium
	if len(ents.Priorities) > 0 {
		priority = ents.Priorities[0]
	}

	task, err := in.store.CreateTask(ctx, CreateTaskParams{
		ColumnID: targetColumn.ID,
		Title:    title,
		Priority: priority,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	if err := in.store.LogActivity(ctx, task.ID, "created", "Task was created"); err != nil {
		in.log.Warn("activity log failed", zap.Error(err))
	}

	for _, label := range ents.Labels {
		if err := in.store.AddLabel(ctx, task.ID, label.ID); err != nil {
			in.log.Warn("attach label failed", zap.Error(err))
			continue
		}
		in.store.LogActivity(ctx, task.ID, "label_added", fmt.Sprintf("Label %q was added", label.Name))
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("✅ Created task %q in %q column (%s).", title, targetColumn.Name, targetColumn.ProjectName),
		Action:  ActionCreate,
		Data:    task,
	}, nil
}

// resolveCreateColumn picks where a new task lands: an explicit column in
// the matched project, else a canonical column-name keyword fuzzy-matched
// against that project's columns, else the project's first column. With
// no project context: the extracted column, else a global "to do"-like
// column, else the first column on the board. Nil means no columns exist.
func (in *Interpreter) resolveCreateColumn(ctx context.Context, ents EntitySet) (*model.Column, error) {
	if len(ents.Projects) > 0 {
		proj := ents.Projects[0]
		projectColumns, err := in.store.Columns(ctx, proj.ID)
		if err != nil {
			return nil, err
		}

		for _, pc := range projectColumns {
			for _, ec := range ents.Columns {
				if ec.ID == pc.ID {
					return &pc, nil
				}
			}
		}

		normalized := fuzzy.Normalize(ents.RawMessage)
		for _, name := range canonicalColumns {
			if !strings.Contains(normalized, name) {
				continue
			}
			if m := fuzzy.BestMatch(name, projectColumns, columnName); m != nil {
				return &m.Item, nil
			}
		}

		if len(projectColumns) > 0 {
			return &projectColumns[0], nil
		}
		return nil, nil
	}

	if len(ents.Columns) > 0 {
		return &ents.Columns[0], nil
	}

	allColumns, err := in.store.Columns(ctx, "")
	if err != nil {
		return nil, err
	}
	if m := fuzzy.BestMatch("to do", allColumns, columnName); m != nil {
		return &m.Item, nil
	}
	if len(allColumns) > 0 {
		return &allColumns[0], nil
	}
	return nil, nil
}

func columnName(c model.Column) string { return c.Name }

func taskTitle(t model.Task) string { return t.Title }
