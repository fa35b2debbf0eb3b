package interpreter

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"taskchat/internal/fuzzy"
	"taskchat/internal/model"
)

// defaultLabelColor is applied to labels created on the fly from chat.
const defaultLabelColor = "#6B7280"

// Label name extraction when the extractor found no existing label:
// "add tag Bug", "tag- Bug", "with label urgent".
var labelNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)add\s+(?:tag|label)\s*[-:]?\s*(\w+)`),
	regexp.MustCompile(`(?i)tag\s*[-:]?\s*(\w+)`),
	regexp.MustCompile(`(?i)label\s*[-:]?\s*(\w+)`),
	regexp.MustCompile(`(?i)with\s+(?:tag|label)\s*(\w+)`),
}

func (in *Interpreter) handleAddLabel(ctx context.Context, cat *Catalog, ents EntitySet) (*Result, error) {
	// Creating a missing label waits until targets are known so a failed
	// request leaves the store untouched.
	var label *model.Label
	var labelName string
	if len(ents.Labels) > 0 {
		label = &ents.Labels[0]
	} else {
		for _, p := range labelNamePatterns {
			if m := p.FindStringSubmatch(ents.RawMessage); m != nil {
				labelName = m[1]
				break
			}
		}
		if labelName != "" {
			existing, err := in.store.LabelByName(ctx, labelName)
			if err != nil {
				return nil, err
			}
			label = existing
		}
	}
	if label == nil && labelName == "" {
		return failf("Please specify a label name. Example: \"Add tag Bug to all tasks in To Do\""), nil
	}

	var targets []model.Task
	if isBulk(ents.RawMessage) {
		// Tagging the whole board is allowed when no narrower context
		// was given; tagging is cheap to undo.
		var err error
		targets, err = in.scopedTasks(ctx, ents, true)
		if err != nil {
			return nil, err
		}
	} else if len(ents.Tasks) > 0 {
		targets = ents.Tasks
	} else if best := fuzzy.BestMatch(ents.RawMessage, cat.Tasks, taskTitle); best != nil {
		targets = []model.Task{best.Item}
	}

	if len(targets) == 0 {
		return failf("No tasks found to add the label to. Please specify a task or column."), nil
	}

	if label == nil {
		created, err := in.store.CreateLabel(ctx, labelName, defaultLabelColor)
		if err != nil {
			return nil, fmt.Errorf("create label: %w", err)
		}
		label = created
	}

	added := 0
	for _, task := range targets {
		if err := in.store.AddLabel(ctx, task.ID, label.ID); err != nil {
			in.log.Warn("add label failed", zap.String("task", task.ID), zap.Error(err))
			continue
		}
		in.store.LogActivity(ctx, task.ID, "label_added", fmt.Sprintf("Label %q was added", label.Name))
		added++
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("✅ Added label %q to %d task(s)%s.", label.Name, added, scopeContext(ents)),
		Action:  ActionUpdate,
		Data:    map[string]any{"label_id": label.ID, "task_count": added},
	}, nil
}

func (in *Interpreter) handleRemoveLabel(ctx context.Context, ents EntitySet) (*Result, error) {
	if len(ents.Labels) == 0 {
		return failf("Please specify which label to remove. Example: \"Remove label Bug from task X\""), nil
	}
	label := ents.Labels[0]

	var targets []model.Task
	if isBulk(ents.RawMessage) {
		var err error
		targets, err = in.scopedTasks(ctx, ents, false)
		if err != nil {
			return nil, err
		}
	} else if len(ents.Tasks) > 0 {
		targets = ents.Tasks
	}

	if len(targets) == 0 {
		return failf("No tasks found. Please specify tasks to remove the label from."), nil
	}

	removed := 0
	for _, task := range targets {
		ok, err := in.store.RemoveLabel(ctx, task.ID, label.ID)
		if err != nil {
			in.log.Warn("remove label failed", zap.String("task", task.ID), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		in.store.LogActivity(ctx, task.ID, "label_removed", fmt.Sprintf("Label %q was removed", label.Name))
		removed++
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("✅ Removed label %q from %d task(s).", label.Name, removed),
		Action:  ActionUpdate,
		Data:    map[string]any{"label_id": label.ID, "task_count": removed},
	}, nil
}

func (in *Interpreter) handleUpdatePriority(ctx context.Context, ents EntitySet) (*Result, error) {
	if len(ents.Priorities) == 0 {
		return failf("Please specify a priority level (high, medium, or low)."), nil
	}
	priority := ents.Priorities[0]

	var targets []model.Task
	if isBulk(ents.RawMessage) {
		var err error
		targets, err = in.scopedTasks(ctx, ents, false)
		if err != nil {
			return nil, err
		}
	} else if len(ents.Tasks) > 0 {
		targets = ents.Tasks
	}

	if len(targets) == 0 {
		return failf("No tasks found. Please specify which task(s) to update."), nil
	}

	updated := 0
	for _, task := range targets {
		if err := in.store.UpdateTask(ctx, task.ID, UpdateTaskParams{Priority: &priority}); err != nil {
			in.log.Warn("update priority failed", zap.String("task", task.ID), zap.Error(err))
			continue
		}
		in.store.LogActivity(ctx, task.ID, "priority_changed",
			fmt.Sprintf("Priority changed from %q to %q", task.Priority, priority))
		updated++
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("✅ Updated priority to %q for %d task(s).", priority, updated),
		Action:  ActionUpdate,
		Data:    map[string]any{"priority": priority, "task_count": updated},
	}, nil
}
