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

var deletePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)delete\s+(?:task\s+)?["']?(.+?)["']?$`),
	regexp.MustCompile(`(?i)remove\s+(?:task\s+)?["']?(.+?)["']?$`),
}

// confirmPhrase authorizes a multi-task bulk delete, e.g.
// "Delete all tasks in Done - I confirm".
const confirmPhrase = "i confirm"

// handleDelete deletes tasks. A bulk request resolving to more than one
// task does not execute without the confirmation phrase; it fails asking
// for it instead. An empty or ambiguous bulk context never falls back to
// the whole board.
func (in *Interpreter) handleDelete(ctx context.Context, cat *Catalog, ents EntitySet) (*Result, error) {
	bulk := isBulk(ents.RawMessage)

	var targets []model.Task
	if bulk {
		var err error
		targets, err = in.scopedTasks(ctx, ents, false)
		if err != nil {
			return nil, err
		}
	} else if len(ents.Tasks) > 0 {
		targets = ents.Tasks
	} else {
		for _, p := range deletePatterns {
			m := p.FindStringSubmatch(ents.RawMessage)
			if m == nil {
				continue
			}
			if best := fuzzy.BestMatch(m[1], cat.Tasks, taskTitle); best != nil {
				targets = []model.Task{best.Item}
				break
			}
		}
	}

	if len(targets) == 0 {
		return failf("No tasks found to delete. Please specify which task(s) to delete."), nil
	}

	if bulk && len(targets) > 1 && !strings.Contains(fuzzy.Normalize(ents.RawMessage), confirmPhrase) {
		return failf("⚠️ This would delete %d tasks. Please be more specific or confirm by saying \"Delete all tasks in [column/project] - I confirm\".", len(targets)), nil
	}

	deleted := 0
	for _, task := range targets {
		if err := in.store.DeleteTask(ctx, task.ID); err != nil {
			in.log.Warn("delete task failed", zap.String("task", task.ID), zap.Error(err))
			continue
		}
		// Logged after the delete so the activity trail only records
		// deletions that actually happened.
		if err := in.store.LogActivity(ctx, task.ID, "deleted",
			fmt.Sprintf("Task %q was deleted", task.Title)); err != nil {
			in.log.Warn("activity log failed", zap.Error(err))
		}
		deleted++
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("✅ Deleted %d task(s).", deleted),
		Action:  ActionDelete,
		Data:    map[string]any{"deleted_count": deleted},
	}, nil
}
