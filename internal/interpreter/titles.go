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

// Text extraction for PREPEND_TITLE, in order: quoted span adjacent to a
// trigger phrase, then any quoted span, then a trailing-keyword strip.
var prependPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:before\s+all|prepend|prefix|add\s+before)\s+.*?(?:task|tasks)?\s*(?:add\s+)?["']([^"']+)["']`),
	regexp.MustCompile(`(?i)(?:add|prepend|prefix)\s+["']([^"']+)["']\s+(?:before|to\s+beginning)`),
	regexp.MustCompile(`(?i)["']([^"']+)["']\s+(?:before|prepend|prefix)`),
	regexp.MustCompile(`(?i)before\s+all\s+.*?task.*?add\s+["']?([^"']+?)["']?\s*$`),
	regexp.MustCompile(`(?i)add\s+["']([^"']+)["']`),
}

var appendPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:after\s+all|append|suffix|add\s+after)\s+.*?(?:task|tasks)?\s*(?:add\s+)?["']([^"']+)["']`),
	regexp.MustCompile(`(?i)(?:add|append|suffix)\s+["']([^"']+)["']\s+(?:after|to\s+end)`),
	regexp.MustCompile(`(?i)["']([^"']+)["']\s+(?:after|append|suffix)`),
	regexp.MustCompile(`(?i)add\s+["']([^"']+)["']`),
}

var (
	anyQuoted       = regexp.MustCompile(`["']([^"']+)["']`)
	prependKeyword  = regexp.MustCompile(`(?i)(?:add|prepend)\s+(.+?)(?:\s+to\s+|\s+before\s+|$)`)
	leadingStopword = regexp.MustCompile(`(?i)^(?:before|all|task|tasks|in|to)\s+`)
)

// extractEditText keeps the captured text verbatim: quoted spacing like
// 'Kaustav - ' is part of the requested prefix.
func extractEditText(message string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(message); m != nil && strings.TrimSpace(m[1]) != "" {
			return m[1]
		}
	}
	if m := anyQuoted.FindStringSubmatch(message); m != nil && strings.TrimSpace(m[1]) != "" {
		return m[1]
	}
	return ""
}

func (in *Interpreter) handlePrependTitle(ctx context.Context, ents EntitySet) (*Result, error) {
	text := extractEditText(ents.RawMessage, prependPatterns)
	if text == "" {
		if m := prependKeyword.FindStringSubmatch(ents.RawMessage); m != nil {
			stripped := strings.TrimSpace(m[1])
			for {
				next := leadingStopword.ReplaceAllString(stripped, "")
				if next == stripped {
					break
				}
				stripped = strings.TrimSpace(next)
			}
			if len(stripped) > 2 {
				text = stripped
			}
		}
	}
	if text == "" {
		return failf("Please specify the text to add. Example: \"Before all To Do tasks add 'Kaustav - '\""), nil
	}

	return in.editTitles(ctx, ents, text, "prefix")
}

func (in *Interpreter) handleAppendTitle(ctx context.Context, ents EntitySet) (*Result, error) {
	text := extractEditText(ents.RawMessage, appendPatterns)
	if text == "" {
		return failf("Please specify the text to add. Example: \"After all Done tasks add ' - Completed'\""), nil
	}

	return in.editTitles(ctx, ents, text, "suffix")
}

// editTitles applies a prefix or suffix to every task in the matched
// columns (else projects). Tasks already carrying the text are skipped,
// so re-running the same command is a no-op; the count reflects only
// tasks actually modified.
func (in *Interpreter) editTitles(ctx context.Context, ents EntitySet, text, mode string) (*Result, error) {
	targets, err := in.scopedTasks(ctx, ents, false)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return failf("No tasks found. Please specify a column or project. Example: \"Before all To Do tasks add 'Prefix - '\""), nil
	}

	updated := 0
	for _, task := range targets {
		var newTitle, detail string
		if mode == "prefix" {
			if strings.HasPrefix(task.Title, text) {
				continue
			}
			newTitle = text + task.Title
			detail = fmt.Sprintf("Title prefixed with %q", text)
		} else {
			if strings.HasSuffix(task.Title, text) {
				continue
			}
			newTitle = task.Title + text
			detail = fmt.Sprintf("Title suffixed with %q", text)
		}

		if err := in.store.UpdateTask(ctx, task.ID, UpdateTaskParams{Title: &newTitle}); err != nil {
			in.log.Warn("title edit failed", zap.String("task", task.ID), zap.Error(err))
			continue
		}
		in.store.LogActivity(ctx, task.ID, "updated", detail)
		updated++
	}

	position := "before"
	key := "prefix"
	if mode == "suffix" {
		position = "after"
		key = "suffix"
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("✅ Added %q %s %d task title(s)%s.", text, position, updated, scopeContext(ents)),
		Action:  ActionUpdate,
		Data:    map[string]any{key: text, "task_count": updated},
	}, nil
}

// "rename X to Y" / "rename 'X' to 'Y'" / "change title of X to Y".
var renamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)["']([^"']+)["']\s+to\s+["']([^"']+)["']`),
	regexp.MustCompile(`(?i)(?:rename|retitle)\s+(?:task\s+)?(.+?)\s+to\s+(.+)$`),
	regexp.MustCompile(`(?i)(?:change|update)\s+(?:the\s+)?title\s+(?:of\s+)?(.+?)\s+to\s+(.+)$`),
}

// handleRename changes one task's title. The classifier has always
// recognized rename cues; this gives them a real handler.
func (in *Interpreter) handleRename(ctx context.Context, cat *Catalog, ents EntitySet) (*Result, error) {
	var query, newTitle string
	for _, p := range renamePatterns {
		if m := p.FindStringSubmatch(ents.RawMessage); m != nil {
			query = strings.TrimSpace(m[1])
			newTitle = strings.Trim(strings.TrimSpace(m[2]), `"'`)
			break
		}
	}
	if newTitle == "" {
		return failf("Please specify the new title. Example: \"Rename 'Fix bug' to 'Fix login bug'\""), nil
	}

	var task *model.Task
	if len(ents.Tasks) > 0 {
		task = &ents.Tasks[0]
	} else if best := fuzzy.BestMatch(query, cat.Tasks, taskTitle); best != nil {
		task = &best.Item
	}
	if task == nil {
		return failf("Could not find the task to rename. Please specify the task name more clearly."), nil
	}

	if err := in.store.UpdateTask(ctx, task.ID, UpdateTaskParams{Title: &newTitle}); err != nil {
		return nil, fmt.Errorf("rename task: %w", err)
	}
	if err := in.store.LogActivity(ctx, task.ID, "updated",
		fmt.Sprintf("Title changed from %q to %q", task.Title, newTitle)); err != nil {
		in.log.Warn("activity log failed", zap.Error(err))
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("✅ Renamed %q to %q.", task.Title, newTitle),
		Action:  ActionUpdate,
		Data:    map[string]any{"task_id": task.ID, "title": newTitle},
	}, nil
}
