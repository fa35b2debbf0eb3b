package interpreter

import (
	"context"
	"fmt"
	"strings"

	"taskchat/internal/fuzzy"
)

// searchLimit caps filtered searches. The all-tasks fallback is unbounded.
const searchLimit = 50

// handleSearch is read-only. Filters are tried most-specific first:
// overdue, due today, priority, label, project, column, then everything.
func (in *Interpreter) handleSearch(ctx context.Context, ents EntitySet) (*Result, error) {
	normalized := fuzzy.Normalize(ents.RawMessage)

	searchResult := func(f TaskFilter, title string) (*Result, error) {
		tasks, err := in.store.Tasks(ctx, f)
		if err != nil {
			return nil, err
		}
		return &Result{
			Success: true,
			Message: formatTaskList(tasks, title),
			Action:  ActionSearch,
			Data:    tasks,
		}, nil
	}

	if strings.Contains(normalized, "overdue") {
		return searchResult(TaskFilter{Overdue: true, Limit: searchLimit}, "Overdue Tasks")
	}
	if strings.Contains(normalized, "today") {
		return searchResult(TaskFilter{DueToday: true, Limit: searchLimit}, "Tasks Due Today")
	}
	if len(ents.Priorities) > 0 {
		p := ents.Priorities[0]
		title := fmt.Sprintf("%s Priority Tasks", capitalize(string(p)))
		return searchResult(TaskFilter{Priority: p, Limit: searchLimit}, title)
	}
	if len(ents.Labels) > 0 {
		l := ents.Labels[0]
		return searchResult(TaskFilter{LabelName: l.Name, Limit: searchLimit}, fmt.Sprintf("Tasks with %q label", l.Name))
	}
	if len(ents.Projects) > 0 {
		p := ents.Projects[0]
		return searchResult(TaskFilter{ProjectID: p.ID, Limit: searchLimit}, fmt.Sprintf("Tasks in %s", p.Name))
	}
	if len(ents.Columns) > 0 {
		c := ents.Columns[0]
		return searchResult(TaskFilter{ColumnID: c.ID, Limit: searchLimit}, fmt.Sprintf("Tasks in %q column", c.Name))
	}

	return searchResult(TaskFilter{}, "All Tasks")
}

// handleInfo summarizes the whole board.
func (in *Interpreter) handleInfo(ctx context.Context) (*Result, error) {
	sum, err := in.store.Summary(ctx)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("## Project Summary\n\n")
	fmt.Fprintf(&b, "**Projects:** %d\n", len(sum.Projects))
	fmt.Fprintf(&b, "**Total Tasks:** %d\n", sum.TotalTasks)
	fmt.Fprintf(&b, "**Overdue:** %d\n", sum.Overdue)
	fmt.Fprintf(&b, "**Due Today:** %d\n", sum.DueToday)
	fmt.Fprintf(&b, "**High Priority:** %d\n\n", sum.HighPriority)
	b.WriteString("### Projects:\n")
	for _, p := range sum.Projects {
		fmt.Fprintf(&b, "• **%s**: %d tasks\n", p.Name, p.TaskCount)
	}

	return &Result{
		Success: true,
		Message: b.String(),
		Action:  ActionInfo,
		Data:    sum,
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
