package interpreter

import (
	"fmt"
	"strings"

	"taskchat/internal/model"
)

const maxListed = 15

func formatTask(t model.Task) string {
	labelText := ""
	if len(t.Labels) > 0 {
		names := make([]string, len(t.Labels))
		for i, l := range t.Labels {
			names[i] = l.Name
		}
		labelText = fmt.Sprintf(" [%s]", strings.Join(names, ", "))
	}
	dueText := ""
	if t.DueDate != "" {
		dueText = fmt.Sprintf(" (Due: %s)", t.DueDate)
	}
	return fmt.Sprintf("• %q in %s (%s)%s%s - %s priority",
		t.Title, t.ColumnName, t.ProjectName, labelText, dueText, t.Priority)
}

func formatTaskList(tasks []model.Task, title string) string {
	if len(tasks) == 0 {
		return fmt.Sprintf("No %s found.", strings.ToLower(title))
	}

	shown := tasks
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	lines := make([]string, len(shown))
	for i, t := range shown {
		lines[i] = formatTask(t)
	}

	out := fmt.Sprintf("**%s** (%d found):\n\n%s", title, len(tasks), strings.Join(lines, "\n"))
	if len(tasks) > maxListed {
		out += fmt.Sprintf("\n\n...and %d more.", len(tasks)-maxListed)
	}
	return out
}
