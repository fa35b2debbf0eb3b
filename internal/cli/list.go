package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskchat/internal/interpreter"
	"taskchat/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Run:   runList,
	}
	cmd.Flags().StringP("column", "C", "", "Filter by column name (fuzzy matched)")
	cmd.Flags().StringP("priority", "p", "", "Filter by priority")
	cmd.Flags().String("label", "", "Filter by label name")
	cmd.Flags().Bool("overdue", false, "Only overdue tasks")
	cmd.Flags().Bool("today", false, "Only tasks due today")
	cmd.Flags().IntP("limit", "l", 0, "Max results")
	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	columnName, _ := cmd.Flags().GetString("column")
	priority, _ := cmd.Flags().GetString("priority")
	label, _ := cmd.Flags().GetString("label")
	overdue, _ := cmd.Flags().GetBool("overdue")
	today, _ := cmd.Flags().GetBool("today")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	filter := interpreter.TaskFilter{
		Priority:  model.Priority(strings.ToLower(priority)),
		LabelName: label,
		Overdue:   overdue,
		DueToday:  today,
		Limit:     limit,
	}
	if columnName != "" {
		col, err := resolveColumn(cmd.Context(), s, columnName)
		if err != nil {
			exitErr("resolve column", err)
		}
		filter.ColumnID = col.ID
	}

	tasks, err := s.Tasks(cmd.Context(), filter)
	if err != nil {
		exitErr("list", err)
	}

	if formatFlag == "json" {
		b, _ := json.MarshalIndent(tasks, "", "  ")
		fmt.Println(string(b))
		return
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}
	for _, t := range tasks {
		line := fmt.Sprintf("%-26s  %-14s  %-6s", t.Title, t.ColumnName, t.Priority)
		if t.DueDate != "" {
			line += "  due " + t.DueDate
		}
		if len(t.Labels) > 0 {
			var names []string
			for _, l := range t.Labels {
				names = append(names, l.Name)
			}
			line += "  [" + strings.Join(names, ", ") + "]"
		}
		fmt.Println(line)
	}
}
