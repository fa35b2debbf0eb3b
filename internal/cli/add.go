package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskchat/internal/fuzzy"
	"taskchat/internal/interpreter"
	"taskchat/internal/model"
	"taskchat/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAdd,
	}
	cmd.Flags().StringP("column", "C", "", "Column name (required, fuzzy matched)")
	cmd.Flags().StringP("priority", "p", "medium", "Priority: low, medium, high")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("column")
	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	title := strings.Join(args, " ")
	columnName, _ := cmd.Flags().GetString("column")
	priorityStr, _ := cmd.Flags().GetString("priority")
	due, _ := cmd.Flags().GetString("due")

	priority := model.Priority(strings.ToLower(priorityStr))
	if !model.ValidPriorities[priority] {
		exitErr("add", fmt.Errorf("invalid priority %q (use low, medium, or high)", priorityStr))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	col, err := resolveColumn(cmd.Context(), s, columnName)
	if err != nil {
		exitErr("resolve column", err)
	}

	task, err := s.CreateTask(cmd.Context(), interpreter.CreateTaskParams{
		ColumnID: col.ID,
		Title:    title,
		Priority: priority,
		DueDate:  due,
	})
	if err != nil {
		exitErr("create task", err)
	}
	s.LogActivity(cmd.Context(), task.ID, "created", "Task was created")

	fmt.Printf("Added %q to %q (%s)\n", task.Title, task.ColumnName, task.Priority)
}

// resolveColumn fuzzy-matches a name against every column on the board.
func resolveColumn(ctx context.Context, s *store.SQLiteStore, name string) (*model.Column, error) {
	columns, err := s.Columns(ctx, "")
	if err != nil {
		return nil, err
	}
	best := fuzzy.BestMatch(name, columns, func(c model.Column) string { return c.Name })
	if best == nil {
		return nil, fmt.Errorf("no column matches %q", name)
	}
	return &best.Item, nil
}
