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
		Use:   "mv [task title] --to [column]",
		Short: "Move a task to another column",
		Args:  cobra.MinimumNArgs(1),
		Run:   runMv,
	}
	cmd.Flags().String("to", "", "Destination column (required, fuzzy matched)")
	cmd.MarkFlagRequired("to")
	RootCmd.AddCommand(cmd)
}

func runMv(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")
	to, _ := cmd.Flags().GetString("to")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	task, err := resolveTask(cmd.Context(), s, query)
	if err != nil {
		exitErr("resolve task", err)
	}
	col, err := resolveColumn(cmd.Context(), s, to)
	if err != nil {
		exitErr("resolve column", err)
	}

	max, err := s.MaxPosition(cmd.Context(), col.ID)
	if err != nil {
		exitErr("move", err)
	}
	if err := s.MoveTask(cmd.Context(), task.ID, col.ID, max+1000); err != nil {
		exitErr("move", err)
	}
	s.LogActivity(cmd.Context(), task.ID, "moved",
		fmt.Sprintf("Moved from %q to %q", task.ColumnName, col.Name))

	fmt.Printf("Moved %q to %q\n", task.Title, col.Name)
}

// resolveTask fuzzy-matches a title against every task on the board.
func resolveTask(ctx context.Context, s *store.SQLiteStore, query string) (*model.Task, error) {
	tasks, err := s.Tasks(ctx, interpreter.TaskFilter{})
	if err != nil {
		return nil, err
	}
	best := fuzzy.BestMatch(query, tasks, func(t model.Task) string { return t.Title })
	if best == nil {
		return nil, fmt.Errorf("no task matches %q", query)
	}
	return &best.Item, nil
}
