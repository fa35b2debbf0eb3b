package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [task title]",
		Short: "Delete a task",
		Args:  cobra.MinimumNArgs(1),
		Run:   runRm,
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")
	yes, _ := cmd.Flags().GetBool("yes")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	task, err := resolveTask(cmd.Context(), s, query)
	if err != nil {
		exitErr("resolve task", err)
	}

	if !yes {
		fmt.Printf("Delete %q from %q? [y/N] ", task.Title, task.ColumnName)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return
		}
	}

	if err := s.DeleteTask(cmd.Context(), task.ID); err != nil {
		exitErr("delete", err)
	}
	s.LogActivity(cmd.Context(), task.ID, "deleted", "Task was deleted")
	fmt.Printf("Deleted %q\n", task.Title)
}
