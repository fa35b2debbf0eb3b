package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "init [project name]",
		Short: "Create a project with default columns",
		Args:  cobra.MinimumNArgs(1),
		Run:   runInit,
	}
	cmd.Flags().String("color", "", "Project color (hex)")
	cmd.Flags().String("columns", "To Do,In Progress,Done", "Comma-separated column names")
	RootCmd.AddCommand(cmd)
}

func runInit(cmd *cobra.Command, args []string) {
	name := strings.Join(args, " ")
	color, _ := cmd.Flags().GetString("color")
	columnsStr, _ := cmd.Flags().GetString("columns")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	proj, err := s.CreateProject(cmd.Context(), name, color)
	if err != nil {
		exitErr("create project", err)
	}

	var created []string
	for i, col := range strings.Split(columnsStr, ",") {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		if _, err := s.CreateColumn(cmd.Context(), proj.ID, col, i); err != nil {
			exitErr("create column", err)
		}
		created = append(created, col)
	}

	fmt.Printf("Created project %q with columns: %s\n", proj.Name, strings.Join(created, ", "))
}
