package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show board statistics",
		Run:   runSummary,
	}
	RootCmd.AddCommand(cmd)
}

func runSummary(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sum, err := s.Summary(cmd.Context())
	if err != nil {
		exitErr("summary", err)
	}

	if formatFlag == "json" {
		b, _ := json.MarshalIndent(sum, "", "  ")
		fmt.Println(string(b))
		return
	}

	fmt.Printf("Total tasks:   %d\n", sum.TotalTasks)
	fmt.Printf("Overdue:       %d\n", sum.Overdue)
	fmt.Printf("Due today:     %d\n", sum.DueToday)
	fmt.Printf("High priority: %d\n", sum.HighPriority)
	if len(sum.Projects) > 0 {
		fmt.Println("Projects:")
		for _, p := range sum.Projects {
			fmt.Printf("  %-20s %d\n", p.Name, p.TaskCount)
		}
	}
}
