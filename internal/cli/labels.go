package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List labels",
		Run:   runLabels,
	}
	RootCmd.AddCommand(cmd)

	tag := &cobra.Command{
		Use:   "tag [task title] --label [name]",
		Short: "Attach a label to a task, creating the label if needed",
		Args:  cobra.MinimumNArgs(1),
		Run:   runTag,
	}
	tag.Flags().String("label", "", "Label name (required)")
	tag.Flags().String("color", "", "Label color for new labels (hex)")
	tag.MarkFlagRequired("label")
	RootCmd.AddCommand(tag)
}

func runLabels(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	labels, err := s.Labels(cmd.Context())
	if err != nil {
		exitErr("labels", err)
	}

	if formatFlag == "json" {
		b, _ := json.MarshalIndent(labels, "", "  ")
		fmt.Println(string(b))
		return
	}
	if len(labels) == 0 {
		fmt.Println("No labels.")
		return
	}
	for _, l := range labels {
		fmt.Printf("%-20s %s\n", l.Name, l.Color)
	}
}

func runTag(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")
	name, _ := cmd.Flags().GetString("label")
	color, _ := cmd.Flags().GetString("color")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	task, err := resolveTask(cmd.Context(), s, query)
	if err != nil {
		exitErr("resolve task", err)
	}

	label, err := s.LabelByName(cmd.Context(), name)
	if err != nil {
		exitErr("lookup label", err)
	}
	if label == nil {
		label, err = s.CreateLabel(cmd.Context(), name, color)
		if err != nil {
			exitErr("create label", err)
		}
	}

	if err := s.AddLabel(cmd.Context(), task.ID, label.ID); err != nil {
		exitErr("tag", err)
	}
	s.LogActivity(cmd.Context(), task.ID, "label_added",
		fmt.Sprintf("Label %q was added", label.Name))

	fmt.Printf("Tagged %q with %q\n", task.Title, label.Name)
}
