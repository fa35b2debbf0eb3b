package interpreter

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		// Title edits outrank everything else.
		{"Before all To Do tasks add 'Kaustav - '", IntentPrependTitle},
		{"Prepend 'WIP: ' to tasks in To Do", IntentPrependTitle},
		{"After all Done tasks add ' - Completed'", IntentAppendTitle},
		{"Append ' (old)' to tasks in Done", IntentAppendTitle},
		{"Rename 'Fix bug' to 'Fix login bug'", IntentRenameTitle},
		{"Change the title of Fix bug to Fix login bug", IntentRenameTitle},

		// Tag cues outrank create: "add" alone must not win.
		{"tag urgent items as Bug", IntentAddTag},
		{"Add tag Bug to all tasks in To Do", IntentAddTag},
		{"Add label Feature to Write docs", IntentAddTag},
		{"Remove tag Bug from Write docs", IntentRemoveTag},
		{"Remove label Feature from all tasks in Done", IntentRemoveTag},

		{"Mark Write docs as done", IntentMarkDone},
		{"mark everything in review complete", IntentMarkDone},
		{"Move Fix bug to Done", IntentMove},
		{"transfer Write docs to In Progress", IntentMove},
		{"Delete task Write docs", IntentDelete},
		{"remove task Write docs", IntentDelete},
		{"Delete all tasks in Done", IntentDelete},

		{"Create task called Fix bug in To Do", IntentCreate},
		{"new task: update the readme", IntentCreate},
		{"Set priority high for Write docs", IntentUpdate},
		{"modify the due date", IntentUpdate},

		{"Show all tasks", IntentSearch},
		{"list overdue tasks", IntentSearch},
		{"What's in To Do?", IntentSearch},
		{"find high priority tasks", IntentSearch},

		{"how many tasks do we have", IntentInfo},
		{"board summary", IntentInfo},
		{"help", IntentHelp},
		{"blorp", IntentUnknown},
		{"", IntentUnknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.message); got != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.message, got, tt.want)
		}
	}
}

func TestIsBulk(t *testing.T) {
	bulk := []string{
		"Delete all tasks in Done",
		"tag every item as Bug",
		"update each task",
		"batch move these",
	}
	for _, m := range bulk {
		if !isBulk(m) {
			t.Errorf("isBulk(%q) = false, want true", m)
		}
	}

	single := []string{
		"Delete task Write docs",
		"Move Fix bug to Done",
	}
	for _, m := range single {
		if isBulk(m) {
			t.Errorf("isBulk(%q) = true, want false", m)
		}
	}
}
