package interpreter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"taskchat/internal/model"
)

func testCatalog() *Catalog {
	website := model.Project{ID: "p1", Name: "Website"}
	mobile := model.Project{ID: "p2", Name: "Mobile App"}
	return &Catalog{
		Projects: []model.Project{website, mobile},
		Columns: []model.Column{
			{ID: "c1", ProjectID: "p1", Name: "To Do", ProjectName: "Website"},
			{ID: "c2", ProjectID: "p1", Name: "Done", ProjectName: "Website"},
			{ID: "c3", ProjectID: "p2", Name: "To Do", ProjectName: "Mobile App"},
		},
		Labels: []model.Label{
			{ID: "l1", Name: "Bug"},
			{ID: "l2", Name: "Feature"},
		},
		Tasks: []model.Task{
			{ID: "t1", ColumnID: "c1", Title: "Fix login bug"},
			{ID: "t2", ColumnID: "c2", Title: "Write docs"},
		},
	}
}

func TestExtract_Priorities(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		message string
		want    []model.Priority
	}{
		{"show high priority tasks", []model.Priority{model.PriorityHigh}},
		{"set priority low for Write docs", []model.Priority{model.PriorityLow}},
		{"medium priority please", []model.Priority{model.PriorityMedium}},
		// Only the first surface form is recorded.
		{"high priority and priority low", []model.Priority{model.PriorityHigh}},
		{"no priority mentioned", nil},
	}
	for _, tt := range tests {
		got := Extract(tt.message, cat).Priorities
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Extract(%q).Priorities mismatch (-want +got):\n%s", tt.message, diff)
		}
	}
}

func TestExtract_ColumnsAndProjects(t *testing.T) {
	cat := testCatalog()

	// Without a project mention, same-named columns from every project match.
	ents := Extract("show tasks in To Do", cat)
	if len(ents.Columns) != 2 {
		t.Fatalf("expected 2 To Do columns, got %d", len(ents.Columns))
	}

	// Naming the project constrains which columns qualify.
	ents = Extract("show tasks in To Do on Mobile App", cat)
	if len(ents.Projects) != 1 || ents.Projects[0].ID != "p2" {
		t.Fatalf("expected Mobile App project, got %+v", ents.Projects)
	}
	if len(ents.Columns) != 1 || ents.Columns[0].ID != "c3" {
		t.Errorf("expected only the Mobile App To Do column, got %+v", ents.Columns)
	}
}

func TestExtract_TasksAndLabels(t *testing.T) {
	cat := testCatalog()

	ents := Extract("add label bug to fix login bug", cat)
	if len(ents.Labels) != 1 || ents.Labels[0].Name != "Bug" {
		t.Errorf("expected label Bug, got %+v", ents.Labels)
	}
	if len(ents.Tasks) != 1 || ents.Tasks[0].ID != "t1" {
		t.Errorf("expected task t1, got %+v", ents.Tasks)
	}

	// Matching is punctuation and case insensitive.
	ents = Extract("MOVE 'Write Docs!' somewhere", cat)
	if len(ents.Tasks) != 1 || ents.Tasks[0].ID != "t2" {
		t.Errorf("expected task t2, got %+v", ents.Tasks)
	}
}

func TestExtract_RawMessagePreserved(t *testing.T) {
	cat := testCatalog()
	raw := `Rename "Write docs" NOW!`
	if got := Extract(raw, cat).RawMessage; got != raw {
		t.Errorf("RawMessage = %q, want %q", got, raw)
	}
}
