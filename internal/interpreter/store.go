package interpreter

import (
	"context"

	"taskchat/internal/model"
)

// TaskFilter narrows a task listing. Zero values mean "no filter".
type TaskFilter struct {
	ColumnID  string
	ProjectID string
	LabelName string
	Priority  model.Priority
	Overdue   bool
	DueToday  bool
	Limit     int
}

// CreateTaskParams holds parameters for creating a task.
type CreateTaskParams struct {
	ColumnID string
	Title    string
	Priority model.Priority
	DueDate  string
}

// UpdateTaskParams holds optional task field updates. Nil means unchanged.
type UpdateTaskParams struct {
	Title    *string
	Priority *model.Priority
	DueDate  *string
}

// TaskStore is the board storage collaborator the interpreter consumes.
// The interpreter never retries failed calls; bulk handlers report
// per-item outcomes as counts instead.
type TaskStore interface {
	Projects(ctx context.Context) ([]model.Project, error)
	// Columns lists columns, restricted to one project when projectID is
	// non-empty, ordered by project then position.
	Columns(ctx context.Context, projectID string) ([]model.Column, error)
	Labels(ctx context.Context) ([]model.Label, error)
	LabelByName(ctx context.Context, name string) (*model.Label, error)
	Tasks(ctx context.Context, f TaskFilter) ([]model.Task, error)
	MaxPosition(ctx context.Context, columnID string) (int, error)

	CreateTask(ctx context.Context, p CreateTaskParams) (*model.Task, error)
	UpdateTask(ctx context.Context, id string, p UpdateTaskParams) error
	MoveTask(ctx context.Context, id, columnID string, position int) error
	DeleteTask(ctx context.Context, id string) error
	CreateLabel(ctx context.Context, name, color string) (*model.Label, error)
	AddLabel(ctx context.Context, taskID, labelID string) error
	// RemoveLabel reports whether the label was actually attached.
	RemoveLabel(ctx context.Context, taskID, labelID string) (bool, error)
	LogActivity(ctx context.Context, taskID, action, details string) error
	Summary(ctx context.Context) (*model.BoardSummary, error)
}

// Catalog is the read-only snapshot of board entities available to one
// interpreter invocation.
type Catalog struct {
	Projects []model.Project
	Columns  []model.Column
	Labels   []model.Label
	Tasks    []model.Task
}

func (in *Interpreter) snapshot(ctx context.Context) (*Catalog, error) {
	projects, err := in.store.Projects(ctx)
	if err != nil {
		return nil, err
	}
	columns, err := in.store.Columns(ctx, "")
	if err != nil {
		return nil, err
	}
	labels, err := in.store.Labels(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := in.store.Tasks(ctx, TaskFilter{})
	if err != nil {
		return nil, err
	}
	return &Catalog{Projects: projects, Columns: columns, Labels: labels, Tasks: tasks}, nil
}
