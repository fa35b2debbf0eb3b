// Package model defines the core board data types.
package model

import "time"

// Priority is a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities are the allowed priority levels.
var ValidPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// Project is the top-level board container.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Column is an ordered lane of tasks within a project.
type Column struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Position    int    `json:"position"`
	ProjectName string `json:"project_name,omitempty"`
}

// Label is a named tag attachable to many tasks.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Task is a single card on the board. ColumnName, ProjectID and
// ProjectName are denormalized from the owning column for display.
type Task struct {
	ID          string    `json:"id"`
	ColumnID    string    `json:"column_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	DueDate     string    `json:"due_date,omitempty"` // YYYY-MM-DD, empty when unset
	Position    int       `json:"position"`
	Labels      []Label   `json:"labels,omitempty"`
	ColumnName  string    `json:"column_name,omitempty"`
	ProjectID   string    `json:"project_id,omitempty"`
	ProjectName string    `json:"project_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Activity is one entry in a task's activity log.
type Activity struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectCount holds a per-project task tally for summaries.
type ProjectCount struct {
	Name      string `json:"name"`
	TaskCount int    `json:"task_count"`
}

// BoardSummary holds board-wide statistics.
type BoardSummary struct {
	Projects     []ProjectCount `json:"projects"`
	TotalTasks   int            `json:"total_tasks"`
	Overdue      int            `json:"overdue"`
	DueToday     int            `json:"due_today"`
	HighPriority int            `json:"high_priority"`
}
