package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"taskchat/internal/interpreter"
	"taskchat/internal/model"
)

// Tasks returns tasks matching the filter, newest first, with column and
// project names joined in and labels attached.
func (s *SQLiteStore) Tasks(ctx context.Context, f interpreter.TaskFilter) ([]model.Task, error) {
	where := []string{"1=1"}
	var args []interface{}

	if f.ColumnID != "" {
		where = append(where, "t.column_id = ?")
		args = append(args, f.ColumnID)
	}
	if f.ProjectID != "" {
		where = append(where, "c.project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.Priority != "" {
		where = append(where, "t.priority = ?")
		args = append(args, string(f.Priority))
	}
	if f.LabelName != "" {
		where = append(where, `t.id IN (
			SELECT tl.task_id FROM task_labels tl
			JOIN labels l ON l.id = tl.label_id
			WHERE l.name = ? COLLATE NOCASE)`)
		args = append(args, f.LabelName)
	}
	if f.Overdue {
		where = append(where, "t.due_date IS NOT NULL AND t.due_date != '' AND t.due_date < date('now')")
	}
	if f.DueToday {
		where = append(where, "t.due_date = date('now')")
	}

	query := fmt.Sprintf(`
		SELECT t.id, t.column_id, t.title, t.description, t.priority,
		       COALESCE(t.due_date, ''), t.position, t.created_at, t.updated_at,
		       c.name, c.project_id, p.name
		FROM tasks t
		JOIN columns c ON c.id = t.column_id
		JOIN projects p ON p.id = c.project_id
		WHERE %s
		ORDER BY t.created_at DESC, t.rowid DESC`, strings.Join(where, " AND "))
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		labels, err := s.taskLabels(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Labels = labels
	}
	return tasks, nil
}

func (s *SQLiteStore) taskByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.column_id, t.title, t.description, t.priority,
		       COALESCE(t.due_date, ''), t.position, t.created_at, t.updated_at,
		       c.name, c.project_id, p.name
		FROM tasks t
		JOIN columns c ON c.id = t.column_id
		JOIN projects p ON p.id = c.project_id
		WHERE t.id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	t.Labels, err = s.taskLabels(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MaxPosition reports the highest task position in a column, 0 when empty.
func (s *SQLiteStore) MaxPosition(ctx context.Context, columnID string) (int, error) {
	var max int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM tasks WHERE column_id = ?`, columnID).Scan(&max)
	return max, err
}

func (s *SQLiteStore) CreateTask(ctx context.Context, p interpreter.CreateTaskParams) (*model.Task, error) {
	id := s.newID()
	ts := now()
	priority := p.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	position, err := s.MaxPosition(ctx, p.ColumnID)
	if err != nil {
		return nil, err
	}
	position += 1000

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, column_id, title, priority, due_date, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.ColumnID, p.Title, string(priority), nullable(p.DueDate), position, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return s.taskByID(ctx, id)
}

func (s *SQLiteStore) UpdateTask(ctx context.Context, id string, p interpreter.UpdateTaskParams) error {
	set := []string{"updated_at = ?"}
	args := []interface{}{now()}

	if p.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, string(*p.Priority))
	}
	if p.DueDate != nil {
		set = append(set, "due_date = ?")
		args = append(args, nullable(*p.DueDate))
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE tasks SET %s WHERE id = ?`, strings.Join(set, ", ")), args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) MoveTask(ctx context.Context, id, columnID string, position int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET column_id = ?, position = ?, updated_at = ? WHERE id = ?`,
		columnID, position, now(), id)
	if err != nil {
		return fmt.Errorf("move task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scanner) (model.Task, error) {
	var t model.Task
	var priority, createdAt, updatedAt string
	err := row.Scan(
		&t.ID, &t.ColumnID, &t.Title, &t.Description, &priority,
		&t.DueDate, &t.Position, &createdAt, &updatedAt,
		&t.ColumnName, &t.ProjectID, &t.ProjectName,
	)
	if err != nil {
		return t, err
	}
	t.Priority = model.Priority(priority)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
