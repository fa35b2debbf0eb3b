package store

import (
	"context"
	"database/sql"
	"fmt"

	"taskchat/internal/model"
)

func (s *SQLiteStore) Labels(ctx context.Context) ([]model.Label, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color FROM labels ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []model.Label
	for rows.Next() {
		var l model.Label
		if err := rows.Scan(&l.ID, &l.Name, &l.Color); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// LabelByName looks a label up case-insensitively. A missing label is
// (nil, nil), not an error.
func (s *SQLiteStore) LabelByName(ctx context.Context, name string) (*model.Label, error) {
	var l model.Label
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, color FROM labels WHERE name = ? COLLATE NOCASE`, name).
		Scan(&l.ID, &l.Name, &l.Color)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *SQLiteStore) CreateLabel(ctx context.Context, name, color string) (*model.Label, error) {
	if color == "" {
		color = "#6B7280"
	}
	l := &model.Label{ID: s.newID(), Name: name, Color: color}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO labels (id, name, color) VALUES (?, ?, ?)`, l.ID, l.Name, l.Color)
	if err != nil {
		return nil, fmt.Errorf("insert label: %w", err)
	}
	return l, nil
}

// AddLabel attaches a label to a task. Attaching twice is a no-op.
func (s *SQLiteStore) AddLabel(ctx context.Context, taskID, labelID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO task_labels (task_id, label_id) VALUES (?, ?)`, taskID, labelID)
	if err != nil {
		return fmt.Errorf("attach label: %w", err)
	}
	return nil
}

// RemoveLabel detaches a label from a task and reports whether it was
// attached.
func (s *SQLiteStore) RemoveLabel(ctx context.Context, taskID, labelID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM task_labels WHERE task_id = ? AND label_id = ?`, taskID, labelID)
	if err != nil {
		return false, fmt.Errorf("detach label: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *SQLiteStore) taskLabels(ctx context.Context, taskID string) ([]model.Label, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.name, l.color
		FROM labels l
		JOIN task_labels tl ON tl.label_id = l.id
		WHERE tl.task_id = ?
		ORDER BY l.name`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []model.Label
	for rows.Next() {
		var l model.Label
		if err := rows.Scan(&l.ID, &l.Name, &l.Color); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}
