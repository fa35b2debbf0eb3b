package store

import (
	"context"
	"fmt"
	"time"

	"taskchat/internal/model"
)

// LogActivity records a board mutation against a task id. The row keeps
// the id even after the task is deleted.
func (s *SQLiteStore) LogActivity(ctx context.Context, taskID, action, details string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activities (id, task_id, action, details, actor, created_at)
		 VALUES (?, ?, ?, ?, 'User', ?)`,
		s.newID(), taskID, action, details, now())
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// TaskActivities returns a task's activity feed, newest first.
func (s *SQLiteStore) TaskActivities(ctx context.Context, taskID string, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task_id, action, details, actor, created_at
		FROM activities WHERE task_id = ?
		ORDER BY created_at DESC LIMIT ?`, taskID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		var createdAt string
		if err := rows.Scan(&a.ID, &a.TaskID, &a.Action, &a.Details, &a.Actor, &createdAt); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
