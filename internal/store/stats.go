package store

import (
	"context"

	"taskchat/internal/model"
)

// Summary computes board-wide statistics in one pass over the tables.
func (s *SQLiteStore) Summary(ctx context.Context) (*model.BoardSummary, error) {
	sum := &model.BoardSummary{}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN due_date IS NOT NULL AND due_date != '' AND due_date < date('now') THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN due_date = date('now') THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN priority = 'high' THEN 1 ELSE 0 END), 0)
		FROM tasks`).Scan(&sum.TotalTasks, &sum.Overdue, &sum.DueToday, &sum.HighPriority)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.name, COUNT(t.id)
		FROM projects p
		LEFT JOIN columns c ON c.project_id = p.id
		LEFT JOIN tasks t ON t.column_id = c.id
		GROUP BY p.id
		ORDER BY p.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pc model.ProjectCount
		if err := rows.Scan(&pc.Name, &pc.TaskCount); err != nil {
			return nil, err
		}
		sum.Projects = append(sum.Projects, pc)
	}
	return sum, rows.Err()
}
