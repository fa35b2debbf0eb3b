package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"taskchat/internal/model"
)

// SQLiteStore persists the board in SQLite. It satisfies
// interpreter.TaskStore.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *SQLiteStore) migrate() error {
	// activities.task_id carries no foreign key so deletion records
	// outlive the task they describe.
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT '#6366F1',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS columns (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		position   INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_columns_project ON columns(project_id, position);

	CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		column_id   TEXT NOT NULL REFERENCES columns(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority    TEXT NOT NULL DEFAULT 'medium',
		due_date    TEXT,
		position    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks(column_id, position);
	CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_date);
	CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);

	CREATE TABLE IF NOT EXISTS labels (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL UNIQUE COLLATE NOCASE,
		color TEXT NOT NULL DEFAULT '#6B7280'
	);

	CREATE TABLE IF NOT EXISTS task_labels (
		task_id  TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		label_id TEXT NOT NULL REFERENCES labels(id) ON DELETE CASCADE,
		PRIMARY KEY (task_id, label_id)
	);
	CREATE INDEX IF NOT EXISTS idx_task_labels_label ON task_labels(label_id);

	CREATE TABLE IF NOT EXISTS activities (
		id         TEXT PRIMARY KEY,
		task_id    TEXT NOT NULL,
		action     TEXT NOT NULL,
		details    TEXT NOT NULL DEFAULT '',
		actor      TEXT NOT NULL DEFAULT 'User',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_activities_task ON activities(task_id, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateProject inserts a project and returns it.
func (s *SQLiteStore) CreateProject(ctx context.Context, name, color string) (*model.Project, error) {
	if color == "" {
		color = "#6366F1"
	}
	p := &model.Project{ID: s.newID(), Name: name, Color: color}
	created := now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, color, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.Color, created)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return p, nil
}

func (s *SQLiteStore) Projects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color, created_at FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// CreateColumn appends a column to a project.
func (s *SQLiteStore) CreateColumn(ctx context.Context, projectID, name string, position int) (*model.Column, error) {
	c := &model.Column{ID: s.newID(), ProjectID: projectID, Name: name, Position: position}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO columns (id, project_id, name, position) VALUES (?, ?, ?, ?)`,
		c.ID, c.ProjectID, c.Name, c.Position)
	if err != nil {
		return nil, fmt.Errorf("insert column: %w", err)
	}
	return c, nil
}

// Columns lists columns, all of them or those of one project.
func (s *SQLiteStore) Columns(ctx context.Context, projectID string) ([]model.Column, error) {
	query := `SELECT c.id, c.project_id, c.name, c.position, p.name
	          FROM columns c JOIN projects p ON p.id = c.project_id`
	var args []interface{}
	if projectID != "" {
		query += ` WHERE c.project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY p.created_at, c.position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []model.Column
	for rows.Next() {
		var c model.Column
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Position, &c.ProjectName); err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	return columns, rows.Err()
}
