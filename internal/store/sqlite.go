package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"goalpulse/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS goals (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	category TEXT NOT NULL,
	status TEXT NOT NULL,
	start_date TEXT NOT NULL,
	target_date TEXT NOT NULL,
	total_tasks INTEGER NOT NULL DEFAULT 0,
	completed_tasks INTEGER NOT NULL DEFAULT 0,
	completion_pct INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	goal_id TEXT NOT NULL REFERENCES goals(id),
	title TEXT NOT NULL,
	status TEXT NOT NULL,
	priority TEXT NOT NULL,
	scheduled_date TEXT,
	completed_at TEXT,
	estimated_minutes INTEGER NOT NULL DEFAULT 0,
	actual_minutes INTEGER
);
CREATE INDEX IF NOT EXISTS idx_tasks_goal ON tasks(goal_id);
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the database at path with the
// schema applied and foreign keys on.
func OpenSQLite(path string) (Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }

func (s *sqliteStore) ListGoals(ctx context.Context) ([]model.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,category,status,start_date,target_date,total_tasks,completed_tasks,completion_pct FROM goals ORDER BY start_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		var category, status, start, target string
		if err := rows.Scan(&g.ID, &g.Title, &category, &status, &start, &target, &g.TotalTasks, &g.CompletedTasks, &g.CompletionPct); err != nil {
			return nil, err
		}
		g.Category = model.ParseCategory(category)
		g.Status = model.ParseGoalStatus(status)
		if g.StartDate, err = time.Parse(time.RFC3339, start); err != nil {
			return nil, fmt.Errorf("goal %s: bad start_date: %w", g.ID, err)
		}
		if g.TargetDate, err = time.Parse(time.RFC3339, target); err != nil {
			return nil, fmt.Errorf("goal %s: bad target_date: %w", g.ID, err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *sqliteStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,goal_id,title,status,priority,scheduled_date,completed_at,estimated_minutes,actual_minutes FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var status, priority string
		var scheduled, completed sql.NullString
		var actual sql.NullInt64
		if err := rows.Scan(&t.ID, &t.GoalID, &t.Title, &status, &priority, &scheduled, &completed, &t.EstimatedMinutes, &actual); err != nil {
			return nil, err
		}
		t.Status = model.ParseTaskStatus(status)
		t.Priority = model.ParseTaskPriority(priority)
		if scheduled.Valid {
			if ts, err := time.Parse(time.RFC3339, scheduled.String); err == nil {
				t.ScheduledDate = &ts
			}
		}
		if completed.Valid {
			if ts, err := time.Parse(time.RFC3339, completed.String); err == nil {
				t.CompletedAt = &ts
			}
		}
		if actual.Valid {
			v := int(actual.Int64)
			t.ActualMinutes = &v
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *sqliteStore) PutGoal(ctx context.Context, g model.Goal) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO goals(id,title,category,status,start_date,target_date,total_tasks,completed_tasks,completion_pct)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET title=excluded.title, category=excluded.category, status=excluded.status,
			start_date=excluded.start_date, target_date=excluded.target_date,
			total_tasks=excluded.total_tasks, completed_tasks=excluded.completed_tasks, completion_pct=excluded.completion_pct`,
		g.ID, g.Title, string(g.Category), string(g.Status),
		g.StartDate.Format(time.RFC3339), g.TargetDate.Format(time.RFC3339),
		g.TotalTasks, g.CompletedTasks, g.CompletionPct)
	return err
}

func (s *sqliteStore) PutTask(ctx context.Context, t model.Task) error {
	var scheduled, completed any
	if t.ScheduledDate != nil {
		scheduled = t.ScheduledDate.Format(time.RFC3339)
	}
	if t.CompletedAt != nil {
		completed = t.CompletedAt.Format(time.RFC3339)
	}
	var actual any
	if t.ActualMinutes != nil {
		actual = *t.ActualMinutes
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO tasks(id,goal_id,title,status,priority,scheduled_date,completed_at,estimated_minutes,actual_minutes)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET goal_id=excluded.goal_id, title=excluded.title, status=excluded.status,
			priority=excluded.priority, scheduled_date=excluded.scheduled_date, completed_at=excluded.completed_at,
			estimated_minutes=excluded.estimated_minutes, actual_minutes=excluded.actual_minutes`,
		t.ID, t.GoalID, t.Title, string(t.Status), string(t.Priority),
		scheduled, completed, t.EstimatedMinutes, actual)
	return err
}

func (s *sqliteStore) DeleteGoal(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE goal_id=?`, id); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

func (s *sqliteStore) PutValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO kv(key,value,updated_at) VALUES (?,?,?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}
