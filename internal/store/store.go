// Package store is the persistence collaborator for goal and task records
// and the small key-value surface the insights cache lives in. The backend is
// selected by an explicit configuration value injected at construction time;
// the analytics engine only ever sees the Store interface.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goalpulse/internal/model"
)

var ErrNotFound = errors.New("not found")

// Store is the full collaborator surface. Reads are whole-collection; all
// filtering happens client-side in the engine.
type Store interface {
	ListGoals(ctx context.Context) ([]model.Goal, error)
	ListTasks(ctx context.Context) ([]model.Task, error)

	PutGoal(ctx context.Context, g model.Goal) error
	PutTask(ctx context.Context, t model.Task) error
	DeleteGoal(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error

	// GetValue and PutValue expose the key-value entries. A value is written
	// atomically as a single record, so readers never observe a torn write.
	GetValue(ctx context.Context, key string) (string, error)
	PutValue(ctx context.Context, key, value string) error

	Close() error
}

// Config selects and parameterizes the backend.
type Config struct {
	Backend string // "sqlite" or "remote"
	Path    string // sqlite database path
	BaseURL string // remote backend URL
	Token   string // remote backend bearer token
	Timeout time.Duration
}

// Open constructs the configured backend.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "sqlite":
		return OpenSQLite(cfg.Path)
	case "remote":
		return NewRemote(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
