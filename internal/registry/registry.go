// Package registry tracks which games have already been delivered. It
// is the pipeline's only durable state: a flat set of game ids,
// consulted before processing and updated immediately after each
// successful delivery (at-least-once, never exactly-once).
package registry

import (
	"context"
	"fmt"
)

// Registry is a durable set of delivered game ids.
type Registry interface {
	// Contains reports whether the game was already delivered.
	Contains(ctx context.Context, gameID int64) (bool, error)
	// Add records a delivered game durably before returning.
	Add(ctx context.Context, gameID int64) error
	Close() error
}

// Config selects and parameterizes a registry backend.
type Config struct {
	Backend  string // "file", "redis" or "postgres"
	FilePath string
	RedisURL string
	DSN      string
}

// Open creates the configured backend. The default is the file backend.
func Open(cfg Config) (Registry, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileRegistry(cfg.FilePath)
	case "redis":
		return NewRedisRegistry(cfg.RedisURL)
	case "postgres":
		return NewPostgresRegistry(cfg.DSN)
	}
	return nil, fmt.Errorf("unknown registry backend %q", cfg.Backend)
}
