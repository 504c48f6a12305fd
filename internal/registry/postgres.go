package registry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresRegistry keeps the posted-game set in a single-column table,
// for deploys that already run a shared database.
type PostgresRegistry struct {
	conn *sql.DB
}

// NewPostgresRegistry connects and ensures the posted_games table exists.
func NewPostgresRegistry(dsn string) (*PostgresRegistry, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open registry database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping registry database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS posted_games (
			game_id   BIGINT PRIMARY KEY,
			posted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("create posted_games table: %w", err)
	}

	return &PostgresRegistry{conn: db}, nil
}

func (r *PostgresRegistry) Contains(ctx context.Context, gameID int64) (bool, error) {
	var exists bool
	err := r.conn.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM posted_games WHERE game_id = $1)", gameID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRegistry) Add(ctx context.Context, gameID int64) error {
	_, err := r.conn.ExecContext(ctx,
		"INSERT INTO posted_games (game_id) VALUES ($1) ON CONFLICT (game_id) DO NOTHING", gameID)
	return err
}

func (r *PostgresRegistry) Close() error {
	return r.conn.Close()
}
