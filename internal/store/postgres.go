// Package store persists drawing snapshots in PostgreSQL or SQLite.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inamate/drafter/internal/document"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS drawings (
	name       TEXT PRIMARY KEY,
	snapshot   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres stores one snapshot per drawing name.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to url and creates the drawings table if needed.
func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) Save(ctx context.Context, name string, snap *document.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO drawings (name, snapshot, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()
	`, name, data)
	if err != nil {
		return fmt.Errorf("save drawing %q: %w", name, err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, name string) (*document.Snapshot, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT snapshot FROM drawings WHERE name = $1`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, document.ErrNotFound
		}
		return nil, fmt.Errorf("load drawing %q: %w", name, err)
	}
	return decodeSnapshot(data)
}

func (p *Postgres) List(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT name FROM drawings ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	return names, nil
}

func decodeSnapshot(data []byte) (*document.Snapshot, error) {
	var snap document.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
