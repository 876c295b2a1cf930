package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps snapshots in a single key-value table.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres creates the snapshot table when missing.
func NewPostgres(ctx context.Context, db *pgxpool.Pool) (*Postgres, error) {
	const stmt = `
CREATE TABLE IF NOT EXISTS snapshots (
	key         TEXT PRIMARY KEY,
	value       BYTEA NOT NULL,
	update_time TIMESTAMPTZ NOT NULL DEFAULT now()
);`

	if _, err := db.Exec(ctx, stmt); err != nil {
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	const stmt = `SELECT value FROM snapshots WHERE key = $1;`

	var b []byte
	err := p.db.QueryRow(ctx, stmt, key).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	const stmt = `
INSERT INTO snapshots (key, value, update_time) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = excluded.value, update_time = excluded.update_time;`

	_, err := p.db.Exec(ctx, stmt, key, value)
	return err
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM snapshots WHERE key = $1;`, key)
	return err
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
