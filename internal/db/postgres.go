package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a Store backed by a PostgreSQL connection pool
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool to the database and migrates it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// Migrate creates the state table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS app_state (
	key TEXT PRIMARY KEY,
	value JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Get returns the value under key, or nil if absent.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, `SELECT value::text FROM app_state WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Key: key, Cause: err}
	}
	return value, nil
}

// Put upserts value under key. JSONB cannot hold U+0000, so NUL escapes in
// strings are stored as U+FFFD.
func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO app_state (key, value) VALUES ($1, $2::jsonb)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, string(replaceNULEscapes(value)),
	)
	if err != nil {
		return &StoreError{Op: "put", Key: key, Cause: err}
	}
	return nil
}

var (
	nulEscape         = []byte(`\u0000`)
	replacementEscape = []byte(`\ufffd`)
)

// replaceNULEscapes rewrites every \u0000 escape in a JSON document to
// \ufffd. Escaped backslashes are copied as pairs so `\\u0000` is left alone.
func replaceNULEscapes(value []byte) []byte {
	if !bytes.Contains(value, nulEscape) {
		return value
	}
	out := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		if value[i] != '\\' || i+1 >= len(value) {
			out = append(out, value[i])
			continue
		}
		if bytes.HasPrefix(value[i:], nulEscape) {
			out = append(out, replacementEscape...)
			i += len(nulEscape) - 1
			continue
		}
		out = append(out, value[i], value[i+1])
		i++
	}
	return out
}

// Delete removes key.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM app_state WHERE key = $1`, key); err != nil {
		return &StoreError{Op: "delete", Key: key, Cause: err}
	}
	return nil
}

// Clear removes every key.
func (p *Postgres) Clear(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM app_state`); err != nil {
		return &StoreError{Op: "clear", Cause: err}
	}
	return nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
