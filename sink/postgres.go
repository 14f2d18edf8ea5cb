// Package sink records match events in external stores.
package sink

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"github.com/PhucNguyen204/hscan"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS hscan_matches (
	id BIGSERIAL PRIMARY KEY,
	scan_id TEXT NOT NULL,
	pattern_id BIGINT NOT NULL,
	match_from BIGINT NOT NULL,
	match_to BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertSQL = `INSERT INTO hscan_matches (scan_id, pattern_id, match_from, match_to) VALUES ($1, $2, $3, $4)`

// Open connects to Postgres with the pool settings used across the project.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// Postgres records match events in a Postgres table.
type Postgres struct {
	db      *sql.DB
	mu      sync.Mutex
	lastErr error
}

// NewPostgres wraps an open connection.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// InitSchema creates the match table if it does not exist.
func (p *Postgres) InitSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Handler returns a match handler that records every event under scanID and
// never terminates the scan. Insert failures are kept aside; the first one
// is reported by Err.
func (p *Postgres) Handler(ctx context.Context, scanID string) hscan.MatchHandler {
	return func(id uint32, from, to uint64, flags uint32) bool {
		if _, err := p.db.ExecContext(ctx, insertSQL, scanID, int64(id), int64(from), int64(to)); err != nil {
			p.mu.Lock()
			if p.lastErr == nil {
				p.lastErr = fmt.Errorf("insert match: %w", err)
			}
			p.mu.Unlock()
		}
		return true
	}
}

// Err returns the first insert failure since the last call, clearing it.
func (p *Postgres) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.lastErr
	p.lastErr = nil
	return err
}
