package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kusinapp/kusina-api/internal/domain/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS dataset_snapshots (
	user_id      TEXT PRIMARY KEY,
	payload      BLOB NOT NULL,
	last_sync_ms INTEGER NOT NULL DEFAULT 0
);`

// SQLiteCache is the local cache store: one row per user holding the
// last-known dataset snapshot as JSON plus the sync timestamp. The loader
// tolerates missing or partial payload fields; callers normalize the result.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache opens (and initializes) the cache database at path.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

// Save upserts the user's snapshot
func (c *SQLiteCache) Save(ctx context.Context, userID uuid.UUID, snap *repository.DatasetSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO dataset_snapshots (user_id, payload, last_sync_ms)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			payload = excluded.payload,
			last_sync_ms = excluded.last_sync_ms`,
		userID.String(), payload, snap.LastSyncEpochMillis,
	)
	return err
}

// Load returns the user's snapshot, nil when none has been saved
func (c *SQLiteCache) Load(ctx context.Context, userID uuid.UUID) (*repository.DatasetSnapshot, error) {
	var payload []byte
	var lastSync int64
	err := c.db.QueryRowContext(ctx,
		`SELECT payload, last_sync_ms FROM dataset_snapshots WHERE user_id = ?`,
		userID.String(),
	).Scan(&payload, &lastSync)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap repository.DatasetSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		// A corrupt payload is treated as a cache miss, not a failure.
		return nil, nil
	}
	snap.LastSyncEpochMillis = lastSync
	return &snap, nil
}

// Clear drops the user's snapshot
func (c *SQLiteCache) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM dataset_snapshots WHERE user_id = ?`, userID.String())
	return err
}

// Close releases the underlying database handle
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
