package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"time"

	"til-cli/internal/model"

	_ "modernc.org/sqlite"
)

// Cache persists the last successfully fetched board state so the TUI can
// paint the previous board while a fresh fetch is in flight, and so
// `til board --cached` works offline. It is a cache of server truth,
// never an authority: every write replaces the whole board snapshot.
type Cache struct {
	db *sql.DB
}

func CachePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.db"), nil
}

func OpenCache(path string) (*Cache, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: CLI and TUI may touch the cache concurrently.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateCache(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func migrateCache(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS board_columns (
			board_id INTEGER NOT NULL,
			ord      INTEGER NOT NULL,
			payload  TEXT NOT NULL,
			PRIMARY KEY (board_id, ord)
		);`,
		`CREATE TABLE IF NOT EXISTS board_cards (
			board_id INTEGER NOT NULL,
			ord      INTEGER NOT NULL,
			payload  TEXT NOT NULL,
			PRIMARY KEY (board_id, ord)
		);`,
		`CREATE TABLE IF NOT EXISTS board_meta (
			board_id   INTEGER PRIMARY KEY,
			fetched_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) Close() error { return c.db.Close() }

// SaveSnapshot replaces the stored snapshot for one board. Row order
// preserves fetch order, which is what the board controller renders.
func (c *Cache) SaveSnapshot(ctx context.Context, boardID int64, cols []model.Column, cards []model.Card) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"board_columns", "board_cards"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE board_id = ?", boardID); err != nil {
			return err
		}
	}
	for i, col := range cols {
		payload, err := json.Marshal(col)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO board_columns (board_id, ord, payload) VALUES (?, ?, ?)",
			boardID, i, string(payload)); err != nil {
			return err
		}
	}
	for i, card := range cards {
		payload, err := json.Marshal(card)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO board_cards (board_id, ord, payload) VALUES (?, ?, ?)",
			boardID, i, string(payload)); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO board_meta (board_id, fetched_at) VALUES (?, ?) ON CONFLICT(board_id) DO UPDATE SET fetched_at = excluded.fetched_at",
		boardID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadSnapshot returns the stored snapshot, or ok=false when the board
// has never been cached.
func (c *Cache) LoadSnapshot(ctx context.Context, boardID int64) (cols []model.Column, cards []model.Card, fetchedAt time.Time, ok bool, err error) {
	var stamp string
	err = c.db.QueryRowContext(ctx, "SELECT fetched_at FROM board_meta WHERE board_id = ?", boardID).Scan(&stamp)
	if err == sql.ErrNoRows {
		return nil, nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, nil, time.Time{}, false, err
	}
	fetchedAt, _ = time.Parse(time.RFC3339, stamp)

	cols, err = scanPayloads[model.Column](ctx, c.db, "board_columns", boardID)
	if err != nil {
		return nil, nil, time.Time{}, false, err
	}
	cards, err = scanPayloads[model.Card](ctx, c.db, "board_cards", boardID)
	if err != nil {
		return nil, nil, time.Time{}, false, err
	}
	return cols, cards, fetchedAt, true, nil
}

func scanPayloads[T any](ctx context.Context, db *sql.DB, table string, boardID int64) ([]T, error) {
	rows, err := db.QueryContext(ctx, "SELECT payload FROM "+table+" WHERE board_id = ? ORDER BY ord", boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(payload), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
