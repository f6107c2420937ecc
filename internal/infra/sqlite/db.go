// Package sqlite provides SQLite-based persistent storage for NoSmoke.
// Uses WAL mode for concurrent reads and crash-safe writes. Events and
// triggers are insert-only: appends are single INSERTs, so concurrent
// submissions from the same user cannot lose entries.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/nosmoke.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "nosmoke.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id                  TEXT PRIMARY KEY,
			email               TEXT,
			telegram_id         INTEGER,
			name                TEXT NOT NULL,
			password_hash       TEXT NOT NULL DEFAULT '',
			cigarettes_per_day  INTEGER NOT NULL,
			cost_per_pack       REAL NOT NULL,
			cigarettes_per_pack INTEGER NOT NULL,
			quit_date           INTEGER,
			subscription        TEXT NOT NULL DEFAULT 'free',
			subscription_end    INTEGER,
			created_at          INTEGER NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email) WHERE email IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_telegram ON users(telegram_id) WHERE telegram_id IS NOT NULL`,

		// Append-only event log. Rows are never updated or deleted;
		// rowid preserves insertion order for timestamp ties.
		`CREATE TABLE IF NOT EXISTS events (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			type       TEXT NOT NULL,
			context    TEXT NOT NULL DEFAULT '',
			intensity  INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_user_ts ON events(user_id, created_at)`,

		// Append-only trigger log, same rules as events.
		`CREATE TABLE IF NOT EXISTS triggers (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL REFERENCES users(id),
			type        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			created_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_triggers_user_ts ON triggers(user_id, created_at)`,

		`CREATE TABLE IF NOT EXISTS payment_transactions (
			id         TEXT PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			user_id    TEXT NOT NULL REFERENCES users(id),
			plan_id    TEXT NOT NULL,
			amount     REAL NOT NULL,
			currency   TEXT NOT NULL DEFAULT 'usd',
			status     TEXT NOT NULL DEFAULT 'pending',
			created_at INTEGER NOT NULL,
			updated_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_user ON payment_transactions(user_id)`,
	}

	for i, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
