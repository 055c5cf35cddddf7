// Package sqlite implements the repository interfaces on SQLite, using the
// pure-Go modernc.org/sqlite driver.
//
// The pool is limited to one connection. SQLite serializes writers anyway,
// and a single connection keeps per-connection PRAGMAs (foreign keys, busy
// timeout) in force for every statement and lets ":memory:" databases work.
//
// Timestamps are stored as RFC 3339 TEXT in UTC; progress dates as
// YYYY-MM-DD.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB owns the connection pool. Repositories for each table are views over it:
// see Users, Profiles and Progress.
//
// ONE POOL, SEVERAL REPOSITORIES:
// sql.DB is not a connection, it is a pool that hands out connections and
// is safe for concurrent use. The service layer depends on three small
// interfaces (repository.UserRepository and friends), one per table. Each
// of UserDB, ProfileDB and ProgressDB is a struct holding the same *sql.DB,
// so handing out a repository allocates nothing but a pointer and all of
// them share the single connection configured in New.
//
// Keeping one type per table keeps each file readable (its SQL, its scan
// helpers, its constraint mapping) and lets tests exercise one table at a
// time against a ":memory:" database.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}
	return db, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository.
func (db *DB) Users() *UserDB { return &UserDB{conn: db.conn} }

// Profiles returns the profile repository.
func (db *DB) Profiles() *ProfileDB { return &ProfileDB{conn: db.conn} }

// Progress returns the progress log repository.
func (db *DB) Progress() *ProgressDB { return &ProgressDB{conn: db.conn} }

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			username        TEXT NOT NULL UNIQUE,
			password_digest TEXT NOT NULL,
			full_name       TEXT NOT NULL DEFAULT '',
			created_at      TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			user_id        INTEGER PRIMARY KEY REFERENCES users(id),
			age            INTEGER NOT NULL,
			sex            TEXT NOT NULL,
			height_cm      REAL NOT NULL,
			weight_kg      REAL NOT NULL,
			activity_level TEXT NOT NULL,
			goal           TEXT NOT NULL,
			diet_pref      TEXT NOT NULL,
			created_at     TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating profiles table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS progress (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id           INTEGER NOT NULL REFERENCES users(id),
			date              TEXT NOT NULL,
			weight_kg         REAL,
			calories_consumed INTEGER,
			completed         INTEGER NOT NULL DEFAULT 0,
			notes             TEXT NOT NULL DEFAULT '',
			created_at        TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_progress_user_date ON progress(user_id, date);
	`)
	if err != nil {
		return fmt.Errorf("creating progress table: %w", err)
	}

	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
