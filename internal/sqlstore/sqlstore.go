// Package sqlstore persists users, ideas and constellations in a local SQLite
// database. It is the backend used when no API URL is configured, and the
// storage behind `starfield serve`.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/starfield/internal/galaxy"
)

// schema contains the DDL executed on every open.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ideas (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL,
    x           REAL NOT NULL,
    y           REAL NOT NULL,
    brightness  REAL NOT NULL,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS ideas_user ON ideas(user_id);

CREATE TABLE IF NOT EXISTS constellations (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    idea_id_1  TEXT NOT NULL,
    idea_id_2  TEXT NOT NULL,
    lo_id      TEXT NOT NULL,
    hi_id      TEXT NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE(user_id, lo_id, hi_id)
);
`

// User is an account that owns a galaxy.
type User struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Store is a SQLite database in WAL mode holding every user's galaxy.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path, enables WAL mode and busy
// timeout, and creates the schema if needed. The parent directory is created
// when missing.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlstore: create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open database: %w", err)
	}

	// SQLite has a single writer; one pooled connection keeps the PRAGMAs
	// below in effect for every statement.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: create schema: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser registers a new user and returns it.
func (s *Store) CreateUser(ctx context.Context, name string) (User, error) {
	if name == "" {
		return User{}, fmt.Errorf("sqlstore: create user: name is required")
	}
	u := User{ID: uuid.NewString(), Name: name, CreatedAt: s.now()}
	const q = `INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, u.ID, u.Name, formatTime(u.CreatedAt)); err != nil {
		return User{}, fmt.Errorf("sqlstore: create user %q: %w", name, err)
	}
	return u, nil
}

// EnsureUser creates the user with the given id unless it already exists.
func (s *Store) EnsureUser(ctx context.Context, id, name string) error {
	const q = `INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, q, id, name, formatTime(s.now())); err != nil {
		return fmt.Errorf("sqlstore: ensure user %q: %w", id, err)
	}
	return nil
}

// User looks up a user by id.
func (s *Store) User(ctx context.Context, id string) (User, error) {
	var (
		u  User
		ts string
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("sqlstore: user %q: %w", id, galaxy.ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("sqlstore: user %q: %w", id, err)
	}
	if u.CreatedAt, err = parseTimestamp(ts); err != nil {
		return User{}, fmt.Errorf("sqlstore: user %q: %w", id, err)
	}
	return u, nil
}

// ForUser returns the galaxy backend scoped to one user.
func (s *Store) ForUser(userID string) *UserStore {
	return &UserStore{s: s, userID: userID}
}

// timeLayout is RFC 3339 with a fixed-width fraction so stored timestamps
// sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// timestampFormats lists the formats accepted when reading timestamps back.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.DateTime,
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}
