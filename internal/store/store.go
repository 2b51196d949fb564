// Package store persists decks in their interchange-text form, keyed by
// name, with a single reserved slot for the autosaved "current deck".
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no deck is saved under the requested name.
var ErrNotFound = errors.New("deck not found")

// currentSlot is the reserved name for the autosave slot. It is hidden
// from List and not addressable through Save/Load.
const currentSlot = "__current__"

const schema = `
CREATE TABLE IF NOT EXISTS decks (
	name       TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SavedDeck is one row of the saved-deck listing.
type SavedDeck struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a SQLite-backed deck store.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) a SQLite store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) put(ctx context.Context, name, body string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decks (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		name, body, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *Store) get(ctx context.Context, name string) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM decks WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return body, nil
}

// Save stores a deck body under name, replacing any previous save.
func (s *Store) Save(ctx context.Context, name, body string) error {
	name = strings.TrimSpace(name)
	if name == "" || name == currentSlot {
		return fmt.Errorf("invalid deck name %q", name)
	}
	return s.put(ctx, name, body)
}

// Load returns the deck body saved under name.
func (s *Store) Load(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == currentSlot {
		return "", fmt.Errorf("invalid deck name %q", name)
	}
	return s.get(ctx, name)
}

// SaveCurrent writes the autosave slot.
func (s *Store) SaveCurrent(ctx context.Context, body string) error {
	return s.put(ctx, currentSlot, body)
}

// LoadCurrent reads the autosave slot.
func (s *Store) LoadCurrent(ctx context.Context) (string, error) {
	return s.get(ctx, currentSlot)
}

// Delete removes a named save. Deleting a name that was never saved is not
// an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || name == currentSlot {
		return fmt.Errorf("invalid deck name %q", name)
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE name = ?`, name)
	return err
}

// List returns all named saves, most recently updated first. The autosave
// slot is excluded.
func (s *Store) List(ctx context.Context) ([]SavedDeck, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, updated_at FROM decks WHERE name != ? ORDER BY updated_at DESC`,
		currentSlot)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []SavedDeck
	for rows.Next() {
		var sd SavedDeck
		var updated string
		if err := rows.Scan(&sd.Name, &updated); err != nil {
			return nil, err
		}
		sd.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		decks = append(decks, sd)
	}
	return decks, rows.Err()
}
