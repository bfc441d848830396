// Package keystore persists SSH credential blobs (private keys) in a
// SQLite database separate from hoststore, so a host profile never carries
// secret material directly. Blob content is never logged.
package keystore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/google/uuid"
	"github.com/regenrek/itmux/internal/appdirs"
)

const schema = `
CREATE TABLE IF NOT EXISTS ssh_keys (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL DEFAULT '',
    fingerprint TEXT NOT NULL DEFAULT '',
    blob        BLOB NOT NULL,
    created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Record is a stored credential's metadata. Blob is only populated by Get,
// never by List, so listing keys cannot leak key material by accident.
type Record struct {
	ID          string
	Name        string
	Fingerprint string
	Blob        []byte
	CreatedAt   time.Time
}

// Store wraps the SQLite-backed credential table.
type Store struct {
	db *sql.DB
}

// Open creates or opens the credential database under the runtime data
// directory. The file is created with 0600 permissions; callers should
// still treat the parent directory's permissions as the real boundary.
func Open() (*Store, error) {
	dir, err := appdirs.RuntimeDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(filepath.Join(dir, "sshkeys.db"))
}

// OpenAt opens the credential database at an explicit path, primarily for
// tests.
func OpenAt(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("keystore: mkdir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("keystore: open: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("keystore: wal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("keystore: schema: %w", err)
	}
	_ = os.Chmod(path, 0o600)
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Put stores blob under a fresh id if rec.ID is empty, or overwrites the
// existing record otherwise.
func (s *Store) Put(rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO ssh_keys (id, name, fingerprint, blob)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, fingerprint = excluded.fingerprint, blob = excluded.blob
	`, rec.ID, rec.Name, rec.Fingerprint, rec.Blob)
	if err != nil {
		return "", fmt.Errorf("keystore: put: %w", err)
	}
	return rec.ID, nil
}

// Get returns the full record, including blob, for id. Returns
// ErrKeyUnavailable if id is unknown.
func (s *Store) Get(id string) (Record, error) {
	row := s.db.QueryRow(`SELECT id, name, fingerprint, blob, created_at FROM ssh_keys WHERE id = ?`, id)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Fingerprint, &rec.Blob, &rec.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Record{}, ErrKeyUnavailable
		}
		return Record{}, err
	}
	return rec, nil
}

// List returns every stored key's metadata, excluding blob content.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(`SELECT id, name, fingerprint, created_at FROM ssh_keys ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Fingerprint, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a credential by id.
func (s *Store) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM ssh_keys WHERE id = ?`, id)
	return err
}

// ErrKeyUnavailable is returned when a referenced credential id has no
// matching record, matching the KeyUnavailable error taxonomy entry.
var ErrKeyUnavailable = fmt.Errorf("keystore: key unavailable")
