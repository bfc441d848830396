// Package hoststore persists host profiles in a local SQLite database,
// keyed the way the rest of the daemon's state lives on disk.
package hoststore

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
CREATE TABLE IF NOT EXISTS hosts (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL DEFAULT '',
    hostname        TEXT NOT NULL,
    port            INTEGER NOT NULL DEFAULT 22,
    username        TEXT NOT NULL DEFAULT '',
    session_name    TEXT NOT NULL DEFAULT '',
    auth_kind       TEXT NOT NULL DEFAULT 'password',
    credential_id   TEXT NOT NULL DEFAULT '',
    color_tag       TEXT NOT NULL DEFAULT '',
    last_connected  TIMESTAMP,
    created_at      TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// AuthKind names the stored authentication preference for a host profile.
type AuthKind string

const (
	AuthPassword   AuthKind = "password"
	AuthPrivateKey AuthKind = "key"
)

// Profile is one saved host identity. Profiles never carry secret material;
// AuthKind and CredentialID point at a record in the keystore instead.
type Profile struct {
	ID             string
	Name           string
	Hostname       string
	Port           int
	Username       string
	SessionName    string
	AuthKind       AuthKind
	CredentialID   string
	ColorTag       string
	LastConnected  time.Time
}

// Store wraps the SQLite-backed host profile table.
type Store struct {
	db *sql.DB
}

// Open creates or opens the host profile database under the runtime data
// directory.
func Open() (*Store, error) {
	dir, err := appdirs.RuntimeDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(filepath.Join(dir, "hosts.db"))
}

// OpenAt opens the host profile database at an explicit path, primarily for
// tests.
func OpenAt(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("hoststore: mkdir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("hoststore: open: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("hoststore: wal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("hoststore: schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Add inserts a new profile, assigning it a fresh UUID if ID is empty.
func (s *Store) Add(p Profile) (Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO hosts (id, name, hostname, port, username, session_name, auth_kind, credential_id, color_tag)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Hostname, p.Port, p.Username, p.SessionName, string(p.AuthKind), p.CredentialID, p.ColorTag)
	if err != nil {
		return Profile{}, fmt.Errorf("hoststore: add: %w", err)
	}
	return p, nil
}

// Update overwrites every mutable field of an existing profile by id.
func (s *Store) Update(p Profile) error {
	_, err := s.db.Exec(`
		UPDATE hosts SET name = ?, hostname = ?, port = ?, username = ?, session_name = ?,
			auth_kind = ?, credential_id = ?, color_tag = ?
		WHERE id = ?
	`, p.Name, p.Hostname, p.Port, p.Username, p.SessionName, string(p.AuthKind), p.CredentialID, p.ColorTag, p.ID)
	return err
}

// TouchLastConnected records that id was just connected to.
func (s *Store) TouchLastConnected(id string) error {
	_, err := s.db.Exec(`UPDATE hosts SET last_connected = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

// Remove deletes a profile by id. Removing a profile with a live connection
// is the connection manager's responsibility to refuse or tear down first;
// the store itself is unconditional.
func (s *Store) Remove(id string) error {
	_, err := s.db.Exec(`DELETE FROM hosts WHERE id = ?`, id)
	return err
}

// Get returns the profile for id, or false if it doesn't exist.
func (s *Store) Get(id string) (Profile, bool, error) {
	row := s.db.QueryRow(`
		SELECT id, name, hostname, port, username, session_name, auth_kind, credential_id, color_tag,
			COALESCE(last_connected, CURRENT_TIMESTAMP)
		FROM hosts WHERE id = ?
	`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

// List returns every stored profile, ordered by name.
func (s *Store) List() ([]Profile, error) {
	rows, err := s.db.Query(`
		SELECT id, name, hostname, port, username, session_name, auth_kind, credential_id, color_tag,
			COALESCE(last_connected, CURRENT_TIMESTAMP)
		FROM hosts ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (Profile, error) {
	var p Profile
	var authKind string
	var lastConnected time.Time
	if err := row.Scan(&p.ID, &p.Name, &p.Hostname, &p.Port, &p.Username, &p.SessionName,
		&authKind, &p.CredentialID, &p.ColorTag, &lastConnected); err != nil {
		return Profile{}, err
	}
	p.AuthKind = AuthKind(authKind)
	p.LastConnected = lastConnected
	return p, nil
}
