package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aitoolbox/ai-toolbox/internal/model"
	"github.com/aitoolbox/ai-toolbox/internal/platform"
)

// DBFileName is the database file inside the data directory
const DBFileName = "notes.db"

// schemaVersion is the current PRAGMA user_version
const schemaVersion = 1

var (
	// ErrStoreClosed - operation attempted between Close and Reopen
	ErrStoreClosed = errors.New("store is closed")
	// ErrNoteNotFound - the note id does not exist
	ErrNoteNotFound = errors.New("note not found")
)

// Store is the SQLite-backed notes store. All methods are safe for
// concurrent use; Close/Reopen serialize against running operations.
type Store struct {
	mu  sync.Mutex
	dir string
	db  *sql.DB
}

// Open creates the data directory when missing, opens the database
// and brings the schema up to date
func Open(dir string) (*Store, error) {
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{dir: dir}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

// open connects and migrates; callers hold no lock or the store lock
func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.Path())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; a single connection avoids busy errors
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("failed to apply %s: %w", pragma, err)
		}
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return err
	}

	s.db = db
	return nil
}

// applyMigrations upgrades the schema to schemaVersion, gated on
// PRAGMA user_version so restored databases migrate on reopen
func applyMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	if version < 1 {
		const createNotes = `
			CREATE TABLE IF NOT EXISTS notes (
				id INTEGER PRIMARY KEY,
				title TEXT NOT NULL DEFAULT '',
				body TEXT NOT NULL DEFAULT '',
				updated_at TEXT NOT NULL
			)`
		if _, err := db.Exec(createNotes); err != nil {
			return fmt.Errorf("failed to create notes table: %w", err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	log.Printf("Store migrated to schema version %d", schemaVersion)
	return nil
}

// Dir returns the directory holding the database
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full database file path
func (s *Store) Path() string {
	return filepath.Join(s.dir, DBFileName)
}

// Close releases the database. Operations fail with ErrStoreClosed
// until Reopen.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Reopen connects to the database again, applying migrations. Used
// after a restore replaced the files on disk.
func (s *Store) Reopen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
	return s.open()
}

// SaveNote inserts the note when its id is zero, otherwise updates the
// existing row. Returns the note id. The update timestamp is set here,
// in UTC.
func (s *Store) SaveNote(ctx context.Context, note model.Note) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return 0, ErrStoreClosed
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if note.ID == 0 {
		result, err := s.db.ExecContext(ctx,
			"INSERT INTO notes (title, body, updated_at) VALUES (?, ?, ?)",
			note.Title, note.Body, now)
		if err != nil {
			return 0, fmt.Errorf("failed to insert note: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read inserted note id: %w", err)
		}
		return id, nil
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE notes SET title = ?, body = ?, updated_at = ? WHERE id = ?",
		note.Title, note.Body, now, note.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update note %d: %w", note.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check note update: %w", err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("note %d: %w", note.ID, ErrNoteNotFound)
	}
	return note.ID, nil
}

// ListNotes returns all notes, most recently updated first
func (s *Store) ListNotes(ctx context.Context) ([]model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, body, updated_at FROM notes ORDER BY updated_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var note model.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Body, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	return notes, nil
}

// DeleteNote removes the note with the given id. Deleting an id that
// does not exist is not an error, matching the optimistic delete flow
// in the UI.
func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	return nil
}

// SnapshotTo writes a consistent copy of the database into destDir and
// returns the copy's path. The live database stays open and writable.
func (s *Store) SnapshotTo(ctx context.Context, destDir string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return "", ErrStoreClosed
	}

	if err := platform.CreateDirectoryIfNotExists(destDir); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	target := filepath.Join(destDir, DBFileName)
	// VACUUM INTO refuses to overwrite
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to clear snapshot target: %w", err)
	}

	// Flush the WAL so the snapshot sees every committed write
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return "", fmt.Errorf("failed to checkpoint database: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", target); err != nil {
		return "", fmt.Errorf("failed to snapshot database: %w", err)
	}
	return target, nil
}
