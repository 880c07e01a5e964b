package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aitoolbox/ai-toolbox/internal/model"
)

// Command names routed over the bridge. These are wire-stable strings:
// a remote frontend sends them verbatim.
const (
	CmdBackupDatabase       = "backup_database"
	CmdRestoreDatabase      = "restore_database"
	CmdGetDatabasePath      = "get_database_path"
	CmdBackupToWebDAV       = "backup_to_webdav"
	CmdListWebDAVBackups    = "list_webdav_backups"
	CmdRestoreFromWebDAV    = "restore_from_webdav"
	CmdTestWebDAVConnection = "test_webdav_connection"
	CmdDeleteWebDAVBackup   = "delete_webdav_backup"
	CmdListNotes            = "list_notes"
	CmdSaveNote             = "save_note"
	CmdDeleteNote           = "delete_note"
)

// Invoker dispatches a named command with JSON-encoded arguments
type Invoker interface {
	Invoke(ctx context.Context, name string, args any) (json.RawMessage, error)
}

// Client is the typed front of the command bridge. UI code talks to
// backend services exclusively through it.
type Client struct {
	invoker Invoker
}

// NewClient creates a client dispatching through invoker
func NewClient(invoker Invoker) *Client {
	return &Client{invoker: invoker}
}

// Argument shapes mirror the named-argument JSON a frontend would send
type backupDatabaseArgs struct {
	Directory string `json:"directory"`
}

type restoreDatabaseArgs struct {
	ArchivePath string `json:"archivePath"`
}

type webdavFileArgs struct {
	model.WebDAVConfig
	Filename string `json:"filename"`
}

type saveNoteArgs struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type deleteNoteArgs struct {
	ID int64 `json:"id"`
}

// BackupDatabase archives the database into directory and returns the
// created archive path
func (c *Client) BackupDatabase(ctx context.Context, directory string) (string, error) {
	raw, err := c.invoker.Invoke(ctx, CmdBackupDatabase, backupDatabaseArgs{Directory: directory})
	if err != nil {
		return "", err
	}
	return decodeString(CmdBackupDatabase, raw)
}

// RestoreDatabase replaces the database with the contents of the
// archive at archivePath
func (c *Client) RestoreDatabase(ctx context.Context, archivePath string) error {
	_, err := c.invoker.Invoke(ctx, CmdRestoreDatabase, restoreDatabaseArgs{ArchivePath: archivePath})
	return err
}

// DatabasePath returns the directory holding the live database
func (c *Client) DatabasePath(ctx context.Context) (string, error) {
	raw, err := c.invoker.Invoke(ctx, CmdGetDatabasePath, struct{}{})
	if err != nil {
		return "", err
	}
	return decodeString(CmdGetDatabasePath, raw)
}

// BackupToWebDAV archives the database and uploads it to the WebDAV
// server, returning the remote filename
func (c *Client) BackupToWebDAV(ctx context.Context, cfg model.WebDAVConfig) (string, error) {
	raw, err := c.invoker.Invoke(ctx, CmdBackupToWebDAV, cfg)
	if err != nil {
		return "", err
	}
	return decodeString(CmdBackupToWebDAV, raw)
}

// ListWebDAVBackups returns the backup archives on the WebDAV server
// in the order the server reported them
func (c *Client) ListWebDAVBackups(ctx context.Context, cfg model.WebDAVConfig) ([]model.BackupFileInfo, error) {
	raw, err := c.invoker.Invoke(ctx, CmdListWebDAVBackups, cfg)
	if err != nil {
		return nil, err
	}
	var files []model.BackupFileInfo
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", CmdListWebDAVBackups, err)
	}
	return files, nil
}

// RestoreFromWebDAV downloads the named archive and restores the
// database from it
func (c *Client) RestoreFromWebDAV(ctx context.Context, cfg model.WebDAVConfig, filename string) error {
	_, err := c.invoker.Invoke(ctx, CmdRestoreFromWebDAV, webdavFileArgs{WebDAVConfig: cfg, Filename: filename})
	return err
}

// TestWebDAVConnection checks that the WebDAV server is reachable with
// the given credentials
func (c *Client) TestWebDAVConnection(ctx context.Context, cfg model.WebDAVConfig) error {
	_, err := c.invoker.Invoke(ctx, CmdTestWebDAVConnection, cfg)
	return err
}

// DeleteWebDAVBackup removes the named archive from the WebDAV server
func (c *Client) DeleteWebDAVBackup(ctx context.Context, cfg model.WebDAVConfig, filename string) error {
	_, err := c.invoker.Invoke(ctx, CmdDeleteWebDAVBackup, webdavFileArgs{WebDAVConfig: cfg, Filename: filename})
	return err
}

// ListNotes returns all stored notes, most recently updated first
func (c *Client) ListNotes(ctx context.Context) ([]model.Note, error) {
	raw, err := c.invoker.Invoke(ctx, CmdListNotes, struct{}{})
	if err != nil {
		return nil, err
	}
	var notes []model.Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", CmdListNotes, err)
	}
	return notes, nil
}

// SaveNote inserts or updates a note and returns its id
func (c *Client) SaveNote(ctx context.Context, note model.Note) (int64, error) {
	raw, err := c.invoker.Invoke(ctx, CmdSaveNote, saveNoteArgs{ID: note.ID, Title: note.Title, Body: note.Body})
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, fmt.Errorf("failed to decode %s result: %w", CmdSaveNote, err)
	}
	return id, nil
}

// DeleteNote removes the note with the given id
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	_, err := c.invoker.Invoke(ctx, CmdDeleteNote, deleteNoteArgs{ID: id})
	return err
}

// decodeString unmarshals a JSON string result
func decodeString(name string, raw json.RawMessage) (string, error) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("failed to decode %s result: %w", name, err)
	}
	return value, nil
}
