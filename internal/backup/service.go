package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aitoolbox/ai-toolbox/internal/archive"
	"github.com/aitoolbox/ai-toolbox/internal/bridge"
	"github.com/aitoolbox/ai-toolbox/internal/event"
	"github.com/aitoolbox/ai-toolbox/internal/model"
	"github.com/aitoolbox/ai-toolbox/internal/platform"
	"github.com/aitoolbox/ai-toolbox/internal/webdav"
)

// Suggestion keys emitted with actionable failures. The UI localizes
// them; the strings are wire-stable.
const (
	SuggestSetLocalPath     = "suggestion_set_local_path"
	SuggestCheckURL         = "suggestion_check_url"
	SuggestCheckCredentials = "suggestion_check_credentials"
	SuggestCheckRemotePath  = "suggestion_check_remote_path"
	SuggestFileMissing      = "suggestion_file_missing"
)

// Service implements the backup and restore commands
type Service struct {
	store SnapshotStore
	bus   Publisher
}

// NewService creates the backup engine over store, publishing progress
// events on bus
func NewService(store SnapshotStore, bus Publisher) *Service {
	return &Service{store: store, bus: bus}
}

// RegisterHandlers binds the backup commands to the registry
func (s *Service) RegisterHandlers(registry *bridge.Registry) {
	registry.Register(bridge.CmdBackupDatabase, s.handleBackupDatabase)
	registry.Register(bridge.CmdRestoreDatabase, s.handleRestoreDatabase)
	registry.Register(bridge.CmdGetDatabasePath, s.handleGetDatabasePath)
	registry.Register(bridge.CmdBackupToWebDAV, s.handleBackupToWebDAV)
	registry.Register(bridge.CmdListWebDAVBackups, s.handleListWebDAVBackups)
	registry.Register(bridge.CmdRestoreFromWebDAV, s.handleRestoreFromWebDAV)
	registry.Register(bridge.CmdTestWebDAVConnection, s.handleTestWebDAVConnection)
	registry.Register(bridge.CmdDeleteWebDAVBackup, s.handleDeleteWebDAVBackup)
}

// DatabaseDir returns the directory holding the live database
func (s *Service) DatabaseDir() string {
	return s.store.Dir()
}

// BackupToDirectory snapshots the database, zips it and writes the
// archive into dir, returning the archive path
func (s *Service) BackupToDirectory(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		return "", bridge.Suggest(SuggestSetLocalPath, errors.New("local backup path is empty"))
	}

	data, err := s.packSnapshot(ctx)
	if err != nil {
		return "", err
	}

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path := filepath.Join(dir, model.BackupFilename(time.Now()))
	if err := os.WriteFile(path, data, platform.DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("failed to write backup archive: %w", err)
	}

	log.Printf("Backup written to %s (%d bytes)", path, len(data))
	return path, nil
}

// BackupToWebDAV snapshots the database, zips it and uploads the
// archive, returning the remote filename
func (s *Service) BackupToWebDAV(ctx context.Context, cfg model.WebDAVConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", bridge.Suggest(SuggestCheckURL, err)
	}

	data, err := s.packSnapshot(ctx)
	if err != nil {
		return "", err
	}

	filename := model.BackupFilename(time.Now())
	if err := webdav.NewClient(cfg).Upload(ctx, filename, data); err != nil {
		return "", classifyWebDAVError(err, SuggestCheckRemotePath)
	}

	log.Printf("Backup uploaded as %s (%d bytes)", filename, len(data))
	return filename, nil
}

// RestoreFromArchiveFile replaces the database with the archive at path
func (s *Service) RestoreFromArchiveFile(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("archive path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return bridge.Suggest(SuggestFileMissing, err)
		}
		return fmt.Errorf("failed to read archive: %w", err)
	}
	return s.restoreFromArchive(data, filepath.Base(path))
}

// RestoreFromWebDAV downloads the named archive and restores the
// database from it
func (s *Service) RestoreFromWebDAV(ctx context.Context, cfg model.WebDAVConfig, filename string) error {
	if err := cfg.Validate(); err != nil {
		return bridge.Suggest(SuggestCheckURL, err)
	}
	if filename == "" {
		return errors.New("archive filename is empty")
	}

	data, err := webdav.NewClient(cfg).Download(ctx, filename)
	if err != nil {
		return classifyWebDAVError(err, SuggestFileMissing)
	}
	return s.restoreFromArchive(data, filename)
}

// ListRemoteBackups returns backup archives on the WebDAV server in
// server order, filtered to generated archive names
func (s *Service) ListRemoteBackups(ctx context.Context, cfg model.WebDAVConfig) ([]model.BackupFileInfo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, bridge.Suggest(SuggestCheckURL, err)
	}

	files, err := webdav.NewClient(cfg).List(ctx)
	if err != nil {
		return nil, classifyWebDAVError(err, SuggestCheckRemotePath)
	}

	backups := make([]model.BackupFileInfo, 0, len(files))
	for _, f := range files {
		if model.IsBackupFilename(f.Filename) {
			backups = append(backups, f)
		}
	}
	return backups, nil
}

// DeleteRemoteBackup removes the named archive from the WebDAV server
func (s *Service) DeleteRemoteBackup(ctx context.Context, cfg model.WebDAVConfig, filename string) error {
	if err := cfg.Validate(); err != nil {
		return bridge.Suggest(SuggestCheckURL, err)
	}
	if filename == "" {
		return errors.New("archive filename is empty")
	}

	if err := webdav.NewClient(cfg).Delete(ctx, filename); err != nil {
		return classifyWebDAVError(err, SuggestFileMissing)
	}
	return nil
}

// TestConnection checks that the WebDAV server is reachable with the
// given settings
func (s *Service) TestConnection(ctx context.Context, cfg model.WebDAVConfig) error {
	if err := cfg.Validate(); err != nil {
		return bridge.Suggest(SuggestCheckURL, err)
	}
	if err := webdav.NewClient(cfg).Ping(ctx); err != nil {
		return classifyWebDAVError(err, SuggestCheckRemotePath)
	}
	return nil
}

// packSnapshot snapshots the live database into a staging directory
// and zips it
func (s *Service) packSnapshot(ctx context.Context) ([]byte, error) {
	staging, err := os.MkdirTemp("", "ai-toolbox-staging-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if _, err := s.store.SnapshotTo(ctx, staging); err != nil {
		return nil, fmt.Errorf("failed to snapshot database: %w", err)
	}

	data, err := archive.PackDir(staging)
	if err != nil {
		return nil, fmt.Errorf("failed to pack snapshot: %w", err)
	}
	return data, nil
}

// restoreFromArchive swaps the database files for the archive contents
// and reopens the store. Source names the archive for the restored
// event payload.
func (s *Service) restoreFromArchive(data []byte, source string) error {
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("failed to close store for restore: %w", err)
	}

	if err := archive.Extract(data, s.store.Dir()); err != nil {
		// Bring the store back so the app keeps working on the old data
		if reopenErr := s.store.Reopen(); reopenErr != nil {
			return fmt.Errorf("restore failed (%v) and store did not reopen: %w", err, reopenErr)
		}
		return fmt.Errorf("failed to extract archive: %w", err)
	}

	if err := s.store.Reopen(); err != nil {
		return fmt.Errorf("failed to reopen store after restore: %w", err)
	}

	log.Printf("Database restored from %s", source)
	s.bus.Publish(event.DatabaseRestored, source)
	return nil
}

// classifyWebDAVError attaches suggestion keys to errors the user can
// act on. notFoundKey names the remedy for a 404, which depends on
// whether the operation targeted a file or the collection.
func classifyWebDAVError(err error, notFoundKey string) error {
	switch {
	case errors.Is(err, webdav.ErrUnauthorized):
		return bridge.Suggest(SuggestCheckCredentials, err)
	case errors.Is(err, webdav.ErrNotFound):
		return bridge.Suggest(notFoundKey, err)
	default:
		return err
	}
}

// Command handlers decode bridge arguments and delegate to the
// exported operations.

func (s *Service) handleBackupDatabase(ctx context.Context, args json.RawMessage) (any, error) {
	var payload struct {
		Directory string `json:"directory"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, fmt.Errorf("invalid backup_database arguments: %w", err)
	}
	return s.BackupToDirectory(ctx, platform.ExpandPath(payload.Directory))
}

func (s *Service) handleRestoreDatabase(ctx context.Context, args json.RawMessage) (any, error) {
	var payload struct {
		ArchivePath string `json:"archivePath"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, fmt.Errorf("invalid restore_database arguments: %w", err)
	}
	return nil, s.RestoreFromArchiveFile(ctx, payload.ArchivePath)
}

func (s *Service) handleGetDatabasePath(ctx context.Context, _ json.RawMessage) (any, error) {
	return s.DatabaseDir(), nil
}

func (s *Service) handleBackupToWebDAV(ctx context.Context, args json.RawMessage) (any, error) {
	var cfg model.WebDAVConfig
	if err := json.Unmarshal(args, &cfg); err != nil {
		return nil, fmt.Errorf("invalid backup_to_webdav arguments: %w", err)
	}
	return s.BackupToWebDAV(ctx, cfg)
}

func (s *Service) handleListWebDAVBackups(ctx context.Context, args json.RawMessage) (any, error) {
	var cfg model.WebDAVConfig
	if err := json.Unmarshal(args, &cfg); err != nil {
		return nil, fmt.Errorf("invalid list_webdav_backups arguments: %w", err)
	}
	return s.ListRemoteBackups(ctx, cfg)
}

func (s *Service) handleRestoreFromWebDAV(ctx context.Context, args json.RawMessage) (any, error) {
	var payload struct {
		model.WebDAVConfig
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, fmt.Errorf("invalid restore_from_webdav arguments: %w", err)
	}
	return nil, s.RestoreFromWebDAV(ctx, payload.WebDAVConfig, payload.Filename)
}

func (s *Service) handleTestWebDAVConnection(ctx context.Context, args json.RawMessage) (any, error) {
	var cfg model.WebDAVConfig
	if err := json.Unmarshal(args, &cfg); err != nil {
		return nil, fmt.Errorf("invalid test_webdav_connection arguments: %w", err)
	}
	return nil, s.TestConnection(ctx, cfg)
}

func (s *Service) handleDeleteWebDAVBackup(ctx context.Context, args json.RawMessage) (any, error) {
	var payload struct {
		model.WebDAVConfig
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, fmt.Errorf("invalid delete_webdav_backup arguments: %w", err)
	}
	return nil, s.DeleteRemoteBackup(ctx, payload.WebDAVConfig, payload.Filename)
}
