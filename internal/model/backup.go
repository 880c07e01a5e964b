package model

import (
	"fmt"
	"strings"
	"time"
)

// BackupType identifies where backup archives are stored
type BackupType string

const (
	// BackupTypeLocal - archives are written to a directory on this machine
	BackupTypeLocal BackupType = "local"
	// BackupTypeWebDAV - archives are uploaded to a WebDAV server
	BackupTypeWebDAV BackupType = "webdav"
)

const (
	// BackupFilePrefix is the common prefix of generated backup archive names
	BackupFilePrefix = "ai-toolbox-backup-"
	// BackupFileExt is the extension of backup archives
	BackupFileExt = ".zip"
	// BackupTimeLayout is the timestamp layout embedded in archive names
	BackupTimeLayout = "20060102-150405"
)

// WebDAVConfig holds credentials and location of a WebDAV backup target
type WebDAVConfig struct {
	URL        string `json:"url"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	RemotePath string `json:"remotePath"`
}

// Validate checks that the config is usable for a connection attempt
func (c WebDAVConfig) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("webdav url is required")
	}
	return nil
}

// BackupConfig describes the active backup destination
type BackupConfig struct {
	BackupType      BackupType   `json:"backupType"`
	LocalBackupPath string       `json:"localBackupPath"`
	WebDAV          WebDAVConfig `json:"webdav"`
}

// Destination returns the configured target for the active backup type,
// or an empty string when that target is not set
func (c BackupConfig) Destination() string {
	switch c.BackupType {
	case BackupTypeWebDAV:
		return c.WebDAV.URL
	default:
		return c.LocalBackupPath
	}
}

// AutoBackupConfig controls the periodic backup scheduler
type AutoBackupConfig struct {
	Enabled      bool `json:"enabled"`
	IntervalDays int  `json:"intervalDays"`
	MaxKeep      int  `json:"maxKeep"`
}

// BackupFileInfo describes a single archive on the backup destination
type BackupFileInfo struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// BackupFilename returns the archive name for a backup taken at t.
// The timestamp uses the local clock, matching what users see on disk.
func BackupFilename(t time.Time) string {
	return BackupFilePrefix + t.Format(BackupTimeLayout) + BackupFileExt
}

// IsBackupFilename reports whether name looks like a generated archive name
func IsBackupFilename(name string) bool {
	return strings.HasPrefix(name, BackupFilePrefix) && strings.HasSuffix(name, BackupFileExt)
}

// ParseBackupTime extracts the timestamp embedded in a generated archive
// name. The second return value is false when the name does not carry a
// parseable timestamp.
func ParseBackupTime(name string) (time.Time, bool) {
	if !IsBackupFilename(name) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), BackupFileExt)
	t, err := time.ParseInLocation(BackupTimeLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
