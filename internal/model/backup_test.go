package model

import (
	"testing"
	"time"
)

func TestBackupFilename(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected string
	}{
		{
			name:     "new year noon",
			time:     time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local),
			expected: "ai-toolbox-backup-20260101-120000.zip",
		},
		{
			name:     "single digit fields are zero padded",
			time:     time.Date(2025, 3, 7, 9, 5, 2, 0, time.Local),
			expected: "ai-toolbox-backup-20250307-090502.zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BackupFilename(tt.time); got != tt.expected {
				t.Errorf("BackupFilename() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestParseBackupTime(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected time.Time
		ok       bool
	}{
		{
			name:     "valid archive name",
			filename: "ai-toolbox-backup-20260101-120000.zip",
			expected: time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local),
			ok:       true,
		},
		{
			name:     "wrong prefix",
			filename: "other-backup-20260101-120000.zip",
			ok:       false,
		},
		{
			name:     "wrong extension",
			filename: "ai-toolbox-backup-20260101-120000.tar",
			ok:       false,
		},
		{
			name:     "garbage timestamp",
			filename: "ai-toolbox-backup-notatime.zip",
			ok:       false,
		},
		{
			name:     "empty string",
			filename: "",
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBackupTime(tt.filename)
			if ok != tt.ok {
				t.Fatalf("ParseBackupTime() ok = %v, expected %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.expected) {
				t.Errorf("ParseBackupTime() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestBackupFilename_RoundTrip(t *testing.T) {
	// Truncate to seconds because the archive name only carries second precision
	now := time.Now().Truncate(time.Second)

	name := BackupFilename(now)
	parsed, ok := ParseBackupTime(name)
	if !ok {
		t.Fatalf("ParseBackupTime(%q) ok = false, expected true", name)
	}
	if !parsed.Equal(now) {
		t.Errorf("round trip = %v, expected %v", parsed, now)
	}
}

func TestIsBackupFilename(t *testing.T) {
	tests := []struct {
		filename string
		expected bool
	}{
		{"ai-toolbox-backup-20260101-120000.zip", true},
		{"ai-toolbox-backup-anything.zip", true},
		{"notes.db", false},
		{"ai-toolbox-backup-20260101-120000.zip.tmp", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := IsBackupFilename(tt.filename); got != tt.expected {
				t.Errorf("IsBackupFilename(%q) = %v, expected %v", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestWebDAVConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  WebDAVConfig
		wantErr bool
	}{
		{
			name:   "url set",
			config: WebDAVConfig{URL: "https://dav.example.com/dav"},
		},
		{
			name:    "url empty",
			config:  WebDAVConfig{Username: "alice", Password: "secret"},
			wantErr: true,
		},
		{
			name:    "url whitespace only",
			config:  WebDAVConfig{URL: "   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackupConfig_Destination(t *testing.T) {
	tests := []struct {
		name     string
		config   BackupConfig
		expected string
	}{
		{
			name: "local type returns local path",
			config: BackupConfig{
				BackupType:      BackupTypeLocal,
				LocalBackupPath: "/backups",
				WebDAV:          WebDAVConfig{URL: "https://dav.example.com"},
			},
			expected: "/backups",
		},
		{
			name: "webdav type returns url",
			config: BackupConfig{
				BackupType:      BackupTypeWebDAV,
				LocalBackupPath: "/backups",
				WebDAV:          WebDAVConfig{URL: "https://dav.example.com"},
			},
			expected: "https://dav.example.com",
		},
		{
			name:     "unset destination is empty",
			config:   BackupConfig{BackupType: BackupTypeWebDAV},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.Destination(); got != tt.expected {
				t.Errorf("Destination() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
