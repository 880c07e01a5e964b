package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/aitoolbox/ai-toolbox/internal/model"
	"github.com/aitoolbox/ai-toolbox/internal/platform"
)

// Theme modes for the application appearance
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// Settings keys for Fyne preferences
const (
	KeyBackupType             = "backup_type"
	KeyLocalBackupPath        = "local_backup_path"
	KeyWebDAVURL              = "webdav_url"
	KeyWebDAVUsername         = "webdav_username"
	KeyWebDAVPassword         = "webdav_password"
	KeyWebDAVRemotePath       = "webdav_remote_path"
	KeyAutoBackupEnabled      = "auto_backup_enabled"
	KeyAutoBackupIntervalDays = "auto_backup_interval_days"
	KeyAutoBackupMaxKeep      = "auto_backup_max_keep"
	KeyLastAutoBackupTime     = "last_auto_backup_time"
	KeyTheme                  = "theme"
	KeyLanguage               = "app_language"
	KeyTrayEnabled            = "tray_enabled"
)

// Default values
const (
	DefaultBackupType             = model.BackupTypeLocal
	DefaultAutoBackupEnabled      = false
	DefaultAutoBackupIntervalDays = 7
	DefaultAutoBackupMaxKeep      = 5
	DefaultTheme                  = ThemeSystem
	DefaultLanguage               = "system"
	DefaultTrayEnabled            = true
)

// LastBackupTimeLayout is the stored format of the last auto backup timestamp
const LastBackupTimeLayout = time.RFC3339

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetBackupType returns the active backup destination type
func (s *Settings) GetBackupType() model.BackupType {
	value := s.app.Preferences().String(KeyBackupType)
	switch model.BackupType(value) {
	case model.BackupTypeLocal, model.BackupTypeWebDAV:
		return model.BackupType(value)
	}
	s.SetBackupType(DefaultBackupType)
	return DefaultBackupType
}

// SetBackupType sets the active backup destination type
func (s *Settings) SetBackupType(backupType model.BackupType) {
	s.app.Preferences().SetString(KeyBackupType, string(backupType))
}

// GetLocalBackupPath returns the configured local backup directory
func (s *Settings) GetLocalBackupPath() string {
	return s.app.Preferences().String(KeyLocalBackupPath)
}

// SetLocalBackupPath sets the local backup directory
func (s *Settings) SetLocalBackupPath(path string) {
	s.app.Preferences().SetString(KeyLocalBackupPath, path)
}

// GetWebDAVConfig returns the stored WebDAV connection settings
func (s *Settings) GetWebDAVConfig() model.WebDAVConfig {
	return model.WebDAVConfig{
		URL:        s.app.Preferences().String(KeyWebDAVURL),
		Username:   s.app.Preferences().String(KeyWebDAVUsername),
		Password:   s.app.Preferences().String(KeyWebDAVPassword),
		RemotePath: s.app.Preferences().String(KeyWebDAVRemotePath),
	}
}

// SetWebDAVConfig stores the WebDAV connection settings
func (s *Settings) SetWebDAVConfig(cfg model.WebDAVConfig) {
	s.app.Preferences().SetString(KeyWebDAVURL, cfg.URL)
	s.app.Preferences().SetString(KeyWebDAVUsername, cfg.Username)
	s.app.Preferences().SetString(KeyWebDAVPassword, cfg.Password)
	s.app.Preferences().SetString(KeyWebDAVRemotePath, cfg.RemotePath)
}

// GetBackupConfig returns the full backup destination configuration
func (s *Settings) GetBackupConfig() model.BackupConfig {
	return model.BackupConfig{
		BackupType:      s.GetBackupType(),
		LocalBackupPath: s.GetLocalBackupPath(),
		WebDAV:          s.GetWebDAVConfig(),
	}
}

// SetBackupConfig stores the full backup destination configuration
func (s *Settings) SetBackupConfig(cfg model.BackupConfig) {
	s.SetBackupType(cfg.BackupType)
	s.SetLocalBackupPath(cfg.LocalBackupPath)
	s.SetWebDAVConfig(cfg.WebDAV)
}

// GetAutoBackupEnabled returns whether periodic backups are enabled
func (s *Settings) GetAutoBackupEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoBackupEnabled, DefaultAutoBackupEnabled)
}

// SetAutoBackupEnabled sets whether periodic backups are enabled
func (s *Settings) SetAutoBackupEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyAutoBackupEnabled, enabled)
}

// GetAutoBackupIntervalDays returns the days between periodic backups
func (s *Settings) GetAutoBackupIntervalDays() int {
	value := s.app.Preferences().Int(KeyAutoBackupIntervalDays)
	if value <= 0 {
		s.SetAutoBackupIntervalDays(DefaultAutoBackupIntervalDays)
		return DefaultAutoBackupIntervalDays
	}
	return value
}

// SetAutoBackupIntervalDays sets the days between periodic backups
func (s *Settings) SetAutoBackupIntervalDays(days int) {
	if days < 1 {
		days = 1
	}
	s.app.Preferences().SetInt(KeyAutoBackupIntervalDays, days)
}

// GetAutoBackupMaxKeep returns how many archives to retain, 0 meaning unlimited
func (s *Settings) GetAutoBackupMaxKeep() int {
	value := s.app.Preferences().IntWithFallback(KeyAutoBackupMaxKeep, DefaultAutoBackupMaxKeep)
	if value < 0 {
		return 0
	}
	return value
}

// SetAutoBackupMaxKeep sets how many archives to retain, 0 meaning unlimited
func (s *Settings) SetAutoBackupMaxKeep(keep int) {
	if keep < 0 {
		keep = 0
	}
	s.app.Preferences().SetInt(KeyAutoBackupMaxKeep, keep)
}

// GetAutoBackupConfig returns the periodic backup configuration
func (s *Settings) GetAutoBackupConfig() model.AutoBackupConfig {
	return model.AutoBackupConfig{
		Enabled:      s.GetAutoBackupEnabled(),
		IntervalDays: s.GetAutoBackupIntervalDays(),
		MaxKeep:      s.GetAutoBackupMaxKeep(),
	}
}

// SetAutoBackupConfig stores the periodic backup configuration
func (s *Settings) SetAutoBackupConfig(cfg model.AutoBackupConfig) {
	s.SetAutoBackupEnabled(cfg.Enabled)
	s.SetAutoBackupIntervalDays(cfg.IntervalDays)
	s.SetAutoBackupMaxKeep(cfg.MaxKeep)
}

// GetLastAutoBackupTime returns the completion time of the last periodic
// backup. The second return value is false when no backup has completed
// yet or the stored value cannot be parsed.
func (s *Settings) GetLastAutoBackupTime() (time.Time, bool) {
	value := s.app.Preferences().String(KeyLastAutoBackupTime)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(LastBackupTimeLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SetLastAutoBackupTime records the completion time of a periodic backup
func (s *Settings) SetLastAutoBackupTime(t time.Time) {
	s.app.Preferences().SetString(KeyLastAutoBackupTime, t.UTC().Format(LastBackupTimeLayout))
}

// GetTheme returns the configured theme mode
func (s *Settings) GetTheme() ThemeMode {
	value := s.app.Preferences().String(KeyTheme)
	switch ThemeMode(value) {
	case ThemeLight, ThemeDark, ThemeSystem:
		return ThemeMode(value)
	}
	s.SetTheme(DefaultTheme)
	return DefaultTheme
}

// SetTheme sets the theme mode
func (s *Settings) SetTheme(mode ThemeMode) {
	s.app.Preferences().SetString(KeyTheme, string(mode))
}

// GetThemeOptions returns available theme modes
func (s *Settings) GetThemeOptions() []ThemeMode {
	return []ThemeMode{ThemeSystem, ThemeLight, ThemeDark}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetTrayEnabled returns whether the system tray icon is shown
func (s *Settings) GetTrayEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyTrayEnabled, DefaultTrayEnabled)
}

// SetTrayEnabled sets whether the system tray icon is shown
func (s *Settings) SetTrayEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyTrayEnabled, enabled)
}

// ResolveLocalBackupPath expands the configured local backup path,
// falling back to the default backups directory when unset
func (s *Settings) ResolveLocalBackupPath() string {
	path := platform.ExpandPath(s.GetLocalBackupPath())
	if path == "" {
		return platform.DefaultLocalBackupDir()
	}
	return path
}
