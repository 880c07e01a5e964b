package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyFile               = "file"
	KeySettings           = "settings"
	KeyLanguage           = "language"
	KeyQuit               = "quit"
	KeyNotes              = "notes"
	KeyNewNote            = "new_note"
	KeySaveNote           = "save_note"
	KeyDeleteNote         = "delete_note"
	KeyNoteTitleHint      = "note_title_hint"
	KeyNoteBodyHint       = "note_body_hint"
	KeyNoteSaved          = "note_saved"
	KeyNoteDeleted        = "note_deleted"
	KeyConfirmDeleteNote  = "confirm_delete_note"
	KeyBackupSettings     = "backup_settings"
	KeyBackupDestination  = "backup_destination"
	KeyLocalFolder        = "local_folder"
	KeyWebDAVServer       = "webdav_server"
	KeyLocalBackupPath    = "local_backup_path"
	KeyBrowse             = "browse"
	KeyOpenFolder         = "open_folder"
	KeyErrorOpeningFolder = "error_opening_folder"
	KeyWebDAVURL          = "webdav_url"
	KeyUsername           = "username"
	KeyPassword           = "password"
	KeyRemotePath         = "remote_path"
	KeyTestConnection     = "test_connection"
	KeyConnectionOK       = "connection_ok"
	KeyConnectionFailed   = "connection_failed"
	KeyAutoBackup         = "auto_backup"
	KeyEnableAutoBackup   = "enable_auto_backup"
	KeyIntervalDays       = "interval_days"
	KeyMaxKeep            = "max_keep"
	KeyAppearance         = "appearance"
	KeyTheme              = "theme"
	KeyThemeLight         = "theme_light"
	KeyThemeDark          = "theme_dark"
	KeyThemeSystem        = "theme_system"
	KeyShowTrayIcon       = "show_tray_icon"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyClose              = "close"
	KeySettingsSaved      = "settings_saved"
	KeyRestoreFromWebDAV  = "restore_from_webdav"
	KeyLoadingBackups     = "loading_backups"
	KeyNoBackupsFound     = "no_backups_found"
	KeyRestore            = "restore"
	KeyDelete             = "delete"
	KeyConfirmRestore     = "confirm_restore"
	KeyConfirmDelete      = "confirm_delete"
	KeyRestoreFailed      = "restore_failed"
	KeyBackupDeleted      = "backup_deleted"
	KeyDeleteFailed       = "delete_failed"
	KeyBackupNow          = "backup_now"
	KeyBackingUp          = "backing_up"
	KeyBackupCompleted    = "backup_completed"
	KeyBackupFailed       = "backup_failed"
	KeyLastBackup         = "last_backup"
	KeyNever              = "never"
	KeyShowWindow         = "show_window"
	KeyDatabaseRestored   = "database_restored"
	KeyDestinationUnset   = "destination_not_configured"
	KeyStatusIdle         = "status_idle"
	KeyStatusConnecting   = "status_connecting"
	KeyStatusConnected    = "status_connected"
	KeyStatusFailed       = "status_failed"
	KeyListBackupsFailed  = "list_backups_failed"
)

// Suggestion keys carried inside structured faults. The values are the
// wire strings emitted by the backup command handlers.
const (
	KeySuggestSetLocalPath     = "suggestion_set_local_path"
	KeySuggestCheckURL         = "suggestion_check_url"
	KeySuggestCheckCredentials = "suggestion_check_credentials"
	KeySuggestCheckRemotePath  = "suggestion_check_remote_path"
	KeySuggestFileMissing      = "suggestion_file_missing"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"zh": "中文",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "AI Toolbox",
		KeyFile:               "File",
		KeySettings:           "Settings...",
		KeyLanguage:           "Language",
		KeyQuit:               "Quit",
		KeyNotes:              "Notes",
		KeyNewNote:            "New Note",
		KeySaveNote:           "Save",
		KeyDeleteNote:         "Delete",
		KeyNoteTitleHint:      "Title",
		KeyNoteBodyHint:       "Write a note...",
		KeyNoteSaved:          "Note saved",
		KeyNoteDeleted:        "Note deleted",
		KeyConfirmDeleteNote:  "Delete this note?",
		KeyBackupSettings:     "Backup Settings",
		KeyBackupDestination:  "Backup Destination",
		KeyLocalFolder:        "Local folder",
		KeyWebDAVServer:       "WebDAV server",
		KeyLocalBackupPath:    "Backup directory",
		KeyBrowse:             "Browse",
		KeyOpenFolder:         "Open folder",
		KeyErrorOpeningFolder: "Could not open folder",
		KeyWebDAVURL:          "Server URL",
		KeyUsername:           "Username",
		KeyPassword:           "Password",
		KeyRemotePath:         "Remote path",
		KeyTestConnection:     "Test Connection",
		KeyConnectionOK:       "Connection successful",
		KeyConnectionFailed:   "Connection failed",
		KeyAutoBackup:         "Auto Backup",
		KeyEnableAutoBackup:   "Back up automatically",
		KeyIntervalDays:       "Interval (days)",
		KeyMaxKeep:            "Keep newest",
		KeyAppearance:         "Appearance",
		KeyTheme:              "Theme",
		KeyThemeLight:         "Light",
		KeyThemeDark:          "Dark",
		KeyThemeSystem:        "System",
		KeyShowTrayIcon:       "Show tray icon",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyClose:              "Close",
		KeySettingsSaved:      "Settings saved",
		KeyRestoreFromWebDAV:  "Restore from WebDAV...",
		KeyLoadingBackups:     "Loading backups...",
		KeyNoBackupsFound:     "No backups found",
		KeyRestore:            "Restore",
		KeyDelete:             "Delete",
		KeyConfirmRestore:     "Restore this backup? Current notes will be replaced.",
		KeyConfirmDelete:      "Delete this backup from the server?",
		KeyRestoreFailed:      "Restore failed",
		KeyBackupDeleted:      "Backup deleted",
		KeyDeleteFailed:       "Delete failed",
		KeyBackupNow:          "Backup Now",
		KeyBackingUp:          "Backing up...",
		KeyBackupCompleted:    "Backup completed",
		KeyBackupFailed:       "Backup failed",
		KeyLastBackup:         "Last backup",
		KeyNever:              "never",
		KeyShowWindow:         "Show Window",
		KeyDatabaseRestored:   "Database restored",
		KeyDestinationUnset:   "Backup destination is not configured",
		KeyStatusIdle:         "Idle",
		KeyStatusConnecting:   "Connecting...",
		KeyStatusConnected:    "Connected",
		KeyStatusFailed:       "Failed",
		KeyListBackupsFailed:  "Could not list backups",

		KeySuggestSetLocalPath:     "Set a local backup directory first",
		KeySuggestCheckURL:         "Check the server URL",
		KeySuggestCheckCredentials: "Check the username and password",
		KeySuggestCheckRemotePath:  "Check the remote path",
		KeySuggestFileMissing:      "The backup file is missing on the server",
	}

	// Chinese texts
	l.texts["zh"] = map[string]string{
		KeyAppTitle:           "AI 工具箱",
		KeyFile:               "文件",
		KeySettings:           "设置...",
		KeyLanguage:           "语言",
		KeyQuit:               "退出",
		KeyNotes:              "笔记",
		KeyNewNote:            "新建笔记",
		KeySaveNote:           "保存",
		KeyDeleteNote:         "删除",
		KeyNoteTitleHint:      "标题",
		KeyNoteBodyHint:       "写点什么...",
		KeyNoteSaved:          "笔记已保存",
		KeyNoteDeleted:        "笔记已删除",
		KeyConfirmDeleteNote:  "删除这条笔记？",
		KeyBackupSettings:     "备份设置",
		KeyBackupDestination:  "备份目标",
		KeyLocalFolder:        "本地文件夹",
		KeyWebDAVServer:       "WebDAV 服务器",
		KeyLocalBackupPath:    "备份目录",
		KeyBrowse:             "浏览",
		KeyOpenFolder:         "打开文件夹",
		KeyErrorOpeningFolder: "无法打开文件夹",
		KeyWebDAVURL:          "服务器地址",
		KeyUsername:           "用户名",
		KeyPassword:           "密码",
		KeyRemotePath:         "远程路径",
		KeyTestConnection:     "测试连接",
		KeyConnectionOK:       "连接成功",
		KeyConnectionFailed:   "连接失败",
		KeyAutoBackup:         "自动备份",
		KeyEnableAutoBackup:   "启用自动备份",
		KeyIntervalDays:       "间隔（天）",
		KeyMaxKeep:            "保留最新",
		KeyAppearance:         "外观",
		KeyTheme:              "主题",
		KeyThemeLight:         "浅色",
		KeyThemeDark:          "深色",
		KeyThemeSystem:        "跟随系统",
		KeyShowTrayIcon:       "显示托盘图标",
		KeySave:               "保存",
		KeyCancel:             "取消",
		KeyClose:              "关闭",
		KeySettingsSaved:      "设置已保存",
		KeyRestoreFromWebDAV:  "从 WebDAV 恢复...",
		KeyLoadingBackups:     "正在加载备份...",
		KeyNoBackupsFound:     "没有找到备份",
		KeyRestore:            "恢复",
		KeyDelete:             "删除",
		KeyConfirmRestore:     "恢复此备份？当前笔记将被替换。",
		KeyConfirmDelete:      "从服务器删除此备份？",
		KeyRestoreFailed:      "恢复失败",
		KeyBackupDeleted:      "备份已删除",
		KeyDeleteFailed:       "删除失败",
		KeyBackupNow:          "立即备份",
		KeyBackingUp:          "正在备份...",
		KeyBackupCompleted:    "备份完成",
		KeyBackupFailed:       "备份失败",
		KeyLastBackup:         "上次备份",
		KeyNever:              "从未",
		KeyShowWindow:         "显示窗口",
		KeyDatabaseRestored:   "数据库已恢复",
		KeyDestinationUnset:   "尚未配置备份目标",
		KeyStatusIdle:         "空闲",
		KeyStatusConnecting:   "连接中...",
		KeyStatusConnected:    "已连接",
		KeyStatusFailed:       "失败",
		KeyListBackupsFailed:  "无法获取备份列表",

		KeySuggestSetLocalPath:     "请先设置本地备份目录",
		KeySuggestCheckURL:         "请检查服务器地址",
		KeySuggestCheckCredentials: "请检查用户名和密码",
		KeySuggestCheckRemotePath:  "请检查远程路径",
		KeySuggestFileMissing:      "服务器上找不到该备份文件",
	}
}
