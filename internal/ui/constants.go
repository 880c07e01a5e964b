package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconError    = "❌"
)

// Layout sizing (BackupRow / lists)
const (
	SizeLabelWidth float32 = 80

	RowMinWidth  float32 = 360
	RowMinHeight float32 = 44

	NotesListMinWidth float32 = 220

	WindowWidth  float32 = 900
	WindowHeight float32 = 600

	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 560

	RestoreDialogWidth  float32 = 520
	RestoreDialogHeight float32 = 420
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 110
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Status indicator dot diameter
const (
	StatusDotSize float32 = 10
)

// Timestamp rendering for backup rows and the status bar
const (
	DisplayTimeLayout = "2006-01-02 15:04:05"
)
