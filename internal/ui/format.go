package ui

import (
	"fmt"
	"time"

	"github.com/aitoolbox/ai-toolbox/internal/bridge"
	"github.com/aitoolbox/ai-toolbox/internal/model"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// formatFileSize formats bytes into human readable format
func formatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// formatBackupTimestamp renders the creation time encoded in a backup
// archive name. Names that do not follow the generated pattern are
// shown verbatim.
func formatBackupTimestamp(filename string) string {
	t, ok := model.ParseBackupTime(filename)
	if !ok {
		return filename
	}
	return t.Format(DisplayTimeLayout)
}

// formatDisplayTime renders an RFC 3339 timestamp in local time for
// the status bar and note rows. Anything unparseable is shown verbatim.
func formatDisplayTime(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Local().Format(DisplayTimeLayout)
}

// faultText resolves a command error to user-facing text: structured
// faults localize their suggestion key, raw faults show the message.
func faultText(loc *Localization, err error) string {
	fault := bridge.FaultFrom(err)
	if fault.Kind == bridge.FaultStructured {
		return loc.GetText(fault.Suggestion)
	}
	return fault.Message
}
