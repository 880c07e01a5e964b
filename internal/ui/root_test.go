package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/aitoolbox/ai-toolbox/internal/backup"
	"github.com/aitoolbox/ai-toolbox/internal/bridge"
	"github.com/aitoolbox/ai-toolbox/internal/event"
	"github.com/aitoolbox/ai-toolbox/internal/model"
)

func newTestRootUI(h *testHarness) *RootUI {
	// Fail the startup listing so the test body owns the notes slice
	h.invoker.errs[bridge.CmdListNotes] = errors.New("listing disabled")

	service := backup.NewService(&stubSnapshotStore{}, h.bus)
	scheduler := backup.NewScheduler(h.settings, service, h.bus)
	return NewRootUI(h.app, h.window, h.settings, h.localization, h.client, h.bus, scheduler)
}

func sampleNotes() []model.Note {
	return []model.Note{
		{ID: 1, Title: "Groceries", Body: "milk", UpdatedAt: "2026-01-01T12:00:00Z"},
		{ID: 2, Title: "Ideas", Body: "a note body", UpdatedAt: "2026-01-02T09:30:00Z"},
	}
}

func TestNoteSelectionFillsEditor(t *testing.T) {
	h := newTestHarness()
	ui := newTestRootUI(h)

	ui.setNotes(sampleNotes())
	ui.onNoteSelected(1)

	if ui.selectedID != 2 {
		t.Errorf("selectedID = %d, expected 2", ui.selectedID)
	}
	if ui.titleEntry.Text != "Ideas" {
		t.Errorf("titleEntry = %q, expected Ideas", ui.titleEntry.Text)
	}
	if ui.bodyEntry.Text != "a note body" {
		t.Errorf("bodyEntry = %q", ui.bodyEntry.Text)
	}
	if ui.deleteBtn.Disabled() {
		t.Error("delete button disabled with a note selected")
	}
}

func TestNoteSelectionOutOfRangeIsIgnored(t *testing.T) {
	h := newTestHarness()
	ui := newTestRootUI(h)

	ui.setNotes(sampleNotes())
	ui.onNoteSelected(5)

	if ui.selectedID != 0 {
		t.Errorf("selectedID = %d, expected 0", ui.selectedID)
	}
}

func TestNewNoteResetsEditor(t *testing.T) {
	h := newTestHarness()
	ui := newTestRootUI(h)

	ui.setNotes(sampleNotes())
	ui.onNoteSelected(0)
	ui.onNewNote()

	if ui.selectedID != 0 {
		t.Errorf("selectedID = %d, expected 0", ui.selectedID)
	}
	if ui.titleEntry.Text != "" || ui.bodyEntry.Text != "" {
		t.Errorf("editor not cleared: title %q body %q", ui.titleEntry.Text, ui.bodyEntry.Text)
	}
	if !ui.deleteBtn.Disabled() {
		t.Error("delete button enabled while composing")
	}
}

func TestStatusBarShowsNeverWithoutBackups(t *testing.T) {
	h := newTestHarness()
	ui := newTestRootUI(h)

	if ui.lastBackupLabel.Text != "Last backup: never" {
		t.Errorf("lastBackupLabel = %q", ui.lastBackupLabel.Text)
	}
}

func TestStatusBarShowsLastBackupTime(t *testing.T) {
	h := newTestHarness()
	ui := newTestRootUI(h)

	completed := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	h.settings.SetLastAutoBackupTime(completed)
	ui.refreshStatusBar()

	expected := "Last backup: " + completed.Local().Format(DisplayTimeLayout)
	if ui.lastBackupLabel.Text != expected {
		t.Errorf("lastBackupLabel = %q, expected %q", ui.lastBackupLabel.Text, expected)
	}
}

func TestBackupConfigChangeResetsIndicator(t *testing.T) {
	h := newTestHarness()
	ui := newTestRootUI(h)

	ui.statusIndicator.SetStatus(model.StatusConnected)
	ui.onConfigChanged(event.CategoryBackup)

	if ui.statusIndicator.Status() != model.StatusIdle {
		t.Errorf("status = %v, expected idle after destination change", ui.statusIndicator.Status())
	}
}

func TestLanguageChangePersistsAndRetitles(t *testing.T) {
	h := newTestHarness()
	ui := newTestRootUI(h)

	ui.onLanguageChange("zh")

	if h.settings.GetLanguage() != "zh" {
		t.Errorf("stored language = %q, expected zh", h.settings.GetLanguage())
	}
	if ui.saveBtn.Text != "保存" {
		t.Errorf("save button = %q, expected localized text", ui.saveBtn.Text)
	}
	if h.window.Title() != "AI 工具箱" {
		t.Errorf("window title = %q", h.window.Title())
	}
}

func TestSaveNoteSkipsWhenEditorEmpty(t *testing.T) {
	h := newTestHarness()
	ui := newTestRootUI(h)

	ui.titleEntry.SetText("   ")
	ui.bodyEntry.SetText("")
	ui.onSaveNote()

	// No goroutine is started for a blank editor, so the count is
	// stable without synchronization
	if n := h.invoker.callCount(bridge.CmdSaveNote); n != 0 {
		t.Errorf("blank editor issued %d save command(s), expected none", n)
	}
}
