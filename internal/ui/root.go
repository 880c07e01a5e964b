package ui

import (
	"context"
	"errors"
	"image/color"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/aitoolbox/ai-toolbox/internal/backup"
	"github.com/aitoolbox/ai-toolbox/internal/bridge"
	"github.com/aitoolbox/ai-toolbox/internal/config"
	"github.com/aitoolbox/ai-toolbox/internal/event"
	"github.com/aitoolbox/ai-toolbox/internal/model"
)

// RootUI represents the main window: the notes column on the left, the
// note editor on the right, a status bar with the backup state, the
// application menu and the optional system tray.
type RootUI struct {
	app    fyne.App
	window fyne.Window

	settings     *config.Settings
	localization *Localization
	client       *bridge.Client
	bus          *event.Bus
	scheduler    *backup.Scheduler

	// Notes column
	notes       []model.Note
	noteList    *widget.List
	notesHeader *widget.Label
	newBtn      *widget.Button

	// Note editor; selectedID is zero while composing a new note
	selectedID int64
	titleEntry *widget.Entry
	bodyEntry  *widget.Entry
	saveBtn    *widget.Button
	deleteBtn  *widget.Button

	// Status bar
	statusIndicator *StatusIndicator
	lastBackupLabel *widget.Label

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	trayShown bool
}

// NewRootUI creates and initializes the main UI. All collaborators are
// constructed by the caller and handed in; the UI owns no services.
func NewRootUI(app fyne.App, window fyne.Window, settings *config.Settings, localization *Localization, client *bridge.Client, bus *event.Bus, scheduler *backup.Scheduler) *RootUI {
	ui := &RootUI{
		app:          app,
		window:       window,
		settings:     settings,
		localization: localization,
		client:       client,
		bus:          bus,
		scheduler:    scheduler,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	ui.subscribeEvents()
	ui.setupTray()
	ui.setupCloseIntercept()
	ui.loadNotes()

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	// Notes column
	ui.notesHeader = widget.NewLabel(ui.localization.GetText(KeyNotes))
	ui.notesHeader.TextStyle = fyne.TextStyle{Bold: true}

	ui.newBtn = widget.NewButton(ui.localization.GetText(KeyNewNote), ui.onNewNote)
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)

	ui.noteList = widget.NewList(
		func() int { return len(ui.notes) },
		func() fyne.CanvasObject { return ui.createNoteItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateNoteItem(id, obj) },
	)
	ui.noteList.OnSelected = ui.onNoteSelected

	notesPanel := container.NewBorder(
		container.NewBorder(nil, nil, ui.notesHeader, container.NewHBox(ui.newBtn, settingsBtn)),
		nil, nil, nil,
		ui.noteList,
	)

	// Keep the notes column from collapsing when the split is dragged
	notesSpacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
	notesSpacer.SetMinSize(fyne.NewSize(NotesListMinWidth, 0))

	// Note editor
	ui.titleEntry = widget.NewEntry()
	ui.titleEntry.SetPlaceHolder(ui.localization.GetText(KeyNoteTitleHint))

	ui.bodyEntry = widget.NewMultiLineEntry()
	ui.bodyEntry.SetPlaceHolder(ui.localization.GetText(KeyNoteBodyHint))
	ui.bodyEntry.Wrapping = fyne.TextWrapWord

	ui.saveBtn = widget.NewButton(ui.localization.GetText(KeySaveNote), ui.onSaveNote)
	ui.saveBtn.Importance = widget.HighImportance

	ui.deleteBtn = widget.NewButton(ui.localization.GetText(KeyDeleteNote), ui.onDeleteNote)
	ui.deleteBtn.Importance = widget.DangerImportance
	ui.deleteBtn.Disable()

	editorButtons := container.NewHBox(ui.saveBtn, ui.deleteBtn)
	editorPanel := container.NewBorder(ui.titleEntry, editorButtons, nil, nil, ui.bodyEntry)

	// Notification panel above the content (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	// Status bar: connection state left, last auto-backup right
	ui.statusIndicator = NewStatusIndicator(ui.localization)
	ui.lastBackupLabel = widget.NewLabel("")
	ui.lastBackupLabel.Alignment = fyne.TextAlignTrailing
	ui.refreshStatusBar()

	statusBar := container.NewBorder(widget.NewSeparator(), nil, ui.statusIndicator, nil, ui.lastBackupLabel)

	// Main layout
	split := container.NewHSplit(container.NewStack(notesSpacer, notesPanel), editorPanel)
	split.SetOffset(0.3)

	content := container.NewBorder(
		ui.notificationContainer, // top
		statusBar,                // bottom
		nil, nil,
		split,
	)

	ui.window.SetContent(content)

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	restoreItem := fyne.NewMenuItem(ui.localization.GetText(KeyRestoreFromWebDAV), ui.onShowRestore)
	backupNowItem := fyne.NewMenuItem(ui.localization.GetText(KeyBackupNow), ui.onBackupNow)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, restoreItem, backupNowItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
	if ui.trayShown {
		ui.setupTray()
	}
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.notesHeader.SetText(ui.localization.GetText(KeyNotes))
	ui.newBtn.SetText(ui.localization.GetText(KeyNewNote))
	ui.titleEntry.SetPlaceHolder(ui.localization.GetText(KeyNoteTitleHint))
	ui.bodyEntry.SetPlaceHolder(ui.localization.GetText(KeyNoteBodyHint))
	ui.saveBtn.SetText(ui.localization.GetText(KeySaveNote))
	ui.deleteBtn.SetText(ui.localization.GetText(KeyDeleteNote))

	ui.statusIndicator.RefreshTexts()
	ui.refreshStatusBar()

	ui.noteList.Refresh()
}

// subscribeEvents wires the app-wide events into the window
func (ui *RootUI) subscribeEvents() {
	ui.bus.Subscribe(event.ConfigChanged, func(payload any) {
		category, _ := payload.(string)
		fyne.Do(func() { ui.onConfigChanged(category) })
	})

	ui.bus.Subscribe(event.AutoBackupCompleted, func(payload any) {
		completedAt, _ := payload.(string)
		fyne.Do(func() {
			ui.statusIndicator.SetStatus(model.StatusConnected)
			ui.refreshStatusBar()
			ui.showToastNotification(ui.localization.GetText(KeyBackupCompleted), formatDisplayTime(completedAt))
		})
	})

	ui.bus.Subscribe(event.DatabaseRestored, func(payload any) {
		source, _ := payload.(string)
		fyne.Do(func() {
			ui.clearEditor()
			ui.loadNotes()
			ui.showToastNotification(ui.localization.GetText(KeyDatabaseRestored), source)
		})
	})
}

// onConfigChanged reacts to a saved settings category
func (ui *RootUI) onConfigChanged(category string) {
	log.Printf("Config changed: %s", category)

	switch category {
	case event.CategoryAppearance:
		ui.applyTheme()
	case event.CategoryTray:
		ui.setupTray()
		ui.refreshUITexts()
		ui.createMenu()
	case event.CategoryBackup:
		ui.statusIndicator.SetStatus(model.StatusIdle)
		ui.refreshStatusBar()
	}
}

// applyTheme applies the stored theme mode
func (ui *RootUI) applyTheme() {
	ui.app.Settings().SetTheme(NewAppTheme(ui.settings.GetTheme()))
}

// refreshStatusBar updates the last auto-backup label
func (ui *RootUI) refreshStatusBar() {
	text := ui.localization.GetText(KeyLastBackup) + ": "
	if last, ok := ui.settings.GetLastAutoBackupTime(); ok {
		text += last.Local().Format(DisplayTimeLayout)
	} else {
		text += ui.localization.GetText(KeyNever)
	}
	ui.lastBackupLabel.SetText(text)
}

// setupTray installs the system tray menu when the platform has a tray
// and the setting is on. Fyne cannot remove a tray icon once shown, so
// switching the setting off leaves the icon until the next launch; the
// close behavior honors the setting immediately.
func (ui *RootUI) setupTray() {
	desk, ok := ui.app.(desktop.App)
	if !ok {
		return
	}

	if !ui.settings.GetTrayEnabled() {
		if ui.trayShown {
			log.Printf("Tray disabled; icon disappears on next launch")
		}
		return
	}

	showItem := fyne.NewMenuItem(ui.localization.GetText(KeyShowWindow), func() {
		ui.window.Show()
	})
	backupItem := fyne.NewMenuItem(ui.localization.GetText(KeyBackupNow), ui.onBackupNow)
	quitItem := fyne.NewMenuItem(ui.localization.GetText(KeyQuit), func() {
		ui.app.Quit()
	})
	quitItem.IsQuit = true

	desk.SetSystemTrayMenu(fyne.NewMenu(
		ui.localization.GetText(KeyAppTitle),
		showItem,
		backupItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	))
	ui.trayShown = true
}

// setupCloseIntercept hides to tray instead of quitting while the tray
// icon is visible and enabled
func (ui *RootUI) setupCloseIntercept() {
	ui.window.SetCloseIntercept(func() {
		if ui.trayShown && ui.settings.GetTrayEnabled() {
			ui.window.Hide()
			return
		}
		ui.app.Quit()
	})
}

// createNoteItem creates a new note list row
func (ui *RootUI) createNoteItem() fyne.CanvasObject {
	title := widget.NewLabel("")
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Truncation = fyne.TextTruncateEllipsis

	updated := widget.NewLabel("")
	updated.Importance = widget.LowImportance

	return container.NewVBox(title, updated)
}

// updateNoteItem updates a note list row with current data
func (ui *RootUI) updateNoteItem(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(ui.notes) {
		return
	}
	note := ui.notes[id]

	box, ok := obj.(*fyne.Container)
	if !ok || len(box.Objects) < 2 {
		return
	}

	if title, ok := box.Objects[0].(*widget.Label); ok {
		title.SetText(note.DisplayTitle())
	}
	if updated, ok := box.Objects[1].(*widget.Label); ok {
		updated.SetText(formatDisplayTime(note.UpdatedAt))
	}
}

// onNoteSelected loads the selected note into the editor
func (ui *RootUI) onNoteSelected(id widget.ListItemID) {
	if id >= len(ui.notes) {
		return
	}
	note := ui.notes[id]

	ui.selectedID = note.ID
	ui.titleEntry.SetText(note.Title)
	ui.bodyEntry.SetText(note.Body)
	ui.deleteBtn.Enable()
}

// onNewNote clears the editor for a fresh note
func (ui *RootUI) onNewNote() {
	ui.noteList.UnselectAll()
	ui.clearEditor()
	ui.window.Canvas().Focus(ui.titleEntry)
}

// clearEditor resets the editor to the compose state
func (ui *RootUI) clearEditor() {
	ui.selectedID = 0
	ui.titleEntry.SetText("")
	ui.bodyEntry.SetText("")
	ui.deleteBtn.Disable()
}

// onSaveNote persists the editor content through the bridge
func (ui *RootUI) onSaveNote() {
	title := ui.titleEntry.Text
	body := ui.bodyEntry.Text
	if strings.TrimSpace(title) == "" && strings.TrimSpace(body) == "" {
		return
	}

	note := model.Note{ID: ui.selectedID, Title: title, Body: body}
	go func() {
		id, err := ui.client.SaveNote(context.Background(), note)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Saving note failed: %v", err)
				dialog.ShowError(err, ui.window)
				return
			}

			ui.selectedID = id
			ui.deleteBtn.Enable()
			ui.loadNotes()
			widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyNoteSaved)), ui.window.Canvas())
		})
	}()
}

// onDeleteNote removes the selected note after confirmation
func (ui *RootUI) onDeleteNote() {
	if ui.selectedID == 0 {
		return
	}

	loc := ui.localization
	dialog.ShowConfirm(loc.GetText(KeyDeleteNote), loc.GetText(KeyConfirmDeleteNote), func(confirmed bool) {
		if !confirmed {
			return
		}

		id := ui.selectedID
		go func() {
			err := ui.client.DeleteNote(context.Background(), id)
			fyne.Do(func() {
				if err != nil {
					log.Printf("Deleting note %d failed: %v", id, err)
					dialog.ShowError(err, ui.window)
					return
				}

				ui.clearEditor()
				ui.loadNotes()
				widget.ShowPopUp(widget.NewLabel(loc.GetText(KeyNoteDeleted)), ui.window.Canvas())
			})
		}()
	}, ui.window)
}

// loadNotes refreshes the notes column through the bridge. A failed
// listing keeps the current column and logs; direct user actions
// surface their own errors.
func (ui *RootUI) loadNotes() {
	go func() {
		notes, err := ui.client.ListNotes(context.Background())
		if err != nil {
			log.Printf("Listing notes failed: %v", err)
			return
		}
		fyne.Do(func() {
			ui.setNotes(notes)
		})
	}()
}

// setNotes replaces the notes column content
func (ui *RootUI) setNotes(notes []model.Note) {
	ui.notes = notes
	ui.noteList.Refresh()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewBackupSettingsDialog(ui.settings, ui.localization, ui.client, ui.bus, ui.window).Show()
}

// onShowRestore shows the WebDAV restore dialog. The restore itself
// announces completion through the database-restored event.
func (ui *RootUI) onShowRestore() {
	NewWebDAVRestoreDialog(ui.settings, ui.localization, ui.client, ui.window, func(filename string) {
		log.Printf("Restore completed from %s", filename)
	}).Show()
}

// onBackupNow runs a backup to the active destination immediately
func (ui *RootUI) onBackupNow() {
	ui.showNotification(ui.localization.GetText(KeyBackingUp), true)
	ui.statusIndicator.SetStatus(model.StatusConnecting)

	go func() {
		err := ui.scheduler.RunNow()
		fyne.Do(func() {
			ui.hideNotification()
			if err != nil {
				ui.statusIndicator.SetStatus(model.StatusFailed)
				if errors.Is(err, backup.ErrDestinationUnset) {
					ui.showNotification(ui.localization.GetText(KeyDestinationUnset), false)
					return
				}
				log.Printf("Manual backup failed: %v", err)
				ui.showNotification(IconError+" "+ui.localization.GetText(KeyBackupFailed)+": "+faultText(ui.localization, err), false)
				return
			}
			// Success surfaces through the auto-backup-completed event
		})
	}()
}

// showNotification displays a message in the notification panel above
// the content. When spinning is true, a spinner indicates background
// activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// showToastNotification shows an auto-hiding in-app toast in the
// top-right corner
func (ui *RootUI) showToastNotification(title, message string) {
	titleLabel := widget.NewLabel(title)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(message)
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, titleLabel, closeBtn)
	content := container.NewVBox(header, messageLabel)

	toastPopup = widget.NewModalPopUp(content, ui.window.Canvas())

	// Position in top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPos := fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin)

	toastPopup.Resize(toastSize)
	toastPopup.Move(toastPos)
	toastPopup.Show()

	// Auto-hide after configured time
	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(func() {
			if toastPopup != nil {
				toastPopup.Hide()
			}
		})
	}()
}
