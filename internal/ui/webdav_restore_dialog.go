package ui

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/aitoolbox/ai-toolbox/internal/bridge"
	"github.com/aitoolbox/ai-toolbox/internal/config"
	"github.com/aitoolbox/ai-toolbox/internal/model"
)

// WebDAVRestoreDialog lists the backup archives on the configured
// WebDAV server and lets the user restore or delete one. A successful
// delete removes that row from the displayed slice without asking the
// server for a fresh listing.
type WebDAVRestoreDialog struct {
	settings     *config.Settings
	localization *Localization
	client       *bridge.Client
	window       fyne.Window
	dialog       dialog.Dialog

	// Called after a completed restore, before the dialog closes
	onRestored func(filename string)

	// Destination captured when the dialog opens
	cfg model.WebDAVConfig

	backups []model.BackupFileInfo

	loading    *fyne.Container
	emptyLabel *widget.Label
	listBox    *fyne.Container
}

// NewWebDAVRestoreDialog creates a new restore dialog
func NewWebDAVRestoreDialog(settings *config.Settings, localization *Localization, client *bridge.Client, window fyne.Window, onRestored func(filename string)) *WebDAVRestoreDialog {
	d := &WebDAVRestoreDialog{
		settings:     settings,
		localization: localization,
		client:       client,
		window:       window,
		onRestored:   onRestored,
	}

	d.createUI()
	return d
}

// Show opens the dialog and starts loading the remote listing. With no
// configured URL it surfaces a warning and never opens.
func (d *WebDAVRestoreDialog) Show() {
	d.cfg = d.settings.GetWebDAVConfig()
	if d.cfg.URL == "" {
		dialog.ShowInformation(
			d.localization.GetText(KeyRestoreFromWebDAV),
			d.localization.GetText(KeySuggestCheckURL),
			d.window,
		)
		return
	}

	d.dialog.Show()
	d.loadBackups()
}

// createUI creates the dialog UI
func (d *WebDAVRestoreDialog) createUI() {
	loc := d.localization

	caption := widget.NewLabel(loc.GetText(KeyLoadingBackups))
	caption.Alignment = fyne.TextAlignCenter
	d.loading = container.NewVBox(caption, widget.NewProgressBarInfinite())
	d.loading.Hide()

	d.emptyLabel = widget.NewLabel(loc.GetText(KeyNoBackupsFound))
	d.emptyLabel.Alignment = fyne.TextAlignCenter
	d.emptyLabel.Hide()

	d.listBox = container.NewVBox()
	scroll := container.NewVScroll(d.listBox)

	content := container.NewBorder(
		d.loading, // top
		nil, nil, nil,
		container.NewStack(scroll, container.NewCenter(d.emptyLabel)),
	)

	d.dialog = dialog.NewCustom(
		loc.GetText(KeyRestoreFromWebDAV),
		loc.GetText(KeyClose),
		content,
		d.window,
	)
	d.dialog.Resize(fyne.NewSize(RestoreDialogWidth, RestoreDialogHeight))
}

// loadBackups fetches the remote listing in the background
func (d *WebDAVRestoreDialog) loadBackups() {
	d.loading.Show()
	d.emptyLabel.Hide()

	cfg := d.cfg
	go func() {
		backups, err := d.client.ListWebDAVBackups(context.Background(), cfg)
		fyne.Do(func() {
			d.loading.Hide()
			if err != nil {
				log.Printf("Listing WebDAV backups failed: %v", err)
				dialog.ShowInformation(
					d.localization.GetText(KeyListBackupsFailed),
					faultText(d.localization, err),
					d.window,
				)
				d.setBackups(nil)
				return
			}
			d.setBackups(backups)
		})
	}()
}

// setBackups replaces the displayed slice and rebuilds the rows
func (d *WebDAVRestoreDialog) setBackups(backups []model.BackupFileInfo) {
	d.backups = backups
	d.rebuildRows()
}

// removeBackup drops exactly one entry from the displayed slice. The
// listing is not re-fetched; a concurrent writer may still diverge
// until the dialog is reopened.
func (d *WebDAVRestoreDialog) removeBackup(filename string) {
	for i, info := range d.backups {
		if info.Filename == filename {
			d.backups = append(d.backups[:i], d.backups[i+1:]...)
			break
		}
	}
	d.rebuildRows()
}

// rebuildRows re-renders the row widgets from the displayed slice
func (d *WebDAVRestoreDialog) rebuildRows() {
	d.listBox.Objects = nil
	for _, info := range d.backups {
		row := NewBackupRow(info, d.localization)
		row.SetCallbacks(d.onRestoreTapped, d.onDeleteTapped)
		d.listBox.Add(row)
	}
	d.listBox.Refresh()

	if len(d.backups) == 0 {
		d.emptyLabel.Show()
	} else {
		d.emptyLabel.Hide()
	}
}

// onRestoreTapped confirms and runs the restore for one archive
func (d *WebDAVRestoreDialog) onRestoreTapped(filename string) {
	loc := d.localization
	dialog.ShowConfirm(loc.GetText(KeyRestore), loc.GetText(KeyConfirmRestore), func(confirmed bool) {
		if !confirmed {
			return
		}

		cfg := d.cfg
		go func() {
			err := d.client.RestoreFromWebDAV(context.Background(), cfg, filename)
			fyne.Do(func() {
				if err != nil {
					log.Printf("Restore from WebDAV failed for %s: %v", filename, err)
					dialog.ShowInformation(
						loc.GetText(KeyRestoreFailed),
						faultText(loc, err),
						d.window,
					)
					return
				}

				d.dialog.Hide()
				if d.onRestored != nil {
					d.onRestored(filename)
				}
			})
		}()
	}, d.window)
}

// onDeleteTapped confirms and deletes one archive from the server
func (d *WebDAVRestoreDialog) onDeleteTapped(filename string) {
	loc := d.localization
	dialog.ShowConfirm(loc.GetText(KeyDelete), loc.GetText(KeyConfirmDelete), func(confirmed bool) {
		if !confirmed {
			return
		}

		cfg := d.cfg
		go func() {
			err := d.client.DeleteWebDAVBackup(context.Background(), cfg, filename)
			fyne.Do(func() {
				if err != nil {
					log.Printf("Deleting WebDAV backup %s failed: %v", filename, err)
					dialog.ShowInformation(
						loc.GetText(KeyDeleteFailed),
						faultText(loc, err),
						d.window,
					)
					return
				}

				d.removeBackup(filename)
				widget.ShowPopUp(widget.NewLabel(loc.GetText(KeyBackupDeleted)), d.window.Canvas())
			})
		}()
	}, d.window)
}
