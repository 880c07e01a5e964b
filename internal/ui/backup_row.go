package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/aitoolbox/ai-toolbox/internal/model"
)

// BackupRow is a list row for one remote backup archive: creation time
// (or the verbatim filename when it does not follow the generated
// pattern), formatted size, and restore/delete actions.
type BackupRow struct {
	widget.BaseWidget

	info         model.BackupFileInfo
	localization *Localization

	timeLabel *widget.Label
	sizeLabel *widget.Label

	restoreBtn *widget.Button
	deleteBtn  *widget.Button

	onRestore func(filename string)
	onDelete  func(filename string)
}

// NewBackupRow creates a row widget for the given archive
func NewBackupRow(info model.BackupFileInfo, localization *Localization) *BackupRow {
	br := &BackupRow{
		info:         info,
		localization: localization,
	}

	br.createUI()
	br.updateFromInfo()
	br.ExtendBaseWidget(br)
	return br
}

// SetCallbacks sets the action callbacks for the row
func (br *BackupRow) SetCallbacks(onRestore, onDelete func(filename string)) {
	if onRestore == nil {
		log.Printf("Warning: onRestore callback is nil for backup %s", br.info.Filename)
	}
	if onDelete == nil {
		log.Printf("Warning: onDelete callback is nil for backup %s", br.info.Filename)
	}

	br.onRestore = onRestore
	br.onDelete = onDelete
}

// UpdateInfo updates the row with new archive data
func (br *BackupRow) UpdateInfo(info model.BackupFileInfo) {
	br.info = info
	br.updateFromInfo()
	br.Refresh()
}

// createUI creates the UI components
func (br *BackupRow) createUI() {
	br.timeLabel = widget.NewLabel("")
	br.timeLabel.TextStyle = fyne.TextStyle{Bold: true}
	br.timeLabel.Truncation = fyne.TextTruncateEllipsis
	br.timeLabel.Alignment = fyne.TextAlignLeading

	br.sizeLabel = widget.NewLabel("")
	br.sizeLabel.Alignment = fyne.TextAlignTrailing
	br.sizeLabel.TextStyle = fyne.TextStyle{Monospace: true}

	br.restoreBtn = widget.NewButton(br.localization.GetText(KeyRestore), func() {
		if br.onRestore != nil {
			br.onRestore(br.info.Filename)
		} else {
			log.Printf("onRestore callback is nil for backup %s", br.info.Filename)
		}
	})
	br.restoreBtn.Importance = widget.MediumImportance

	br.deleteBtn = widget.NewButton(br.localization.GetText(KeyDelete), func() {
		if br.onDelete != nil {
			br.onDelete(br.info.Filename)
		} else {
			log.Printf("onDelete callback is nil for backup %s", br.info.Filename)
		}
	})
	br.deleteBtn.Importance = widget.DangerImportance
}

// updateFromInfo updates UI components from the archive data
func (br *BackupRow) updateFromInfo() {
	br.timeLabel.SetText(formatBackupTimestamp(br.info.Filename))
	br.sizeLabel.SetText(formatFileSize(br.info.Size))
}

// CreateRenderer creates the widget renderer
func (br *BackupRow) CreateRenderer() fyne.WidgetRenderer {
	return &backupRowRenderer{row: br}
}

// backupRowRenderer renders the backup row widget
type backupRowRenderer struct {
	row    *BackupRow
	layout *fyne.Container
}

// Layout arranges the components
func (r *backupRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	if size.Height < RowMinHeight {
		size.Height = RowMinHeight
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *backupRowRenderer) MinSize() fyne.Size {
	if r.layout == nil {
		r.createLayout()
	}
	min := r.layout.MinSize()
	if min.Width < RowMinWidth {
		min.Width = RowMinWidth
	}
	return min
}

// Refresh refreshes the renderer
func (r *backupRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *backupRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *backupRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *backupRowRenderer) createLayout() {
	br := r.row

	// Helper to fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	actionRow := container.NewHBox(br.restoreBtn, br.deleteBtn)

	// Size pinned next to the actions, time stretching on the left
	rightCluster := container.NewHBox(fixedWidth(SizeLabelWidth, br.sizeLabel), actionRow)
	mainContent := container.NewBorder(nil, nil, nil, rightCluster, br.timeLabel)

	r.layout = container.NewVBox(
		mainContent,
		widget.NewSeparator(),
	)
}
