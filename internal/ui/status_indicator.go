package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/aitoolbox/ai-toolbox/internal/model"
)

// StatusIndicator shows a connection state as a colored dot with a
// localized label. Used in the status bar and the settings dialog
// while testing a WebDAV destination.
type StatusIndicator struct {
	widget.BaseWidget

	status       model.ConnectionStatus
	localization *Localization

	dot   *canvas.Circle
	label *widget.Label
}

// NewStatusIndicator creates an indicator in the idle state
func NewStatusIndicator(localization *Localization) *StatusIndicator {
	si := &StatusIndicator{
		status:       model.StatusIdle,
		localization: localization,
	}

	si.dot = canvas.NewCircle(statusColor(model.StatusIdle))
	si.label = widget.NewLabel(si.statusText())

	si.ExtendBaseWidget(si)
	return si
}

// SetStatus updates the indicator to reflect the given state
func (si *StatusIndicator) SetStatus(status model.ConnectionStatus) {
	si.status = status
	si.dot.FillColor = statusColor(status)
	si.label.SetText(si.statusText())
	si.Refresh()
}

// Status returns the currently displayed state
func (si *StatusIndicator) Status() model.ConnectionStatus {
	return si.status
}

// RefreshTexts re-renders the label after a language change
func (si *StatusIndicator) RefreshTexts() {
	si.label.SetText(si.statusText())
}

func (si *StatusIndicator) statusText() string {
	switch si.status {
	case model.StatusConnecting:
		return si.localization.GetText(KeyStatusConnecting)
	case model.StatusConnected:
		return si.localization.GetText(KeyStatusConnected)
	case model.StatusFailed:
		return si.localization.GetText(KeyStatusFailed)
	default:
		return si.localization.GetText(KeyStatusIdle)
	}
}

// statusColor maps a connection state to its dot color
func statusColor(status model.ConnectionStatus) color.Color {
	switch status {
	case model.StatusConnecting:
		return theme.Color(theme.ColorNameWarning)
	case model.StatusConnected:
		return theme.Color(theme.ColorNameSuccess)
	case model.StatusFailed:
		return theme.Color(theme.ColorNameError)
	default:
		return theme.Color(theme.ColorNameDisabled)
	}
}

// CreateRenderer creates the widget renderer
func (si *StatusIndicator) CreateRenderer() fyne.WidgetRenderer {
	return &statusIndicatorRenderer{indicator: si}
}

// statusIndicatorRenderer renders the dot and label side by side
type statusIndicatorRenderer struct {
	indicator *StatusIndicator
	layout    *fyne.Container
}

// Layout arranges the components
func (r *statusIndicatorRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *statusIndicatorRenderer) MinSize() fyne.Size {
	if r.layout == nil {
		r.createLayout()
	}
	return r.layout.MinSize()
}

// Refresh refreshes the renderer
func (r *statusIndicatorRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.indicator.dot.Refresh()
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *statusIndicatorRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *statusIndicatorRenderer) Destroy() {}

// createLayout creates the main layout
func (r *statusIndicatorRenderer) createLayout() {
	si := r.indicator

	// Fix the dot diameter using a transparent rectangle underneath
	spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
	spacer.SetMinSize(fyne.NewSize(StatusDotSize, StatusDotSize))
	dotCell := container.NewCenter(container.NewStack(spacer, si.dot))

	r.layout = container.NewHBox(dotCell, si.label)
}
