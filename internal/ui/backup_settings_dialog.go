package ui

import (
	"context"
	"log"
	"net/url"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/aitoolbox/ai-toolbox/internal/bridge"
	"github.com/aitoolbox/ai-toolbox/internal/config"
	"github.com/aitoolbox/ai-toolbox/internal/event"
	"github.com/aitoolbox/ai-toolbox/internal/model"
	"github.com/aitoolbox/ai-toolbox/internal/platform"
)

// BackupSettingsDialog is the settings modal: backup destination
// (local folder or WebDAV server), auto-backup schedule, appearance
// and tray. Switching the destination type only swaps the visible
// field group; the hidden group keeps whatever was typed into it.
type BackupSettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	client       *bridge.Client
	bus          *event.Bus
	window       fyne.Window
	dialog       *dialog.ConfirmDialog

	// Destination
	backupTypeRadio *widget.RadioGroup
	localPathEntry  *widget.Entry
	urlEntry        *widget.Entry
	usernameEntry   *widget.Entry
	passwordEntry   *widget.Entry
	remotePathEntry *widget.Entry
	testBtn         *widget.Button
	testIndicator   *StatusIndicator
	localGroup      *fyne.Container
	webdavGroup     *fyne.Container

	// Auto backup
	autoEnabledCheck *widget.Check
	intervalEntry    *widget.Entry
	maxKeepEntry     *widget.Entry

	// Appearance and tray
	themeSelect *widget.Select
	trayCheck   *widget.Check

	localLabel  string
	webdavLabel string
	themeModes  map[string]config.ThemeMode

	// Values at load time, to publish change events only for what moved
	prevTheme config.ThemeMode
	prevTray  bool
}

// NewBackupSettingsDialog creates a new settings dialog
func NewBackupSettingsDialog(settings *config.Settings, localization *Localization, client *bridge.Client, bus *event.Bus, window fyne.Window) *BackupSettingsDialog {
	d := &BackupSettingsDialog{
		settings:     settings,
		localization: localization,
		client:       client,
		bus:          bus,
		window:       window,
	}

	d.createUI()
	return d
}

// Show displays the settings dialog
func (d *BackupSettingsDialog) Show() {
	d.loadCurrentSettings()
	d.dialog.Show()
}

// createUI creates the settings dialog UI
func (d *BackupSettingsDialog) createUI() {
	loc := d.localization

	// Destination type selection
	d.localLabel = loc.GetText(KeyLocalFolder)
	d.webdavLabel = loc.GetText(KeyWebDAVServer)
	d.backupTypeRadio = widget.NewRadioGroup([]string{d.localLabel, d.webdavLabel}, d.onBackupTypeChanged)
	d.backupTypeRadio.Horizontal = true

	// Local destination fields
	d.localPathEntry = widget.NewEntry()
	d.localPathEntry.SetPlaceHolder(loc.GetText(KeyLocalBackupPath))

	browseBtn := widget.NewButton(loc.GetText(KeyBrowse), d.onBrowseDirectory)
	openBtn := widget.NewButton(loc.GetText(KeyOpenFolder), d.onOpenBackupFolder)
	localPathRow := container.NewBorder(nil, nil, nil, container.NewHBox(browseBtn, openBtn), d.localPathEntry)

	d.localGroup = container.NewVBox(
		widget.NewLabel(loc.GetText(KeyLocalBackupPath)+":"),
		localPathRow,
	)

	// WebDAV destination fields
	d.urlEntry = widget.NewEntry()
	d.urlEntry.SetPlaceHolder("https://dav.example.com/remote.php/dav")

	d.usernameEntry = widget.NewEntry()
	d.passwordEntry = widget.NewPasswordEntry()

	d.remotePathEntry = widget.NewEntry()
	d.remotePathEntry.SetPlaceHolder("backups/ai-toolbox")

	d.testIndicator = NewStatusIndicator(loc)
	d.testBtn = widget.NewButton(loc.GetText(KeyTestConnection), d.onTestConnection)
	testRow := container.NewHBox(d.testBtn, d.testIndicator)

	d.webdavGroup = container.NewVBox(
		widget.NewLabel(loc.GetText(KeyWebDAVURL)+":"),
		d.urlEntry,
		widget.NewLabel(loc.GetText(KeyUsername)+":"),
		d.usernameEntry,
		widget.NewLabel(loc.GetText(KeyPassword)+":"),
		d.passwordEntry,
		widget.NewLabel(loc.GetText(KeyRemotePath)+":"),
		d.remotePathEntry,
		testRow,
	)

	// Auto backup fields
	d.autoEnabledCheck = widget.NewCheck(loc.GetText(KeyEnableAutoBackup), nil)

	d.intervalEntry = widget.NewEntry()
	d.intervalEntry.SetPlaceHolder("7")

	d.maxKeepEntry = widget.NewEntry()
	d.maxKeepEntry.SetPlaceHolder("5")

	// Appearance fields
	d.themeModes = make(map[string]config.ThemeMode)
	themeOptions := []string{}
	for _, mode := range d.settings.GetThemeOptions() {
		label := loc.GetText(themeLabelKey(mode))
		d.themeModes[label] = mode
		themeOptions = append(themeOptions, label)
	}
	d.themeSelect = widget.NewSelect(themeOptions, nil)

	d.trayCheck = widget.NewCheck(loc.GetText(KeyShowTrayIcon), nil)

	// Create form
	form := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyBackupDestination)),
		widget.NewSeparator(),

		d.backupTypeRadio,
		d.localGroup,
		d.webdavGroup,

		widget.NewSeparator(),
		widget.NewLabel(loc.GetText(KeyAutoBackup)),
		widget.NewSeparator(),

		d.autoEnabledCheck,
		widget.NewLabel(loc.GetText(KeyIntervalDays)+":"),
		d.intervalEntry,
		widget.NewLabel(loc.GetText(KeyMaxKeep)+":"),
		d.maxKeepEntry,

		widget.NewSeparator(),
		widget.NewLabel(loc.GetText(KeyAppearance)),
		widget.NewSeparator(),

		widget.NewLabel(loc.GetText(KeyTheme)+":"),
		d.themeSelect,
		d.trayCheck,
	)

	// Create dialog with buttons
	d.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeyBackupSettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		container.NewVScroll(form),
		d.onSave,
		d.window,
	)

	d.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (d *BackupSettingsDialog) loadCurrentSettings() {
	cfg := d.settings.GetBackupConfig()

	d.localPathEntry.SetText(cfg.LocalBackupPath)
	d.urlEntry.SetText(cfg.WebDAV.URL)
	d.usernameEntry.SetText(cfg.WebDAV.Username)
	d.passwordEntry.SetText(cfg.WebDAV.Password)
	d.remotePathEntry.SetText(cfg.WebDAV.RemotePath)

	if cfg.BackupType == model.BackupTypeWebDAV {
		d.backupTypeRadio.SetSelected(d.webdavLabel)
	} else {
		d.backupTypeRadio.SetSelected(d.localLabel)
	}

	auto := d.settings.GetAutoBackupConfig()
	d.autoEnabledCheck.SetChecked(auto.Enabled)
	d.intervalEntry.SetText(strconv.Itoa(auto.IntervalDays))
	d.maxKeepEntry.SetText(strconv.Itoa(auto.MaxKeep))

	d.prevTheme = d.settings.GetTheme()
	for label, mode := range d.themeModes {
		if mode == d.prevTheme {
			d.themeSelect.SetSelected(label)
			break
		}
	}

	d.prevTray = d.settings.GetTrayEnabled()
	d.trayCheck.SetChecked(d.prevTray)

	d.testIndicator.SetStatus(model.StatusIdle)
	d.testBtn.Enable()
}

// onBackupTypeChanged swaps the visible destination fields. Hidden
// fields keep their entered values.
func (d *BackupSettingsDialog) onBackupTypeChanged(selected string) {
	if selected == d.webdavLabel {
		d.localGroup.Hide()
		d.webdavGroup.Show()
	} else {
		d.webdavGroup.Hide()
		d.localGroup.Show()
	}
}

// selectedBackupType returns the destination type chosen in the radio group
func (d *BackupSettingsDialog) selectedBackupType() model.BackupType {
	if d.backupTypeRadio.Selected == d.webdavLabel {
		return model.BackupTypeWebDAV
	}
	return model.BackupTypeLocal
}

// webdavConfigFromFields collects the WebDAV fields as entered
func (d *BackupSettingsDialog) webdavConfigFromFields() model.WebDAVConfig {
	return model.WebDAVConfig{
		URL:        strings.TrimSpace(d.urlEntry.Text),
		Username:   d.usernameEntry.Text,
		Password:   d.passwordEntry.Text,
		RemotePath: strings.TrimSpace(d.remotePathEntry.Text),
	}
}

// onBrowseDirectory handles directory browsing
func (d *BackupSettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		d.localPathEntry.SetText(uri.Path())
	}, d.window)
}

// onOpenBackupFolder reveals the entered backup directory in the system
// file manager, falling back to the default directory when unset
func (d *BackupSettingsDialog) onOpenBackupFolder() {
	dir := platform.ExpandPath(d.localPathEntry.Text)
	if dir == "" {
		dir = platform.DefaultLocalBackupDir()
	}

	if err := platform.OpenDirectory(dir); err != nil {
		log.Printf("Error opening backup directory %s: %v", dir, err)
		widget.ShowPopUp(widget.NewLabel(d.localization.GetText(KeyErrorOpeningFolder)+": "+err.Error()), d.window.Canvas())
	}
}

// onTestConnection probes the entered WebDAV destination without
// touching stored settings. An empty URL short-circuits to a warning.
func (d *BackupSettingsDialog) onTestConnection() {
	cfg := d.webdavConfigFromFields()
	if cfg.URL == "" {
		dialog.ShowInformation(
			d.localization.GetText(KeyTestConnection),
			d.localization.GetText(KeySuggestCheckURL),
			d.window,
		)
		return
	}

	d.testBtn.Disable()
	d.testIndicator.SetStatus(model.StatusConnecting)

	go func() {
		err := d.client.TestWebDAVConnection(context.Background(), cfg)
		fyne.Do(func() {
			d.testBtn.Enable()
			if err != nil {
				d.testIndicator.SetStatus(model.StatusFailed)
				dialog.ShowInformation(
					d.localization.GetText(KeyConnectionFailed),
					faultText(d.localization, err),
					d.window,
				)
				return
			}
			d.testIndicator.SetStatus(model.StatusConnected)
			dialog.ShowInformation(
				d.localization.GetText(KeyTestConnection),
				d.localization.GetText(KeyConnectionOK),
				d.window,
			)
		})
	}()
}

// validate checks required fields for the selected destination. It
// returns user-facing text, empty when the input is acceptable.
func (d *BackupSettingsDialog) validate() string {
	if d.selectedBackupType() != model.BackupTypeWebDAV {
		return ""
	}

	rawURL := strings.TrimSpace(d.urlEntry.Text)
	if rawURL == "" {
		return d.localization.GetText(KeySuggestCheckURL)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return d.localization.GetText(KeySuggestCheckURL)
	}

	return ""
}

// onSave handles saving the settings
func (d *BackupSettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if msg := d.validate(); msg != "" {
		dialog.ShowInformation(d.localization.GetText(KeyBackupSettings), msg, d.window)
		// Keep the modal open with everything the user typed intact
		d.dialog.Show()
		return
	}

	d.applySave()

	dialog.ShowInformation(
		d.localization.GetText(KeyBackupSettings),
		d.localization.GetText(KeySettingsSaved),
		d.window,
	)
}

// applySave commits the destination first, then the schedule, then the
// appearance and tray changes, publishing one change event per moved
// category.
func (d *BackupSettingsDialog) applySave() {
	backupCfg := model.BackupConfig{
		BackupType:      d.selectedBackupType(),
		LocalBackupPath: strings.TrimSpace(d.localPathEntry.Text),
		WebDAV:          d.webdavConfigFromFields(),
	}
	d.settings.SetBackupConfig(backupCfg)

	autoCfg := model.AutoBackupConfig{
		Enabled:      d.autoEnabledCheck.Checked,
		IntervalDays: parseIntervalDays(d.intervalEntry.Text),
		MaxKeep:      parseMaxKeep(d.maxKeepEntry.Text),
	}
	d.settings.SetAutoBackupConfig(autoCfg)

	d.bus.Publish(event.ConfigChanged, event.CategoryBackup)

	if mode, ok := d.themeModes[d.themeSelect.Selected]; ok && mode != d.prevTheme {
		d.settings.SetTheme(mode)
		d.bus.Publish(event.ConfigChanged, event.CategoryAppearance)
	}

	if d.trayCheck.Checked != d.prevTray {
		d.settings.SetTrayEnabled(d.trayCheck.Checked)
		d.bus.Publish(event.ConfigChanged, event.CategoryTray)
	}
}

// themeLabelKey maps a theme mode to its localization key
func themeLabelKey(mode config.ThemeMode) string {
	switch mode {
	case config.ThemeLight:
		return KeyThemeLight
	case config.ThemeDark:
		return KeyThemeDark
	default:
		return KeyThemeSystem
	}
}

// parseIntervalDays parses the auto-backup interval field. Unparseable
// or sub-daily values land on one day.
func parseIntervalDays(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// parseMaxKeep parses the retention count field. Unparseable or
// negative values disable pruning.
func parseMaxKeep(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
