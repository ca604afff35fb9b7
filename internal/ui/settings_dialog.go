package ui

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/iptv-player/internal/config"
)

var errInvalidCaching = errors.New("network caching must be a number")

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	channelsEntry   *widget.Entry
	serversEntry    *widget.Entry
	cachingEntry    *widget.Entry
	languageSelect  *widget.Select
	probeCheck      *widget.Check
	fullOptionCheck *widget.Check
}

// ShowSettingsDialog builds and shows the settings dialog; onSaved runs
// after the values were stored
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}
	sd.createUI()
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.channelsEntry = widget.NewEntry()
	sd.serversEntry = widget.NewEntry()
	channelsRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(t(KeyBrowse), func() { sd.onBrowseFile(sd.channelsEntry) }), sd.channelsEntry)
	serversRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(t(KeyBrowse), func() { sd.onBrowseFile(sd.serversEntry) }), sd.serversEntry)

	sd.cachingEntry = widget.NewEntry()
	sd.cachingEntry.SetPlaceHolder(strconv.Itoa(config.MinNetworkCaching) + "-" + strconv.Itoa(config.MaxNetworkCaching))
	sd.cachingEntry.Validator = validateCaching

	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.probeCheck = widget.NewCheck(t(KeyProbeBeforePlay), nil)
	sd.fullOptionCheck = widget.NewCheck(t(KeyFullscreenFull), nil)

	form := container.NewVBox(
		widget.NewLabel(t(KeyChannelsFile)+":"),
		channelsRow,
		widget.NewLabel(t(KeyServersFile)+":"),
		serversRow,
		widget.NewSeparator(),

		widget.NewLabel(t(KeyNetworkCaching)+":"),
		sd.cachingEntry,
		sd.probeCheck,
		sd.fullOptionCheck,
		widget.NewSeparator(),

		widget.NewLabel(t(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.channelsEntry.SetText(sd.settings.GetChannelsFile())
	sd.serversEntry.SetText(sd.settings.GetServersFile())
	sd.cachingEntry.SetText(strconv.Itoa(sd.settings.GetNetworkCaching()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
	sd.probeCheck.SetChecked(sd.settings.GetProbeBeforePlay())
	sd.fullOptionCheck.SetChecked(sd.settings.GetFullscreenFullOptions())
}

// onBrowseFile fills target with a chosen file path
func (sd *SettingsDialog) onBrowseFile(target *widget.Entry) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		target.SetText(reader.URI().Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	pathsChanged := false
	if p := strings.TrimSpace(sd.channelsEntry.Text); p != "" && p != sd.settings.GetChannelsFile() {
		sd.settings.SetChannelsFile(p)
		pathsChanged = true
	}
	if p := strings.TrimSpace(sd.serversEntry.Text); p != "" && p != sd.settings.GetServersFile() {
		sd.settings.SetServersFile(p)
		pathsChanged = true
	}

	if err := validateCaching(sd.cachingEntry.Text); err == nil {
		ms, _ := strconv.Atoi(strings.TrimSpace(sd.cachingEntry.Text))
		sd.settings.SetNetworkCaching(ms)
	} else {
		dialog.ShowError(err, sd.window)
	}

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}
	sd.settings.SetProbeBeforePlay(sd.probeCheck.Checked)
	sd.settings.SetFullscreenFullOptions(sd.fullOptionCheck.Checked)

	message := sd.localization.GetText(KeySettingsSaved)
	if pathsChanged {
		message += "\n" + sd.localization.GetText(KeyRestartRequired)
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), message, sd.window)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// validateCaching accepts an integer; range clamping happens in config
func validateCaching(text string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(text)); err != nil {
		return errInvalidCaching
	}
	return nil
}
