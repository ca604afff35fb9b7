package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/iptv-player/internal/config"
	"github.com/ytget/iptv-player/internal/model"
	"github.com/ytget/iptv-player/internal/platform"
	"github.com/ytget/iptv-player/internal/player"
	"github.com/ytget/iptv-player/internal/probe"
	"github.com/ytget/iptv-player/internal/registry"
	"github.com/ytget/iptv-player/internal/templater"
)

// Table columns
const (
	ColumnName = iota
	ColumnURL
	columnCount
)

// Services bundles the non-UI components the shell drives
type Services struct {
	Registry *registry.Registry
	Store    registry.Sink
	Engine   player.Engine
	Prober   *probe.Prober
	M3U      *platform.M3UImporter
	YouTube  *platform.YouTubeImporter
	Logger   zerolog.Logger
}

// RootUI represents the main UI structure
type RootUI struct {
	app          fyne.App
	window       fyne.Window
	videoWindow  fyne.Window
	settings     *config.Settings
	localization *Localization
	svc          Services
	controller   *player.Controller
	urls         *templater.Templater
	logger       zerolog.Logger

	playBtn       *widget.Button
	stopBtn       *widget.Button
	fullscreenBtn *widget.Button
	statusLabel   *widget.Label
	channelTable  *widget.Table

	// selection is recorded by stable ID, never by row
	selMu      sync.Mutex
	selectedID string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, svc Services) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		app:          app,
		window:       window,
		settings:     settings,
		localization: localization,
		svc:          svc,
		urls:         templater.New(),
		logger:       svc.Logger.With().Str("component", "ui").Logger(),
	}

	videoWindow, windowed := newVideoWindow(app, localization.GetText(KeyVideoTitle), ui.onFullscreenClick)
	ui.videoWindow = videoWindow

	surfaces := &fullscreenFactory{
		app:    app,
		title:  func() string { return ui.localization.GetText(KeyPressEscape) },
		onExit: ui.onExitFullscreen,
	}
	ui.controller = player.NewController(svc.Engine, windowed, surfaces, svc.Registry, svc.Logger)
	ui.controller.SetURLGenerator(ui.urls)
	ui.controller.SetOptions(settings.PlayerOptions())
	ui.controller.SetUpdateCallback(ui.onPlayerUpdate)

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetIcon(LoadLogoResource())
	window.Resize(fyne.NewSize(MainWindowWidth, MainWindowHeight))
	window.SetMaster()
	window.SetOnClosed(ui.shutdown)

	ui.setupUI()
	return ui
}

// Controller returns the playback controller
func (ui *RootUI) Controller() *player.Controller {
	return ui.controller
}

// ShowAndRun shows both windows and runs the application loop
func (ui *RootUI) ShowAndRun() {
	ui.videoWindow.Show()
	ui.window.ShowAndRun()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.playBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyPlay), theme.MediaPlayIcon(), ui.onPlayClick)
	ui.playBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyStop), theme.MediaStopIcon(), ui.onStopClick)
	ui.fullscreenBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyFullscreen), theme.ViewFullScreenIcon(), ui.onFullscreenClick)

	ui.statusLabel = widget.NewLabel(ui.localization.GetText(KeyStatusIdle))
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	ui.fullscreenBtn.Disable()

	controls := container.NewVBox(ui.playBtn, ui.stopBtn, ui.fullscreenBtn, widget.NewSeparator(), ui.statusLabel)
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(ControlPanelWidth, 0))
	left := container.NewStack(spacer, controls)

	ui.channelTable = widget.NewTableWithHeaders(
		func() (int, int) { return ui.svc.Registry.Len(), columnCount },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		ui.updateChannelCell,
	)
	ui.channelTable.ShowHeaderColumn = false
	ui.channelTable.CreateHeader = func() fyne.CanvasObject { return widget.NewLabel("") }
	ui.channelTable.UpdateHeader = ui.updateHeaderCell
	ui.channelTable.SetColumnWidth(ColumnName, NameColumnWidth)
	ui.channelTable.SetColumnWidth(ColumnURL, URLColumnWidth)
	ui.channelTable.OnSelected = ui.onChannelSelected

	ui.window.SetContent(container.NewBorder(nil, nil, left, nil, ui.channelTable))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	t := ui.localization.GetText

	fileMenu := fyne.NewMenu(t(KeyFile),
		fyne.NewMenuItem(t(KeyImportM3U), ui.onImportM3U),
		fyne.NewMenuItem(t(KeyImportYouTube), ui.onImportYouTube),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(t(KeySettings), ui.onShowSettings),
		fyne.NewMenuItem(t(KeyOpenConfigFolder), ui.onOpenConfigFolder),
	)

	toolsMenu := fyne.NewMenu(t(KeyTools),
		fyne.NewMenuItem(t(KeyStreamInfo), ui.onStreamInfo),
	)

	languageMenu := fyne.NewMenu(t(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, toolsMenu, languageMenu))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.videoWindow.SetTitle(ui.localization.GetText(KeyVideoTitle))
	ui.playBtn.SetText(ui.localization.GetText(KeyPlay))
	ui.stopBtn.SetText(ui.localization.GetText(KeyStop))
	ui.fullscreenBtn.SetText(ui.localization.GetText(KeyFullscreen))
	ui.renderStatus(player.Status{
		State:   ui.controller.State(),
		Mode:    ui.controller.Mode(),
		Session: ui.controller.Session(),
	})
	ui.channelTable.Refresh()
}

func (ui *RootUI) updateHeaderCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)
	label.TextStyle = fyne.TextStyle{Bold: true}
	switch id.Col {
	case ColumnName:
		label.SetText(ui.localization.GetText(KeyColumnName))
	case ColumnURL:
		label.SetText(ui.localization.GetText(KeyColumnURL))
	}
}

func (ui *RootUI) updateChannelCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)
	entry, ok := ui.svc.Registry.At(id.Row)
	if !ok {
		label.SetText("")
		return
	}
	switch id.Col {
	case ColumnName:
		label.SetText(entry.GetDisplayName())
	case ColumnURL:
		label.SetText(entry.URLTemplate)
	}
}

// onChannelSelected records the stable ID of the clicked row
func (ui *RootUI) onChannelSelected(id widget.TableCellID) {
	entry, ok := ui.svc.Registry.At(id.Row)
	if !ok {
		return
	}
	ui.setSelectedID(entry.ID)
}

func (ui *RootUI) setSelectedID(id string) {
	ui.selMu.Lock()
	defer ui.selMu.Unlock()
	ui.selectedID = id
}

// selectedEntry resolves the recorded selection against the registry
func (ui *RootUI) selectedEntry() *model.ChannelEntry {
	ui.selMu.Lock()
	id := ui.selectedID
	ui.selMu.Unlock()

	if id == "" {
		return nil
	}
	entry, ok := ui.svc.Registry.Lookup(id)
	if !ok {
		return nil
	}
	return entry
}

// onPlayClick starts the selected channel
func (ui *RootUI) onPlayClick() {
	entry := ui.selectedEntry()
	if entry != nil {
		ui.videoWindow.Show()
	}
	if err := ui.controller.Play(entry); err != nil {
		ui.logger.Debug().Err(err).Msg("play failed")
		return
	}

	if ui.settings.GetProbeBeforePlay() {
		if session := ui.controller.Session(); session != nil {
			ui.probeInBackground(session.ResolvedURL)
		}
	}
}

func (ui *RootUI) onStopClick() {
	ui.controller.Stop()
}

func (ui *RootUI) onFullscreenClick() {
	if err := ui.controller.EnterFullscreen(); err != nil {
		ui.logger.Error().Err(err).Msg("enter fullscreen failed")
	}
}

func (ui *RootUI) onExitFullscreen() {
	if err := ui.controller.ExitFullscreen(); err != nil {
		ui.logger.Error().Err(err).Msg("exit fullscreen failed")
	}
}

// onPlayerUpdate may run on an engine thread
func (ui *RootUI) onPlayerUpdate(status player.Status) {
	fyne.Do(func() {
		ui.renderStatus(status)
	})
}

// renderStatus updates the status line. Must run on the UI thread.
func (ui *RootUI) renderStatus(status player.Status) {
	ui.statusLabel.SetText(ui.statusText(status))
	if status.State.IsPlaying() && status.Mode == model.Windowed {
		ui.fullscreenBtn.Enable()
	} else {
		ui.fullscreenBtn.Disable()
	}
}

// statusText renders a controller status as one localized line
func (ui *RootUI) statusText(status player.Status) string {
	t := ui.localization.GetText

	if status.Err != nil {
		switch {
		case errors.Is(status.Err, player.ErrNoSelection):
			return t(KeySelectChannel)
		case errors.Is(status.Err, player.ErrNoSurface):
			return t(KeyNoVideoSurface)
		default:
			return t(KeyPlaybackError) + ": " + status.Err.Error()
		}
	}

	if !status.State.IsPlaying() {
		return t(KeyStatusIdle)
	}

	text := t(KeyStatusPlaying)
	if status.Mode == model.Fullscreen {
		text = t(KeyStatusFullscreen)
	}
	if status.Session != nil {
		text += MiddleDotSeparator + status.Session.ChannelName
	}
	return text
}

// showStatus replaces the status line from any goroutine
func (ui *RootUI) showStatus(message string) {
	fyne.Do(func() {
		ui.statusLabel.SetText(message)
	})
}

// probeInBackground reports origin reachability without blocking playback
func (ui *RootUI) probeInBackground(streamURL string) {
	go func() {
		reachable := ui.svc.Prober.IsReachable(context.Background(), streamURL)
		key := KeyServerUnreachable
		if reachable {
			key = KeyServerReachable
		}
		origin, _ := probe.Origin(streamURL)
		ui.showStatus(ui.localization.GetText(key) + MiddleDotSeparator + origin)
	}()
}

// onStreamInfo inspects the playing stream, or the selected channel when idle
func (ui *RootUI) onStreamInfo() {
	var streamURL string
	if session := ui.controller.Session(); session != nil {
		streamURL = session.ResolvedURL
	} else if entry := ui.selectedEntry(); entry != nil {
		streamURL = ui.urls.Generate(entry.URLTemplate, ui.svc.Registry.Servers())
	} else {
		ui.statusLabel.SetText(ui.localization.GetText(KeySelectChannel))
		return
	}

	ui.statusLabel.SetText(ui.localization.GetText(KeyInspecting))
	go func() {
		reachable := ui.svc.Prober.IsReachable(context.Background(), streamURL)
		info, err := ui.svc.Prober.Inspect(context.Background(), streamURL)

		fyne.Do(func() {
			if err != nil {
				ui.statusLabel.SetText(ui.localization.GetText(KeyInspectFailed))
				dialog.ShowError(err, ui.window)
				return
			}
			ui.statusLabel.SetText(ui.localization.GetText(KeyStreamInfo))
			dialog.ShowInformation(ui.localization.GetText(KeyStreamInfo), ui.describeStream(info, reachable), ui.window)
		})
	}()
}

// describeStream formats inspection results for the info dialog
func (ui *RootUI) describeStream(info *probe.StreamInfo, reachable bool) string {
	t := ui.localization.GetText

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", info.URL)
	if reachable {
		fmt.Fprintf(&b, "%s\n", t(KeyServerReachable))
	} else {
		fmt.Fprintf(&b, "%s\n", t(KeyServerUnreachable))
	}
	fmt.Fprintf(&b, "HTTP %d%s%s\n", info.StatusCode, MiddleDotSeparator, orDash(info.ContentType))

	if !info.HLS {
		b.WriteString(t(KeyNotHLS))
		return b.String()
	}

	fmt.Fprintf(&b, "%s:\n", t(KeyVariants))
	for _, v := range info.Variants {
		height := DashPlaceholder
		if v.Height > 0 {
			height = fmt.Sprintf("%dp", v.Height)
		}
		fmt.Fprintf(&b, "  %s%s%d kbit/s\n", height, MiddleDotSeparator, v.Bandwidth/1000)
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return DashPlaceholder
	}
	return s
}

// onImportM3U asks for a playlist file and imports it off the UI thread
func (ui *RootUI) onImportM3U() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}

		ui.statusLabel.SetText(ui.localization.GetText(KeyImportStarted))
		go func() {
			defer reader.Close()
			imp, err := ui.svc.M3U.Import(reader, reader.URI().Path())
			ui.finishImport(imp, err)
		}()
	}, ui.window)
	fd.SetFilter(storage.NewExtensionFileFilter(M3UExtensions))
	fd.Show()
}

// onImportYouTube asks for a playlist URL and imports it off the UI thread
func (ui *RootUI) onImportYouTube() {
	t := ui.localization.GetText

	entry := widget.NewEntry()
	entry.SetPlaceHolder("https://www.youtube.com/playlist?list=…")
	entry.Validator = func(s string) error {
		if !strings.Contains(s, platform.PlaylistParam) {
			return platform.ErrInvalidPlaylistURL
		}
		return nil
	}

	items := []*widget.FormItem{widget.NewFormItem(t(KeyPlaylistURL), entry)}
	form := dialog.NewForm(t(KeyImportYouTube), t(KeyImportYouTube), t(KeyCancel), items, func(ok bool) {
		if !ok {
			return
		}
		playlistURL := strings.TrimSpace(entry.Text)
		ui.statusLabel.SetText(t(KeyImportStarted))
		go func() {
			imp, err := ui.svc.YouTube.ImportPlaylist(context.Background(), playlistURL)
			ui.finishImport(imp, err)
		}()
	}, ui.window)
	form.Resize(fyne.NewSize(ImportEntryWidth, form.MinSize().Height))
	form.Show()
}

// finishImport appends and persists imported channels. Runs off the UI thread.
func (ui *RootUI) finishImport(imp *model.ChannelImport, err error) {
	t := ui.localization.GetText

	if err != nil {
		ui.logger.Error().Err(err).Msg("import failed")
		fyne.Do(func() {
			ui.statusLabel.SetText(t(KeyImportFailed))
			dialog.ShowError(err, ui.window)
		})
		return
	}

	ui.svc.Registry.Append(imp.Channels...)
	saveErr := ui.svc.Registry.Save(ui.svc.Store)
	if saveErr != nil {
		ui.logger.Error().Err(saveErr).Msg("failed to persist imported channels")
	}

	fyne.Do(func() {
		ui.channelTable.Refresh()
		if saveErr != nil {
			ui.statusLabel.SetText(t(KeySaveFailed))
			dialog.ShowError(saveErr, ui.window)
			return
		}
		ui.statusLabel.SetText(fmt.Sprintf("%s%s%s (%d)", t(KeyImportDone), MiddleDotSeparator, imp.Title, len(imp.Channels)))
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.controller.SetOptions(ui.settings.PlayerOptions())
		if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
			ui.localization.SetLanguage(lang)
			ui.refreshUITexts()
			ui.createMenu()
		}
	})
}

// onOpenConfigFolder reveals the directory holding the channel list
func (ui *RootUI) onOpenConfigFolder() {
	dir := filepath.Dir(ui.settings.GetChannelsFile())
	go func() {
		err := platform.CreateDirectoryIfNotExists(dir)
		if err == nil {
			err = platform.OpenFolder(dir)
		}
		if err != nil {
			ui.logger.Error().Err(err).Str("dir", dir).Msg("open config folder")
			ui.showStatus(ui.localization.GetText(KeyErrorOpeningFolder) + ": " + dir)
		}
	}()
}

// shutdown stops playback before the engine is released
func (ui *RootUI) shutdown() {
	ui.controller.Shutdown()
	ui.videoWindow.Close()
}
