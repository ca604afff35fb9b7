package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"github.com/ytget/iptv-player/internal/config"
	"github.com/ytget/iptv-player/internal/logging"
	"github.com/ytget/iptv-player/internal/platform"
	"github.com/ytget/iptv-player/internal/probe"
	"github.com/ytget/iptv-player/internal/registry"
	"github.com/ytget/iptv-player/internal/store"
	"github.com/ytget/iptv-player/internal/ui"
	"github.com/ytget/iptv-player/internal/vlc"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.iptv-player"
	AppName = "IPTV Player"

	LogLevelEnv = "IPTV_PLAYER_LOG_LEVEL"
)

func main() {
	configDir, err := platform.GetConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config dir: %v\n", err)
		configDir = "."
	}

	logger, closer, err := logging.Init(configDir, logging.ParseLevel(os.Getenv(LogLevelEnv)))
	if err != nil {
		logger.Warn().Err(err).Msg("file logging disabled")
	}
	defer closer.Close()

	logger.Info().Str("version", version).Str("config_dir", configDir).Msg(AppName + " starting")

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))

	// Initialize services
	settings := config.NewSettings(myApp)
	channelStore := &store.Store{
		ChannelsPath: settings.GetChannelsFile(),
		ServersPath:  settings.GetServersFile(),
	}

	reg := registry.New(logger)
	reg.Load(channelStore)

	engine, err := vlc.NewEngine(logger)
	if err != nil {
		logger.Error().Err(err).Msg("media engine unavailable")
		myWindow.Resize(fyne.NewSize(ui.MainWindowWidth, ui.MainWindowHeight))
		dialog.ShowError(fmt.Errorf("libVLC: %w", err), myWindow)
		myWindow.ShowAndRun()
		return
	}
	defer engine.Release()

	root := ui.NewRootUI(myWindow, myApp, settings, ui.Services{
		Registry: reg,
		Store:    channelStore,
		Engine:   engine,
		Prober:   probe.NewProber(logger),
		M3U:      platform.NewM3UImporter(logger),
		YouTube:  platform.NewYouTubeImporter(logger),
		Logger:   logger,
	})

	// Show and run
	root.ShowAndRun()
	logger.Info().Msg(AppName + " stopped")
}
