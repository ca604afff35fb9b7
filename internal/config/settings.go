package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/iptv-player/internal/platform"
	"github.com/ytget/iptv-player/internal/player"
	"github.com/ytget/iptv-player/internal/store"
)

// Settings keys for Fyne preferences
const (
	KeyChannelsFile          = "channels_file"
	KeyServersFile           = "servers_file"
	KeyNetworkCaching        = "network_caching_ms"
	KeyLanguage              = "app_language"
	KeyProbeBeforePlay       = "probe_before_play"
	KeyFullscreenFullOptions = "fullscreen_full_options"
)

// Default values
const (
	DefaultNetworkCaching        = player.DefaultNetworkCaching
	DefaultLanguage              = "system"
	DefaultProbeBeforePlay       = false
	DefaultFullscreenFullOptions = false
)

// Network caching bounds in milliseconds
const (
	MinNetworkCaching = 0
	MaxNetworkCaching = 10000
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetChannelsFile returns the path of the channel list
func (s *Settings) GetChannelsFile() string {
	path := s.app.Preferences().String(KeyChannelsFile)
	if path == "" {
		path = defaultConfigPath(store.ChannelsFileName)
		s.SetChannelsFile(path)
	}
	return path
}

// SetChannelsFile sets the path of the channel list
func (s *Settings) SetChannelsFile(path string) {
	s.app.Preferences().SetString(KeyChannelsFile, path)
}

// GetServersFile returns the path of the server list
func (s *Settings) GetServersFile() string {
	path := s.app.Preferences().String(KeyServersFile)
	if path == "" {
		path = defaultConfigPath(store.ServersFileName)
		s.SetServersFile(path)
	}
	return path
}

// SetServersFile sets the path of the server list
func (s *Settings) SetServersFile(path string) {
	s.app.Preferences().SetString(KeyServersFile, path)
}

// GetNetworkCaching returns the engine network caching in milliseconds
func (s *Settings) GetNetworkCaching() int {
	return s.app.Preferences().IntWithFallback(KeyNetworkCaching, DefaultNetworkCaching)
}

// SetNetworkCaching sets the engine network caching, clamped to the valid range
func (s *Settings) SetNetworkCaching(ms int) {
	if ms < MinNetworkCaching {
		ms = MinNetworkCaching
	}
	if ms > MaxNetworkCaching {
		ms = MaxNetworkCaching
	}
	s.app.Preferences().SetInt(KeyNetworkCaching, ms)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetProbeBeforePlay returns whether the origin is probed when a channel starts.
// The result is shown in the status line and never blocks playback.
func (s *Settings) GetProbeBeforePlay() bool {
	return s.app.Preferences().BoolWithFallback(KeyProbeBeforePlay, DefaultProbeBeforePlay)
}

// SetProbeBeforePlay sets whether to probe the origin when a channel starts
func (s *Settings) SetProbeBeforePlay(probe bool) {
	s.app.Preferences().SetBool(KeyProbeBeforePlay, probe)
}

// GetFullscreenFullOptions returns whether full screen restarts use the full option set
func (s *Settings) GetFullscreenFullOptions() bool {
	return s.app.Preferences().BoolWithFallback(KeyFullscreenFullOptions, DefaultFullscreenFullOptions)
}

// SetFullscreenFullOptions sets whether full screen restarts use the full option set
func (s *Settings) SetFullscreenFullOptions(full bool) {
	s.app.Preferences().SetBool(KeyFullscreenFullOptions, full)
}

// PlayerOptions builds engine options from the current settings
func (s *Settings) PlayerOptions() player.Options {
	opts := player.DefaultOptions()
	opts.NetworkCaching = s.GetNetworkCaching()
	opts.FullscreenFullOptions = s.GetFullscreenFullOptions()
	return opts
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"zh":     "中文",
		"ru":     "Русский",
	}
}

func defaultConfigPath(name string) string {
	dir, err := platform.GetConfigDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), platform.ConfigDirName)
	}
	return filepath.Join(dir, name)
}
