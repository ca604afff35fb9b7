package config

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/iptv-player/internal/store"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestConfigFiles(t *testing.T) {
	t.Setenv("IPTV_PLAYER_CONFIG_DIR", t.TempDir())
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default values
	channels := settings.GetChannelsFile()
	if filepath.Base(channels) != store.ChannelsFileName {
		t.Errorf("Expected default channels file %s, got %s", store.ChannelsFileName, channels)
	}
	servers := settings.GetServersFile()
	if filepath.Base(servers) != store.ServersFileName {
		t.Errorf("Expected default servers file %s, got %s", store.ServersFileName, servers)
	}

	// Defaults are persisted
	if app.Preferences().String(KeyChannelsFile) != channels {
		t.Error("Default channels file should be persisted")
	}

	// Test setting custom values
	settings.SetChannelsFile("/custom/channel_config.json")
	settings.SetServersFile("/custom/server_config.json")

	if got := settings.GetChannelsFile(); got != "/custom/channel_config.json" {
		t.Errorf("Expected custom channels file, got %s", got)
	}
	if got := settings.GetServersFile(); got != "/custom/server_config.json" {
		t.Errorf("Expected custom servers file, got %s", got)
	}
}

func TestNetworkCaching(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if got := settings.GetNetworkCaching(); got != DefaultNetworkCaching {
		t.Errorf("Expected default network caching %d, got %d", DefaultNetworkCaching, got)
	}

	tests := []struct {
		name     string
		value    int
		expected int
	}{
		{"custom value", 1500, 1500},
		{"zero is allowed", 0, 0},
		{"negative clamped", -10, MinNetworkCaching},
		{"too large clamped", 60000, MaxNetworkCaching},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings.SetNetworkCaching(tt.value)
			if got := settings.GetNetworkCaching(); got != tt.expected {
				t.Errorf("SetNetworkCaching(%d) stored %d, expected %d", tt.value, got, tt.expected)
			}
		})
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	// Test setting custom value
	settings.SetLanguage("zh")

	if got := settings.GetLanguage(); got != "zh" {
		t.Errorf("Expected language zh, got %s", got)
	}
}

func TestBooleanSwitches(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetProbeBeforePlay() != DefaultProbeBeforePlay {
		t.Error("Unexpected default for probe before play")
	}
	if settings.GetFullscreenFullOptions() != DefaultFullscreenFullOptions {
		t.Error("Unexpected default for fullscreen full options")
	}

	settings.SetProbeBeforePlay(true)
	settings.SetFullscreenFullOptions(true)

	if !settings.GetProbeBeforePlay() {
		t.Error("Probe before play should be enabled")
	}
	if !settings.GetFullscreenFullOptions() {
		t.Error("Fullscreen full options should be enabled")
	}
}

func TestPlayerOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	settings.SetNetworkCaching(800)
	settings.SetFullscreenFullOptions(true)

	opts := settings.PlayerOptions()
	if opts.NetworkCaching != 800 {
		t.Errorf("Expected network caching 800, got %d", opts.NetworkCaching)
	}
	if !opts.FullscreenFullOptions {
		t.Error("Expected fullscreen full options to be carried over")
	}
	if opts.UserAgent == "" {
		t.Error("Expected default user agent")
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	for _, code := range []string{"system", "en", "zh", "ru"} {
		if _, ok := options[code]; !ok {
			t.Errorf("Language options should contain %q", code)
		}
	}
}
