package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconLanguage = "🌐"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Window sizing
const (
	MainWindowWidth   float32 = 800
	MainWindowHeight  float32 = 520
	VideoWindowWidth  float32 = 800
	VideoWindowHeight float32 = 450
)

// Layout sizing (channel table / control panel)
const (
	ControlPanelWidth float32 = 140
	NameColumnWidth   float32 = 220
	URLColumnWidth    float32 = 420
	SettingsWidth     float32 = 520
	SettingsHeight    float32 = 380
	ImportEntryWidth  float32 = 420
)

// M3U file extensions accepted by the import dialog
var M3UExtensions = []string{".m3u", ".m3u8"}
