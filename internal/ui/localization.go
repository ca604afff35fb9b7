package ui

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeyVideoTitle          = "video_title"
	KeyPlay                = "play"
	KeyStop                = "stop"
	KeyFullscreen          = "fullscreen"
	KeySettings            = "settings"
	KeyFile                = "file"
	KeyTools               = "tools"
	KeyLanguage            = "language"
	KeyImportM3U           = "import_m3u"
	KeyImportYouTube       = "import_youtube"
	KeyOpenConfigFolder    = "open_config_folder"
	KeyStreamInfo          = "stream_info"
	KeyColumnName          = "column_name"
	KeyColumnURL           = "column_url"
	KeyChannelsFile        = "channels_file"
	KeyServersFile         = "servers_file"
	KeyNetworkCaching      = "network_caching"
	KeyProbeBeforePlay     = "probe_before_play"
	KeyFullscreenFull      = "fullscreen_full_options"
	KeySave                = "save"
	KeyCancel              = "cancel"
	KeyBrowse              = "browse"
	KeyPlaylistURL         = "playlist_url"
	KeySettingsSaved       = "settings_saved"
	KeyRestartRequired     = "restart_required"
	KeyStatusIdle          = "status_idle"
	KeyStatusPlaying       = "status_playing"
	KeyStatusFullscreen    = "status_fullscreen"
	KeySelectChannel       = "select_channel"
	KeyNoVideoSurface      = "no_video_surface"
	KeyPlaybackError       = "playback_error"
	KeyServerReachable     = "server_reachable"
	KeyServerUnreachable   = "server_unreachable"
	KeyImportStarted       = "import_started"
	KeyImportDone          = "import_done"
	KeyImportFailed        = "import_failed"
	KeySaveFailed          = "save_failed"
	KeyInspecting          = "inspecting"
	KeyInspectFailed       = "inspect_failed"
	KeyNotHLS              = "not_hls"
	KeyVariants            = "variants"
	KeyErrorOpeningFolder  = "error_opening_folder"
	KeyPressEscape         = "press_escape"
	KeyInvalidCachingValue = "invalid_caching_value"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage derives a two-letter code from the POSIX locale variables
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" && v != "C" && v != "POSIX" {
			return strings.ToLower(v[:min(2, len(v))])
		}
	}
	return "en"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"zh": "中文",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:            "IPTV Player",
		KeyVideoTitle:          "Video",
		KeyPlay:                "Play",
		KeyStop:                "Stop",
		KeyFullscreen:          "Fullscreen",
		KeySettings:            "Settings",
		KeyFile:                "File",
		KeyTools:               "Tools",
		KeyLanguage:            "Language",
		KeyImportM3U:           "Import M3U…",
		KeyImportYouTube:       "Import YouTube playlist…",
		KeyOpenConfigFolder:    "Open config folder",
		KeyStreamInfo:          "Stream info",
		KeyColumnName:          "Name",
		KeyColumnURL:           "URL",
		KeyChannelsFile:        "Channels file",
		KeyServersFile:         "Servers file",
		KeyNetworkCaching:      "Network caching (ms)",
		KeyProbeBeforePlay:     "Check server when playing",
		KeyFullscreenFull:      "Full options in fullscreen",
		KeySave:                "Save",
		KeyCancel:              "Cancel",
		KeyBrowse:              "Browse",
		KeyPlaylistURL:         "Playlist URL",
		KeySettingsSaved:       "Settings saved",
		KeyRestartRequired:     "File locations take effect after restart",
		KeyStatusIdle:          "Stopped",
		KeyStatusPlaying:       "Playing",
		KeyStatusFullscreen:    "Playing (fullscreen)",
		KeySelectChannel:       "Select a channel first",
		KeyNoVideoSurface:      "Video window is not available",
		KeyPlaybackError:       "Playback error",
		KeyServerReachable:     "Server reachable",
		KeyServerUnreachable:   "Server unreachable",
		KeyImportStarted:       "Importing…",
		KeyImportDone:          "Imported",
		KeyImportFailed:        "Import failed",
		KeySaveFailed:          "Failed to save channels",
		KeyInspecting:          "Inspecting stream…",
		KeyInspectFailed:       "Stream inspection failed",
		KeyNotHLS:              "Not an HLS playlist",
		KeyVariants:            "Variants",
		KeyErrorOpeningFolder:  "Error opening folder",
		KeyPressEscape:         "Press Esc to leave fullscreen",
		KeyInvalidCachingValue: "Network caching must be a number",
	}

	// Chinese texts
	l.texts["zh"] = map[string]string{
		KeyAppTitle:            "IPTV 播放器",
		KeyVideoTitle:          "视频",
		KeyPlay:                "播放",
		KeyStop:                "停止",
		KeyFullscreen:          "全屏",
		KeySettings:            "设置",
		KeyFile:                "文件",
		KeyTools:               "工具",
		KeyLanguage:            "语言",
		KeyImportM3U:           "导入 M3U…",
		KeyImportYouTube:       "导入 YouTube 播放列表…",
		KeyOpenConfigFolder:    "打开配置目录",
		KeyStreamInfo:          "流信息",
		KeyColumnName:          "名称",
		KeyColumnURL:           "地址",
		KeyChannelsFile:        "频道文件",
		KeyServersFile:         "服务器文件",
		KeyNetworkCaching:      "网络缓存 (毫秒)",
		KeyProbeBeforePlay:     "播放时检测服务器",
		KeyFullscreenFull:      "全屏时使用完整参数",
		KeySave:                "保存",
		KeyCancel:              "取消",
		KeyBrowse:              "浏览",
		KeyPlaylistURL:         "播放列表地址",
		KeySettingsSaved:       "设置已保存",
		KeyRestartRequired:     "文件位置在重启后生效",
		KeyStatusIdle:          "已停止",
		KeyStatusPlaying:       "正在播放",
		KeyStatusFullscreen:    "正在播放 (全屏)",
		KeySelectChannel:       "请先选择频道",
		KeyNoVideoSurface:      "视频窗口不可用",
		KeyPlaybackError:       "播放错误",
		KeyServerReachable:     "服务器可达",
		KeyServerUnreachable:   "服务器不可达",
		KeyImportStarted:       "正在导入…",
		KeyImportDone:          "已导入",
		KeyImportFailed:        "导入失败",
		KeySaveFailed:          "保存频道失败",
		KeyInspecting:          "正在分析流…",
		KeyInspectFailed:       "流分析失败",
		KeyNotHLS:              "不是 HLS 播放列表",
		KeyVariants:            "码率",
		KeyErrorOpeningFolder:  "打开目录出错",
		KeyPressEscape:         "按 Esc 退出全屏",
		KeyInvalidCachingValue: "网络缓存必须是数字",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:            "IPTV плеер",
		KeyVideoTitle:          "Видео",
		KeyPlay:                "Играть",
		KeyStop:                "Стоп",
		KeyFullscreen:          "Полный экран",
		KeySettings:            "Настройки",
		KeyFile:                "Файл",
		KeyTools:               "Инструменты",
		KeyLanguage:            "Язык",
		KeyImportM3U:           "Импорт M3U…",
		KeyImportYouTube:       "Импорт плейлиста YouTube…",
		KeyOpenConfigFolder:    "Открыть папку настроек",
		KeyStreamInfo:          "Информация о потоке",
		KeyColumnName:          "Название",
		KeyColumnURL:           "Адрес",
		KeyChannelsFile:        "Файл каналов",
		KeyServersFile:         "Файл серверов",
		KeyNetworkCaching:      "Сетевой кэш (мс)",
		KeyProbeBeforePlay:     "Проверять сервер при запуске",
		KeyFullscreenFull:      "Все параметры в полноэкранном режиме",
		KeySave:                "Сохранить",
		KeyCancel:              "Отмена",
		KeyBrowse:              "Обзор",
		KeyPlaylistURL:         "Адрес плейлиста",
		KeySettingsSaved:       "Настройки сохранены",
		KeyRestartRequired:     "Пути к файлам применятся после перезапуска",
		KeyStatusIdle:          "Остановлено",
		KeyStatusPlaying:       "Воспроизведение",
		KeyStatusFullscreen:    "Воспроизведение (полный экран)",
		KeySelectChannel:       "Сначала выберите канал",
		KeyNoVideoSurface:      "Окно видео недоступно",
		KeyPlaybackError:       "Ошибка воспроизведения",
		KeyServerReachable:     "Сервер доступен",
		KeyServerUnreachable:   "Сервер недоступен",
		KeyImportStarted:       "Импорт…",
		KeyImportDone:          "Импортировано",
		KeyImportFailed:        "Ошибка импорта",
		KeySaveFailed:          "Не удалось сохранить каналы",
		KeyInspecting:          "Анализ потока…",
		KeyInspectFailed:       "Не удалось проанализировать поток",
		KeyNotHLS:              "Это не HLS плейлист",
		KeyVariants:            "Варианты",
		KeyErrorOpeningFolder:  "Ошибка открытия папки",
		KeyPressEscape:         "Нажмите Esc для выхода из полноэкранного режима",
		KeyInvalidCachingValue: "Сетевой кэш должен быть числом",
	}
}
