package ui

import "testing"

func TestLocalization_Fallbacks(t *testing.T) {
	l := NewLocalization()

	if got := l.GetText(KeyPlay); got != "Play" {
		t.Errorf("expected English default, got %q", got)
	}

	l.SetLanguage("zh")
	if got := l.GetText(KeySelectChannel); got != "请先选择频道" {
		t.Errorf("expected Chinese text, got %q", got)
	}

	// Unknown language keeps the current one
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "zh" {
		t.Errorf("expected language to stay zh, got %s", l.GetCurrentLanguage())
	}

	if got := l.GetText("missing_key"); got != "missing_key" {
		t.Errorf("expected key as final fallback, got %q", got)
	}
}

func TestLocalization_AllLanguagesComplete(t *testing.T) {
	l := NewLocalization()

	for code := range l.GetAvailableLanguages() {
		texts, ok := l.texts[code]
		if !ok {
			t.Errorf("no texts for language %s", code)
			continue
		}
		for key := range l.texts["en"] {
			if texts[key] == "" {
				t.Errorf("language %s is missing %s", code, key)
			}
		}
	}
}

func TestLocalization_SystemLanguage(t *testing.T) {
	tests := []struct {
		lang     string
		expected string
	}{
		{"ru_RU.UTF-8", "ru"},
		{"zh_CN.UTF-8", "zh"},
		{"de_DE.UTF-8", "en"},
		{"C", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Setenv("LC_ALL", "")
			t.Setenv("LC_MESSAGES", "")
			t.Setenv("LANG", tt.lang)

			l := NewLocalization()
			l.SetLanguage("system")
			if got := l.GetCurrentLanguage(); got != tt.expected {
				t.Errorf("SetLanguage(system) with LANG=%s = %s, expected %s", tt.lang, got, tt.expected)
			}
		})
	}
}
