package player

import (
	"strings"
	"testing"
)

func TestOptions_NetworkCaching(t *testing.T) {
	tests := []struct {
		caching  int
		expected string
	}{
		{300, ":network-caching=300"},
		{0, ":network-caching=0"},
		{-5, ":network-caching=300"},
	}

	for _, test := range tests {
		opts := Options{NetworkCaching: test.caching}
		got := opts.FullscreenOptions()
		if len(got) != 1 || got[0] != test.expected {
			t.Errorf("FullscreenOptions() with caching=%d = %v, expected [%s]", test.caching, got, test.expected)
		}
	}
}

func TestOptions_PlayOptionsWithoutUserAgent(t *testing.T) {
	opts := Options{NetworkCaching: 300}
	got := strings.Join(opts.PlayOptions(), " ")

	if strings.Contains(got, "http-user-agent") {
		t.Errorf("expected no user agent option, got %s", got)
	}
	if got != ":network-caching=300 :clock-jitter=0 :clock-synchro=0" {
		t.Errorf("unexpected options %s", got)
	}
}
