package platform

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ytget/iptv-player/internal/model"
)

const samplePlaylist = `#EXTM3U x-tvg-url="http://epg.example/guide.xml"
#EXTINF:-1 tvg-id="cctv1" tvg-name="CCTV-1" tvg-logo="http://logo/1.png" group-title="央视, 高清",CCTV-1 综合
http://{server}/udp/239.76.253.151:9000
#EXTINF:-1 tvg-name="Fallback Name",
http://{server}/udp/239.76.253.152:9000

#EXTVLCOPT:network-caching=1000
#EXTINF:10.5,Plain Title
rtp://239.1.1.1:5000
`

func TestParseM3UItems(t *testing.T) {
	items, skipped, err := ParseM3UItems(strings.NewReader(samplePlaylist))
	if err != nil {
		t.Fatalf("ParseM3UItems() error = %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected no skipped entries, got %d", skipped)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "CCTV-1 综合" {
		t.Errorf("expected title after attribute block, got %q", first.Title)
	}
	if first.Attributes[AttrGroupTitle] != "央视, 高清" {
		t.Errorf("expected quoted comma to stay in attribute, got %q", first.Attributes[AttrGroupTitle])
	}
	if first.Attributes[AttrTvgID] != "cctv1" || first.Attributes[AttrTvgLogo] != "http://logo/1.png" {
		t.Errorf("unexpected attributes %v", first.Attributes)
	}
	if first.Duration != -1 {
		t.Errorf("expected duration -1, got %v", first.Duration)
	}
	if first.URL != "http://{server}/udp/239.76.253.151:9000" {
		t.Errorf("template placeholders should be kept, got %q", first.URL)
	}

	if items[2].Duration != 10.5 || items[2].URL != "rtp://239.1.1.1:5000" {
		t.Errorf("unexpected third item %+v", items[2])
	}
}

func TestM3UItemName(t *testing.T) {
	tests := []struct {
		name     string
		item     M3UItem
		expected string
	}{
		{"title wins", M3UItem{Title: "T", URL: "u", Attributes: map[string]string{AttrTvgName: "N"}}, "T"},
		{"tvg-name fallback", M3UItem{URL: "u", Attributes: map[string]string{AttrTvgName: "N"}}, "N"},
		{"url fallback", M3UItem{URL: "u", Attributes: map[string]string{}}, "u"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Name(); got != tt.expected {
				t.Errorf("Name() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestParseM3U_PreservesOrder(t *testing.T) {
	entries, err := ParseM3U(strings.NewReader(samplePlaylist))
	if err != nil {
		t.Fatalf("ParseM3U() error = %v", err)
	}

	want := []string{"CCTV-1 综合", "Fallback Name", "Plain Title"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entry %d name = %q, expected %q", i, entries[i].Name, name)
		}
		if !strings.HasPrefix(entries[i].ID, model.ChannelIDPrefix) {
			t.Errorf("entry %d has no generated ID: %q", i, entries[i].ID)
		}
	}
}

func TestParseM3U_PlainList(t *testing.T) {
	input := "\ufeffhttp://a/1\r\nhttp://b/2\r\n"

	entries, err := ParseM3U(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseM3U() error = %v", err)
	}
	if len(entries) != 2 || entries[0].URLTemplate != "http://a/1" || entries[0].Name != "http://a/1" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestParseM3U_Empty(t *testing.T) {
	tests := []string{"", "#EXTM3U\n", "#EXTM3U\n#EXTINF:-1,Dangling\n"}

	for _, input := range tests {
		if _, err := ParseM3U(strings.NewReader(input)); !errors.Is(err, ErrEmptyPlaylist) {
			t.Errorf("ParseM3U(%q) error = %v, expected ErrEmptyPlaylist", input, err)
		}
	}
}

func TestParseM3UItems_CountsMissingURLs(t *testing.T) {
	input := "#EXTM3U\n#EXTINF:-1,One\n#EXTINF:-1,Two\nhttp://two\n#EXTINF:-1,Three\n"

	items, skipped, err := ParseM3UItems(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseM3UItems() error = %v", err)
	}
	if len(items) != 1 || items[0].Title != "Two" {
		t.Errorf("unexpected items %+v", items)
	}
	if skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", skipped)
	}
}

func TestM3UImporter_ImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cctv.m3u")
	if err := os.WriteFile(path, []byte(samplePlaylist), 0o600); err != nil {
		t.Fatalf("write playlist: %v", err)
	}

	imp, err := NewM3UImporter(zerolog.Nop()).ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if imp.Status != model.ImportStatusReady {
		t.Errorf("expected ready status, got %s", imp.Status)
	}
	if imp.Source != model.ImportSourceM3U || imp.Location != path {
		t.Errorf("unexpected source/location %s %s", imp.Source, imp.Location)
	}
	if imp.Title != "cctv" {
		t.Errorf("expected title from file name, got %q", imp.Title)
	}
	if len(imp.Channels) != 3 {
		t.Errorf("expected 3 channels, got %d", len(imp.Channels))
	}
}

func TestM3UImporter_MissingFile(t *testing.T) {
	imp, err := NewM3UImporter(zerolog.Nop()).ImportFile(filepath.Join(t.TempDir(), "nope.m3u"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if imp.Status != model.ImportStatusError || imp.Error == "" {
		t.Errorf("expected failed import, got %+v", imp)
	}
}
