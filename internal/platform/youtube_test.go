package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/iptv-player/internal/model"
)

func TestNewYouTubeImporter(t *testing.T) {
	importer := NewYouTubeImporter(zerolog.Nop())

	if importer == nil {
		t.Fatal("importer should not be nil")
	}
	if importer.timeout != DefaultParseTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultParseTimeout, importer.timeout)
	}
	if importer.list == nil {
		t.Error("expected default lister")
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "playlist page",
			url:      "https://www.youtube.com/playlist?list=PL123",
			expected: "PL123",
		},
		{
			name:     "watch with list and extra params",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID&list=PL456&start_radio=1",
			expected: "PL456",
		},
		{
			name:     "no list parameter",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID",
			expected: "",
		},
		{
			name:     "not a url",
			url:      "list=PL789&x=1",
			expected: "PL789",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPlaylistID(tt.url); got != tt.expected {
				t.Errorf("extractPlaylistID(%q) = %q, expected %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestExtractPlaylistTitle(t *testing.T) {
	tests := []struct {
		name     string
		channels []model.ChannelEntry
		expected string
	}{
		{
			name:     "empty",
			expected: DefaultPlaylistName,
		},
		{
			name:     "single",
			channels: []model.ChannelEntry{{Name: "Live News"}},
			expected: "Live News Playlist",
		},
		{
			name: "common prefix",
			channels: []model.ChannelEntry{
				{Name: "Lofi Radio Stream - Beats 1"},
				{Name: "Lofi Radio Stream - Beats 2"},
			},
			expected: "Lofi Radio Stream - Beats Playlist",
		},
		{
			name: "short prefix uses first title",
			channels: []model.ChannelEntry{
				{Name: "News A"},
				{Name: "News B"},
			},
			expected: "News A Playlist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPlaylistTitle(tt.channels); got != tt.expected {
				t.Errorf("extractPlaylistTitle() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestFindCommonPrefix_RuneSafe(t *testing.T) {
	// 频 and 道 share their first UTF-8 byte
	got := findCommonPrefix("测试频", "测试道")
	if got != "测试" {
		t.Errorf("findCommonPrefix() = %q, expected %q", got, "测试")
	}
}

func TestImportPlaylist(t *testing.T) {
	importer := NewYouTubeImporter(zerolog.Nop())

	var gotID string
	importer.SetLister(func(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
		gotID = playlistID
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected context with deadline")
		}
		return []PlaylistItem{
			{VideoID: "abc", Title: "First"},
			{VideoID: "", Title: "Deleted video"},
			{VideoID: "def", Title: "Second"},
		}, nil
	})

	imp, err := importer.ImportPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PLx")
	if err != nil {
		t.Fatalf("ImportPlaylist() error = %v", err)
	}
	if gotID != "PLx" {
		t.Errorf("expected playlist ID PLx, got %q", gotID)
	}
	if imp.Status != model.ImportStatusReady || imp.Source != model.ImportSourceYouTube {
		t.Errorf("unexpected import state %+v", imp)
	}
	if imp.Skipped != 1 || len(imp.Channels) != 2 {
		t.Fatalf("expected 2 channels and 1 skipped, got %d/%d", len(imp.Channels), imp.Skipped)
	}
	if imp.Channels[0].URLTemplate != "https://www.youtube.com/watch?v=abc" || imp.Channels[1].Name != "Second" {
		t.Errorf("unexpected channels %+v", imp.Channels)
	}
}

func TestImportPlaylist_InvalidURL(t *testing.T) {
	importer := NewYouTubeImporter(zerolog.Nop())
	importer.SetLister(func(context.Context, string) ([]PlaylistItem, error) {
		t.Fatal("lister must not be called for an invalid URL")
		return nil, nil
	})

	imp, err := importer.ImportPlaylist(context.Background(), "https://www.youtube.com/watch?v=abc")
	if !errors.Is(err, ErrInvalidPlaylistURL) {
		t.Fatalf("expected ErrInvalidPlaylistURL, got %v", err)
	}
	if imp.Status != model.ImportStatusError {
		t.Errorf("expected error status, got %s", imp.Status)
	}
}

func TestImportPlaylist_ListerError(t *testing.T) {
	importer := NewYouTubeImporter(zerolog.Nop())
	importer.SetTimeout(time.Second)
	boom := errors.New("quota exceeded")
	importer.SetLister(func(context.Context, string) ([]PlaylistItem, error) {
		return nil, boom
	})

	_, err := importer.ImportPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PLx")
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped lister error, got %v", err)
	}
}

func TestImportPlaylist_Empty(t *testing.T) {
	importer := NewYouTubeImporter(zerolog.Nop())
	importer.SetLister(func(context.Context, string) ([]PlaylistItem, error) {
		return nil, nil
	})

	_, err := importer.ImportPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PLx")
	if !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("expected ErrEmptyPlaylist, got %v", err)
	}
}
