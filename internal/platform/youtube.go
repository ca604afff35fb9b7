package platform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/iptv-player/internal/model"
)

// Timeout constants
const (
	DefaultParseTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// Default values
const (
	DefaultPlaylistName = "Unknown Playlist"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Playlist title constants
const (
	MinPrefixLength = 10
	PlaylistSuffix  = " Playlist"
)

// ErrInvalidPlaylistURL is returned for URLs without a list parameter
var ErrInvalidPlaylistURL = errors.New("invalid playlist URL")

// PlaylistItem is one video of a remote playlist
type PlaylistItem struct {
	VideoID string
	Title   string
}

// PlaylistLister fetches all items of a playlist by ID
type PlaylistLister func(ctx context.Context, playlistID string) ([]PlaylistItem, error)

// YouTubeImporter turns YouTube playlists into channel imports
type YouTubeImporter struct {
	timeout time.Duration
	list    PlaylistLister
	logger  zerolog.Logger
}

// NewYouTubeImporter creates an importer backed by ytdlp
func NewYouTubeImporter(logger zerolog.Logger) *YouTubeImporter {
	return &YouTubeImporter{
		timeout: DefaultParseTimeout,
		list:    listWithYTDLP,
		logger:  logger.With().Str("component", "youtube").Logger(),
	}
}

// SetTimeout sets the timeout for listing a playlist
func (y *YouTubeImporter) SetTimeout(timeout time.Duration) {
	y.timeout = timeout
}

// SetLister replaces the playlist backend
func (y *YouTubeImporter) SetLister(list PlaylistLister) {
	y.list = list
}

// ImportPlaylist lists the playlist behind playlistURL and returns one
// channel per video, with the watch URL as its template.
func (y *YouTubeImporter) ImportPlaylist(ctx context.Context, playlistURL string) (*model.ChannelImport, error) {
	imp := model.NewChannelImport(model.ImportSourceYouTube, playlistURL)

	playlistID := extractPlaylistID(playlistURL)
	if playlistID == "" {
		err := fmt.Errorf("%w: %s", ErrInvalidPlaylistURL, playlistURL)
		imp.Fail(err)
		return imp, err
	}

	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}

	items, err := y.list(ctx, playlistID)
	if err != nil {
		err = fmt.Errorf("failed to get playlist items: %w", err)
		imp.Fail(err)
		return imp, err
	}

	for _, it := range items {
		if it.VideoID == "" {
			imp.Skipped++
			continue
		}
		imp.AddChannel(model.NewChannelEntry(it.Title, fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID)))
	}
	imp.Title = extractPlaylistTitle(imp.Channels)

	if imp.IsEmpty() {
		imp.Fail(ErrEmptyPlaylist)
		return imp, ErrEmptyPlaylist
	}

	imp.Ready()
	y.logger.Info().
		Str("playlist", playlistID).
		Int("channels", len(imp.Channels)).
		Msg("youtube playlist imported")
	return imp, nil
}

func listWithYTDLP(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	out := make([]PlaylistItem, 0, len(items))
	for _, it := range items {
		out = append(out, PlaylistItem{VideoID: it.VideoID, Title: it.Title})
	}
	return out, nil
}

// extractPlaylistID extracts the playlist ID from various URL formats:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func extractPlaylistID(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if id := u.Query().Get("list"); id != "" {
			return id
		}
	}

	if !strings.Contains(rawURL, PlaylistParam) {
		return ""
	}
	parts := strings.Split(rawURL, PlaylistParam)
	playlistPart := parts[1]
	if strings.Contains(playlistPart, ParamSeparator) {
		playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
	}
	return playlistPart
}

// extractPlaylistTitle generates a title for the import based on its channels
func extractPlaylistTitle(channels []model.ChannelEntry) string {
	if len(channels) == 0 {
		return DefaultPlaylistName
	}
	if len(channels) > 1 {
		commonPrefix := findCommonPrefix(channels[0].Name, channels[1].Name)
		if len(commonPrefix) > MinPrefixLength {
			return strings.TrimSpace(commonPrefix) + PlaylistSuffix
		}
	}
	return channels[0].GetDisplayName() + PlaylistSuffix
}

// findCommonPrefix finds the common prefix between two strings without
// splitting a multi-byte rune
func findCommonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	i := 0
	for i < minLen && s1[i] == s2[i] {
		i++
	}
	if i < len(s1) {
		for i > 0 && !utf8.RuneStart(s1[i]) {
			i--
		}
	}
	return s1[:i]
}
