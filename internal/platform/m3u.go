package platform

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"

	"github.com/ytget/iptv-player/internal/model"
)

// M3U directives
const (
	M3UHeader    = "#EXTM3U"
	M3UExtInf    = "#EXTINF:"
	M3UComment   = "#"
	utf8BOM      = "\ufeff"
	maxLineBytes = 1024 * 1024
)

// Common EXTINF attributes
const (
	AttrTvgName    = "tvg-name"
	AttrTvgID      = "tvg-id"
	AttrTvgLogo    = "tvg-logo"
	AttrGroupTitle = "group-title"
)

// ErrEmptyPlaylist is returned when a playlist yields no channels
var ErrEmptyPlaylist = errors.New("playlist contains no channels")

var (
	attributePattern = regexp2.MustCompile(`([A-Za-z0-9_-]+)\s*=\s*"([^"]*)"`, regexp2.None)
	durationPattern  = regexp2.MustCompile(`^#EXTINF:\s*(-?\d+(?:\.\d+)?)`, regexp2.IgnoreCase)
)

// M3UItem is one stream of an extended M3U playlist
type M3UItem struct {
	Duration   float64
	Title      string
	URL        string
	Attributes map[string]string
}

// Name returns the display name: the title, then tvg-name, then the URL
func (it M3UItem) Name() string {
	if it.Title != "" {
		return it.Title
	}
	if name := it.Attributes[AttrTvgName]; name != "" {
		return name
	}
	return it.URL
}

// ParseM3UItems parses an extended or plain M3U playlist in file order.
// The second result counts #EXTINF lines that had no stream URL.
func ParseM3UItems(r io.Reader) ([]M3UItem, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		items   []M3UItem
		pending *M3UItem
		skipped int
		first   = true
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			line = strings.TrimPrefix(line, utf8BOM)
			first = false
		}

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, M3UExtInf):
			if pending != nil {
				skipped++
			}
			item, err := parseExtInf(line)
			if err != nil {
				return nil, 0, err
			}
			pending = &item
		case strings.HasPrefix(line, M3UComment):
			// #EXTM3U, #EXTGRP, #EXTVLCOPT and friends
			continue
		default:
			if pending == nil {
				items = append(items, M3UItem{URL: line, Attributes: map[string]string{}})
				continue
			}
			pending.URL = line
			items = append(items, *pending)
			pending = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read playlist: %w", err)
	}
	if pending != nil {
		skipped++
	}

	return items, skipped, nil
}

// ParseM3U parses a playlist into channel entries, preserving file order
func ParseM3U(r io.Reader) ([]model.ChannelEntry, error) {
	items, _, err := ParseM3UItems(r)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyPlaylist
	}

	entries := make([]model.ChannelEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, model.NewChannelEntry(it.Name(), it.URL))
	}
	return entries, nil
}

// parseExtInf splits an #EXTINF line into duration, attributes and title.
// The title starts after the first comma outside a quoted attribute value.
func parseExtInf(line string) (M3UItem, error) {
	item := M3UItem{Attributes: make(map[string]string)}

	if m, err := durationPattern.FindStringMatch(line); err != nil {
		return item, fmt.Errorf("match duration: %w", err)
	} else if m != nil {
		item.Duration, _ = strconv.ParseFloat(m.GroupByNumber(1).String(), 64)
	}

	head, title := splitExtInf(line)
	item.Title = strings.TrimSpace(title)

	m, err := attributePattern.FindStringMatch(head)
	for m != nil && err == nil {
		key := strings.ToLower(m.GroupByNumber(1).String())
		item.Attributes[key] = m.GroupByNumber(2).String()
		m, err = attributePattern.FindNextMatch(m)
	}
	if err != nil {
		return item, fmt.Errorf("match attributes: %w", err)
	}

	return item, nil
}

func splitExtInf(line string) (head, title string) {
	quoted := false
	for i, r := range line {
		switch r {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				return line[:i], line[i+1:]
			}
		}
	}
	return line, ""
}

// M3UImporter turns playlist files into channel imports
type M3UImporter struct {
	logger zerolog.Logger
}

// NewM3UImporter creates a new M3U importer
func NewM3UImporter(logger zerolog.Logger) *M3UImporter {
	return &M3UImporter{logger: logger.With().Str("component", "m3u").Logger()}
}

// ImportFile reads and parses the playlist at path
func (i *M3UImporter) ImportFile(path string) (*model.ChannelImport, error) {
	f, err := os.Open(path)
	if err != nil {
		imp := model.NewChannelImport(model.ImportSourceM3U, path)
		imp.Fail(err)
		return imp, fmt.Errorf("open playlist: %w", err)
	}
	defer f.Close()

	return i.Import(f, path)
}

// Import parses r; location is recorded for display only
func (i *M3UImporter) Import(r io.Reader, location string) (*model.ChannelImport, error) {
	imp := model.NewChannelImport(model.ImportSourceM3U, location)
	imp.Title = playlistTitle(location)

	items, skipped, err := ParseM3UItems(r)
	if err != nil {
		imp.Fail(err)
		return imp, err
	}
	imp.Skipped = skipped

	for _, it := range items {
		imp.AddChannel(model.NewChannelEntry(it.Name(), it.URL))
	}
	if imp.IsEmpty() {
		imp.Fail(ErrEmptyPlaylist)
		return imp, ErrEmptyPlaylist
	}

	imp.Ready()
	i.logger.Info().
		Str("location", location).
		Int("channels", len(imp.Channels)).
		Int("skipped", skipped).
		Msg("playlist imported")
	return imp, nil
}

// playlistTitle derives a title from the last path element of location
func playlistTitle(location string) string {
	name := location
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}
