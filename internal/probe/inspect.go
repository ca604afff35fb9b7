package probe

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/etherlabsio/go-m3u8/m3u8"
)

// hlsSignature is the first line of every HLS playlist
const hlsSignature = "#EXTM3U"

// Variant is one rendition listed in an HLS master playlist
type Variant struct {
	URI       string
	Bandwidth int
	Height    int
}

// StreamInfo summarizes what a stream URL serves
type StreamInfo struct {
	URL         string
	StatusCode  int
	ContentType string
	HLS         bool
	Variants    []Variant
}

// BestVariant returns the variant with the largest height, or bandwidth on ties
func (si *StreamInfo) BestVariant() (Variant, bool) {
	if len(si.Variants) == 0 {
		return Variant{}, false
	}
	return si.Variants[0], true
}

// Inspect fetches streamURL and, when it is an HLS master playlist, lists its
// variants ordered from the highest resolution down.
func (p *Prober) Inspect(ctx context.Context, streamURL string) (*StreamInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent())

	resp, err := p.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	info := &StreamInfo{
		URL:         streamURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	reader := bufio.NewReader(resp.Body)
	head, _ := reader.Peek(len(hlsSignature))
	if string(head) != hlsSignature {
		return info, nil
	}
	info.HLS = true

	playlist, err := m3u8.Read(reader)
	if err != nil {
		return info, fmt.Errorf("parse playlist: %w", err)
	}

	for _, item := range playlist.Playlists() {
		v := Variant{
			URI:       resolveReference(streamURL, item.URI),
			Bandwidth: item.Bandwidth,
		}
		if item.Resolution != nil {
			v.Height = item.Resolution.Height
		}
		info.Variants = append(info.Variants, v)
	}
	sort.SliceStable(info.Variants, func(i, j int) bool {
		if info.Variants[i].Height != info.Variants[j].Height {
			return info.Variants[i].Height > info.Variants[j].Height
		}
		return info.Variants[i].Bandwidth > info.Variants[j].Bandwidth
	})

	p.logger.Debug().Str("url", streamURL).Int("variants", len(info.Variants)).Msg("inspected stream")
	return info, nil
}

// resolveReference makes a playlist URI absolute against the playlist URL
func resolveReference(base, ref string) string {
	if strings.Contains(ref, "://") {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
