package player

import (
	"fmt"

	"github.com/ytget/iptv-player/internal/probe"
)

// Engine option defaults
const (
	DefaultNetworkCaching = 300 // milliseconds
)

// Options configures the per-media options handed to the engine
type Options struct {
	UserAgent      string
	NetworkCaching int
	// FullscreenFullOptions re-applies the complete option set when
	// switching to full screen instead of network caching alone.
	FullscreenFullOptions bool
}

// DefaultOptions returns the options used when no settings override them
func DefaultOptions() Options {
	return Options{
		UserAgent:      probe.UserAgent,
		NetworkCaching: DefaultNetworkCaching,
	}
}

// PlayOptions returns the options applied on Play
func (o Options) PlayOptions() []string {
	opts := make([]string, 0, 4)
	if o.UserAgent != "" {
		opts = append(opts, fmt.Sprintf(":http-user-agent=%s", o.UserAgent))
	}
	return append(opts,
		o.networkCachingOption(),
		":clock-jitter=0",
		":clock-synchro=0",
	)
}

// FullscreenOptions returns the options applied when restarting in full screen
func (o Options) FullscreenOptions() []string {
	if o.FullscreenFullOptions {
		return o.PlayOptions()
	}
	return []string{o.networkCachingOption()}
}

func (o Options) networkCachingOption() string {
	caching := o.NetworkCaching
	if caching < 0 {
		caching = DefaultNetworkCaching
	}
	return fmt.Sprintf(":network-caching=%d", caching)
}
