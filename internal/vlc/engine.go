// Package vlc adapts libVLC to the player.Engine interface.
package vlc

import (
	"errors"
	"fmt"
	"sync"

	vlc "github.com/adrg/libvlc-go/v3"
	"github.com/rs/zerolog"

	"github.com/ytget/iptv-player/internal/player"
)

// ErrReleased is returned after Release
var ErrReleased = errors.New("vlc engine released")

// ErrPlayback is reported when libVLC signals an encountered error
var ErrPlayback = errors.New("stream playback failed")

// Args passed to libVLC on initialization
var defaultArgs = []string{"--no-xlib", "--no-video-title-show", "--quiet"}

// Engine owns one libVLC instance and media player
type Engine struct {
	mu       sync.Mutex
	player   *vlc.Player
	media    *vlc.Media
	eventID  vlc.EventID
	onError  func(error)
	released bool
	logger   zerolog.Logger
}

// NewEngine initializes libVLC and creates the media player
func NewEngine(logger zerolog.Logger, args ...string) (*Engine, error) {
	if err := vlc.Init(append(defaultArgs, args...)...); err != nil {
		return nil, fmt.Errorf("init libvlc: %w", err)
	}

	p, err := vlc.NewPlayer()
	if err != nil {
		vlc.Release()
		return nil, fmt.Errorf("create media player: %w", err)
	}

	e := &Engine{
		player: p,
		logger: logger.With().Str("component", "vlc").Logger(),
	}

	manager, err := p.EventManager()
	if err != nil {
		e.logger.Warn().Err(err).Msg("event manager unavailable, playback errors will not be reported")
		return e, nil
	}
	id, err := manager.Attach(vlc.MediaPlayerEncounteredError, e.handleEvent, nil)
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to attach error event")
		return e, nil
	}
	e.eventID = id
	return e, nil
}

// Load replaces the current media with url and its per-media options
func (e *Engine) Load(url string, options []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return ErrReleased
	}

	media, err := vlc.NewMediaFromURL(url)
	if err != nil {
		return fmt.Errorf("create media: %w", err)
	}
	if len(options) > 0 {
		if err := media.AddOptions(options...); err != nil {
			media.Release()
			return fmt.Errorf("add media options: %w", err)
		}
	}
	if err := e.player.SetMedia(media); err != nil {
		media.Release()
		return fmt.Errorf("set media: %w", err)
	}

	if e.media != nil {
		e.media.Release()
	}
	e.media = media
	e.logger.Debug().Str("url", url).Strs("options", options).Msg("media loaded")
	return nil
}

// Bind directs video output to the native window behind h
func (e *Engine) Bind(h player.Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return ErrReleased
	}

	switch h.Kind {
	case player.HandleXWindow:
		return e.player.SetXWindow(uint32(h.Value))
	case player.HandleHWND:
		return e.player.SetHWND(h.Value)
	case player.HandleNSObject:
		return e.player.SetNSObject(h.Value)
	default:
		return fmt.Errorf("unsupported window handle kind %d", h.Kind)
	}
}

// Play starts the loaded media
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return ErrReleased
	}
	return e.player.Play()
}

// Stop stops playback. It is safe to call when nothing is playing.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return nil
	}
	return e.player.Stop()
}

// OnError registers the callback for asynchronous playback failures
func (e *Engine) OnError(callback func(error)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onError = callback
}

// Release frees the player, the media and the libVLC instance
func (e *Engine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return
	}
	e.released = true

	if e.eventID != 0 {
		if manager, err := e.player.EventManager(); err == nil {
			manager.Detach(e.eventID)
		}
	}
	_ = e.player.Stop()
	if e.media != nil {
		e.media.Release()
		e.media = nil
	}
	if err := e.player.Release(); err != nil {
		e.logger.Warn().Err(err).Msg("release media player")
	}
	if err := vlc.Release(); err != nil {
		e.logger.Warn().Err(err).Msg("release libvlc")
	}
}

// handleEvent runs on a libVLC thread and must not call back into libVLC.
// Stop may hold e.mu while libVLC drains events, so the report is async.
func (e *Engine) handleEvent(event vlc.Event, _ interface{}) {
	if event != vlc.MediaPlayerEncounteredError {
		return
	}
	go e.reportError(ErrPlayback)
}

func (e *Engine) reportError(err error) {
	e.mu.Lock()
	callback := e.onError
	e.mu.Unlock()

	if callback != nil {
		callback(err)
	}
}

var _ player.Engine = (*Engine)(nil)
