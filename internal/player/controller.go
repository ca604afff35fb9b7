package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/iptv-player/internal/model"
	"github.com/ytget/iptv-player/internal/templater"
)

// Status is a snapshot passed to the update callback
type Status struct {
	State   model.PlaybackState
	Mode    model.PresentationMode
	Session *model.PlaybackSession
	Err     error
}

// Controller drives the single media engine session
type Controller struct {
	mu sync.Mutex

	engine   Engine
	urls     URLGenerator
	servers  ServerSource
	windowed Surface
	surfaces SurfaceFactory
	options  Options

	state      model.PlaybackState
	mode       model.PresentationMode
	session    *model.PlaybackSession
	fullscreen Surface

	onUpdate func(Status) // callback for UI updates
	logger   zerolog.Logger
}

// NewController creates a controller bound to the windowed surface.
// Full-screen surfaces are created through surfaces on demand.
func NewController(engine Engine, windowed Surface, surfaces SurfaceFactory, servers ServerSource, logger zerolog.Logger) *Controller {
	c := &Controller{
		engine:   engine,
		urls:     templater.New(),
		servers:  servers,
		windowed: windowed,
		surfaces: surfaces,
		options:  DefaultOptions(),
		state:    model.PlaybackIdle,
		mode:     model.Windowed,
		logger:   logger.With().Str("component", "player").Logger(),
	}
	engine.OnError(c.onEngineError)
	return c
}

// SetUpdateCallback sets the callback function for state updates
func (c *Controller) SetUpdateCallback(callback func(Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = callback
}

// SetURLGenerator replaces the templater
func (c *Controller) SetURLGenerator(urls URLGenerator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls = urls
}

// SetOptions replaces the engine options used by subsequent starts
func (c *Controller) SetOptions(options Options) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.options = options
}

// State returns the current playback state
func (c *Controller) State() model.PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the current presentation mode
func (c *Controller) Mode() model.PresentationMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Session returns a copy of the active session, or nil when idle
func (c *Controller) Session() *model.PlaybackSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionCopy()
}

// Play resolves the entry's template and starts it on the surface of the
// current presentation mode. A nil entry returns ErrNoSelection without
// touching the engine.
func (c *Controller) Play(entry *model.ChannelEntry) error {
	if entry == nil {
		c.logger.Debug().Msg("play requested without a selected channel")
		c.notify(Status{State: c.State(), Mode: c.Mode(), Err: ErrNoSelection})
		return ErrNoSelection
	}

	c.mu.Lock()
	if c.state.IsPlaying() {
		c.stopEngine()
	}

	url := c.urls.Generate(entry.URLTemplate, c.servers.Servers())
	if err := c.start(c.currentSurface(), url, c.options.PlayOptions()); err != nil {
		c.resetLocked()
		status := c.statusLocked(err)
		c.mu.Unlock()
		c.notify(status)
		return err
	}

	c.session = &model.PlaybackSession{
		ChannelID:   entry.ID,
		ChannelName: entry.Name,
		Template:    entry.URLTemplate,
		ResolvedURL: url,
		StartedAt:   time.Now(),
	}
	c.state = model.PlaybackPlaying
	status := c.statusLocked(nil)
	c.mu.Unlock()

	c.logger.Info().Str("channel", entry.Name).Str("url", url).Str("mode", status.Mode.String()).Msg("playback started")
	c.notify(status)
	return nil
}

// Stop stops playback. Calling it while idle is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	wasPlaying := c.state.IsPlaying()
	if wasPlaying {
		c.stopEngine()
	}
	c.resetLocked()
	status := c.statusLocked(nil)
	c.mu.Unlock()

	if wasPlaying {
		c.logger.Info().Msg("playback stopped")
		c.notify(status)
	}
}

// EnterFullscreen moves the running stream onto a new full-screen surface.
// The template is resolved again, so a different server and timestamp may
// be used. It does nothing unless a stream is playing in windowed mode.
func (c *Controller) EnterFullscreen() error {
	c.mu.Lock()
	if !c.state.IsPlaying() || c.mode == model.Fullscreen {
		c.mu.Unlock()
		return nil
	}

	c.stopEngine()

	surface, err := c.surfaces.NewFullscreenSurface()
	if err != nil {
		err = fmt.Errorf("create fullscreen surface: %w", err)
		c.resetLocked()
		status := c.statusLocked(err)
		c.mu.Unlock()
		c.notify(status)
		return err
	}
	c.fullscreen = surface
	c.mode = model.Fullscreen

	url := c.urls.Generate(c.session.Template, c.servers.Servers())
	if err := c.start(surface, url, c.options.FullscreenOptions()); err != nil {
		c.fullscreen = nil
		c.mode = model.Windowed
		c.resetLocked()
		status := c.statusLocked(err)
		c.mu.Unlock()
		surface.Close()
		c.notify(status)
		return err
	}
	c.session.ResolvedURL = url
	status := c.statusLocked(nil)
	c.mu.Unlock()

	c.logger.Info().Str("url", url).Msg("switched to fullscreen")
	c.notify(status)
	return nil
}

// ExitFullscreen closes the full-screen surface and moves output back to
// the windowed surface, restarting the stream with the full option set.
func (c *Controller) ExitFullscreen() error {
	c.mu.Lock()
	if c.mode != model.Fullscreen {
		c.mu.Unlock()
		return nil
	}

	wasPlaying := c.state.IsPlaying()
	if wasPlaying {
		c.stopEngine()
	}
	fullscreen := c.fullscreen
	c.fullscreen = nil
	c.mode = model.Windowed

	var err error
	if wasPlaying {
		url := c.urls.Generate(c.session.Template, c.servers.Servers())
		if err = c.start(c.windowed, url, c.options.PlayOptions()); err != nil {
			c.resetLocked()
		} else {
			c.session.ResolvedURL = url
		}
	}
	status := c.statusLocked(err)
	c.mu.Unlock()

	// Closing may re-enter through the window's close handler
	if fullscreen != nil {
		fullscreen.Close()
	}

	c.logger.Info().Bool("playing", status.State.IsPlaying()).Msg("left fullscreen")
	c.notify(status)
	return err
}

// Shutdown stops playback and releases the full-screen surface
func (c *Controller) Shutdown() {
	c.Stop()
	_ = c.ExitFullscreen()
}

// start binds surface and hands url to the engine. Caller holds c.mu.
func (c *Controller) start(surface Surface, url string, options []string) error {
	if surface == nil {
		return ErrNoSurface
	}
	handle, err := surface.Handle()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoSurface, err)
	}
	if err := c.engine.Bind(handle); err != nil {
		return fmt.Errorf("bind surface: %w", err)
	}
	if err := c.engine.Load(url, options); err != nil {
		return fmt.Errorf("load media: %w", err)
	}
	if err := c.engine.Play(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}
	return nil
}

// stopEngine stops the engine, logging failures. Caller holds c.mu.
func (c *Controller) stopEngine() {
	if err := c.engine.Stop(); err != nil {
		c.logger.Warn().Err(err).Msg("engine stop failed")
	}
}

// currentSurface returns the surface matching the mode. Caller holds c.mu.
func (c *Controller) currentSurface() Surface {
	if c.mode == model.Fullscreen && c.fullscreen != nil {
		return c.fullscreen
	}
	return c.windowed
}

// resetLocked returns to Idle. Caller holds c.mu.
func (c *Controller) resetLocked() {
	c.state = model.PlaybackIdle
	c.session = nil
}

func (c *Controller) statusLocked(err error) Status {
	return Status{
		State:   c.state,
		Mode:    c.mode,
		Session: c.sessionCopy(),
		Err:     err,
	}
}

func (c *Controller) sessionCopy() *model.PlaybackSession {
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// onEngineError forwards asynchronous engine failures to the UI
func (c *Controller) onEngineError(err error) {
	c.logger.Error().Err(err).Msg("engine reported playback error")

	c.mu.Lock()
	status := c.statusLocked(err)
	c.mu.Unlock()
	c.notify(status)
}

// notify calls the update callback if set
func (c *Controller) notify(status Status) {
	c.mu.Lock()
	callback := c.onUpdate
	c.mu.Unlock()

	if callback != nil {
		callback(status)
	}
}
