package vlc

import (
	"errors"
	"testing"
	"time"

	vlc "github.com/adrg/libvlc-go/v3"
	"github.com/rs/zerolog"
)

func TestHandleEvent_ReportsPlaybackError(t *testing.T) {
	e := &Engine{logger: zerolog.Nop()}

	got := make(chan error, 1)
	e.OnError(func(err error) { got <- err })

	e.handleEvent(vlc.MediaPlayerEncounteredError, nil)

	select {
	case err := <-got:
		if !errors.Is(err, ErrPlayback) {
			t.Errorf("expected ErrPlayback, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("error callback was not invoked")
	}
}

func TestHandleEvent_IgnoresOtherEvents(t *testing.T) {
	e := &Engine{logger: zerolog.Nop()}

	got := make(chan error, 1)
	e.OnError(func(err error) { got <- err })

	e.handleEvent(vlc.MediaPlayerPlaying, nil)

	select {
	case err := <-got:
		t.Errorf("unexpected callback with %v", err)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestReleasedEngine(t *testing.T) {
	e := &Engine{released: true, logger: zerolog.Nop()}

	if err := e.Load("http://example.com/live", nil); !errors.Is(err, ErrReleased) {
		t.Errorf("Load() expected ErrReleased, got %v", err)
	}
	if err := e.Play(); !errors.Is(err, ErrReleased) {
		t.Errorf("Play() expected ErrReleased, got %v", err)
	}
	if err := e.Stop(); err != nil {
		t.Errorf("Stop() on released engine should be a no-op, got %v", err)
	}
	e.Release()
}
