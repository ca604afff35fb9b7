package ui

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/iptv-player/internal/player"
)

// ErrNoNativeWindow is returned when the driver exposes no native handle
var ErrNoNativeWindow = errors.New("native window handle unavailable")

// nativeHandle reads the OS window handle behind w.
// The window must have been shown at least once.
func nativeHandle(w fyne.Window) (player.Handle, error) {
	nw, ok := w.(driver.NativeWindow)
	if !ok {
		return player.Handle{}, ErrNoNativeWindow
	}

	var handle player.Handle
	var err error = ErrNoNativeWindow
	nw.RunNative(func(ctx any) {
		handle, err = handleFromContext(ctx)
	})
	if err == nil && handle.Value == 0 {
		err = fmt.Errorf("%w: window not realized", ErrNoNativeWindow)
	}
	return handle, err
}

// handleFromContext maps a driver window context to an engine handle
func handleFromContext(ctx any) (player.Handle, error) {
	switch c := ctx.(type) {
	case driver.X11WindowContext:
		return player.Handle{Kind: player.HandleXWindow, Value: c.WindowHandle}, nil
	case *driver.X11WindowContext:
		return player.Handle{Kind: player.HandleXWindow, Value: c.WindowHandle}, nil
	case driver.WindowsWindowContext:
		return player.Handle{Kind: player.HandleHWND, Value: c.HWND}, nil
	case *driver.WindowsWindowContext:
		return player.Handle{Kind: player.HandleHWND, Value: c.HWND}, nil
	case driver.MacWindowContext, *driver.MacWindowContext:
		// libVLC draws into an NSView; the driver only exposes the NSWindow
		return player.Handle{}, fmt.Errorf("%w: NSWindow is not an NSView drawable", ErrNoNativeWindow)
	default:
		return player.Handle{}, fmt.Errorf("%w: unsupported context %T", ErrNoNativeWindow, ctx)
	}
}

// videoArea is a black canvas that reports double taps
type videoArea struct {
	widget.BaseWidget
	onDoubleTap func()
}

func newVideoArea(onDoubleTap func()) *videoArea {
	v := &videoArea{onDoubleTap: onDoubleTap}
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *videoArea) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.Black)
	return widget.NewSimpleRenderer(container.NewStack(bg))
}

// DoubleTapped implements fyne.DoubleTappable
func (v *videoArea) DoubleTapped(*fyne.PointEvent) {
	if v.onDoubleTap != nil {
		v.onDoubleTap()
	}
}

// windowSurface adapts a Fyne window to player.Surface
type windowSurface struct {
	win fyne.Window

	mu     sync.Mutex
	closed bool
}

// Handle implements player.Surface
func (s *windowSurface) Handle() (player.Handle, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return player.Handle{}, player.ErrNoSurface
	}
	return nativeHandle(s.win)
}

// Close implements player.Surface. Closing twice is a no-op.
func (s *windowSurface) Close() {
	if s.markClosed() {
		s.win.Close()
	}
}

// markClosed records the close and reports whether this call did it
func (s *windowSurface) markClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.closed = true
	return true
}

// newVideoWindow creates the windowed surface. Closing the window only
// hides it so its native handle stays valid for the process lifetime.
func newVideoWindow(app fyne.App, title string, onDoubleTap func()) (fyne.Window, *windowSurface) {
	w := app.NewWindow(title)
	w.SetContent(newVideoArea(onDoubleTap))
	w.Resize(fyne.NewSize(VideoWindowWidth, VideoWindowHeight))
	w.SetCloseIntercept(w.Hide)
	return w, &windowSurface{win: w}
}

// fullscreenFactory creates one full-screen window per EnterFullscreen
type fullscreenFactory struct {
	app    fyne.App
	title  func() string
	onExit func()
}

// NewFullscreenSurface implements player.SurfaceFactory
func (f *fullscreenFactory) NewFullscreenSurface() (player.Surface, error) {
	w := f.app.NewWindow(f.title())
	surface := &windowSurface{win: w}

	w.SetContent(newVideoArea(f.onExit))
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			f.onExit()
		}
	})
	w.SetOnClosed(func() {
		// closed by the window manager rather than by the controller
		if surface.markClosed() {
			f.onExit()
		}
	})
	w.SetFullScreen(true)
	w.Show()

	return surface, nil
}

var (
	_ player.Surface        = (*windowSurface)(nil)
	_ player.SurfaceFactory = (*fullscreenFactory)(nil)
)
