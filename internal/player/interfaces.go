package player

// HandleKind identifies the native window system of a surface handle
type HandleKind int

const (
	HandleXWindow HandleKind = iota
	HandleHWND
	HandleNSObject
)

// Handle is a native drawable the engine can render into
type Handle struct {
	Kind  HandleKind
	Value uintptr
}

// Surface is a window region owned by the UI that can receive video output
type Surface interface {
	Handle() (Handle, error)
	Close()
}

// SurfaceFactory creates full-screen surfaces on demand
type SurfaceFactory interface {
	NewFullscreenSurface() (Surface, error)
}

// Engine is the external media engine. Implementations keep a single
// player instance for the process lifetime.
type Engine interface {
	// Load replaces the current media with url and per-media options
	Load(url string, options []string) error
	// Bind directs video output to the native drawable
	Bind(h Handle) error
	Play() error
	Stop() error
	// OnError registers a callback for asynchronous playback failures
	OnError(func(err error))
}

// URLGenerator resolves channel templates into playable URLs
type URLGenerator interface {
	Generate(template string, servers []string) string
}

// ServerSource supplies the current server list for {server} substitution
type ServerSource interface {
	Servers() []string
}
