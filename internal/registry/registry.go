// Package registry keeps the ordered channel list and the server list for
// the running application. Entries are only ever appended, so display order
// equals insertion order.
package registry

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/ytget/iptv-player/internal/model"
)

// Demo data used when no channels are configured
const (
	DemoChannelName     = "Test Channel"
	DemoChannelTemplate = "http://{server}/udp/239.76.253.151:9000"
	DemoServer          = "192.168.99.1:7088"
)

// Source loads persisted channels and servers
type Source interface {
	LoadChannels() ([]model.ChannelEntry, error)
	LoadServers() ([]string, error)
}

// Sink persists channels and servers
type Sink interface {
	SaveChannels([]model.ChannelEntry) error
	SaveServers([]string) error
}

// Registry is the in-memory channel list
type Registry struct {
	mu       sync.RWMutex
	channels []model.ChannelEntry
	servers  model.ServerList
	logger   zerolog.Logger
}

// New creates an empty registry
func New(logger zerolog.Logger) *Registry {
	return &Registry{
		channels: make([]model.ChannelEntry, 0),
		logger:   logger.With().Str("component", "registry").Logger(),
	}
}

// Load populates the registry from src, falling back to demo data when no
// channels are configured. Load errors are logged and treated as empty.
func (r *Registry) Load(src Source) []model.ChannelEntry {
	servers, err := src.LoadServers()
	if err != nil {
		r.logger.Warn().Err(err).Msg("server config unreadable, ignoring")
	}
	channels, err := src.LoadChannels()
	if err != nil {
		r.logger.Warn().Err(err).Msg("channel config unreadable, ignoring")
	}

	r.AddServers(servers...)
	r.Append(channels...)

	if r.Len() == 0 {
		r.logger.Info().Msg("no channels configured, loading demo data")
		r.LoadDemoData()
	}

	r.logger.Info().Int("channels", r.Len()).Int("servers", len(r.Servers())).Msg("registry loaded")
	return r.Entries()
}

// LoadDemoData appends the demo channel and replaces the server list with
// the demo server.
func (r *Registry) LoadDemoData() {
	r.mu.Lock()
	r.servers = model.ServerList{DemoServer}
	r.mu.Unlock()

	r.Append(model.NewChannelEntry(DemoChannelName, DemoChannelTemplate))
}

// Append adds channels at the end of the list, assigning IDs where missing
func (r *Registry) Append(channels ...model.ChannelEntry) {
	if len(channels) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ch := range channels {
		if ch.ID == "" {
			ch.ID = model.GenerateChannelID()
		}
		r.channels = append(r.channels, ch)
	}
}

// AddServers adds servers that are not already known
func (r *Registry) AddServers(servers ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range servers {
		if s != "" && !r.servers.Contains(s) {
			r.servers = append(r.servers, s)
		}
	}
}

// Entries returns a copy of the channels in display order
func (r *Registry) Entries() []model.ChannelEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.ChannelEntry, len(r.channels))
	copy(out, r.channels)
	return out
}

// Servers returns a copy of the server list
func (r *Registry) Servers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.servers.Clone()
}

// Len returns the number of channels
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// At returns the channel at display index i
func (r *Registry) At(i int) (model.ChannelEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i < 0 || i >= len(r.channels) {
		return model.ChannelEntry{}, false
	}
	return r.channels[i], true
}

// Lookup finds a channel by its stable ID
func (r *Registry) Lookup(id string) (*model.ChannelEntry, bool) {
	if id == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.channels {
		if r.channels[i].ID == id {
			entry := r.channels[i]
			return &entry, true
		}
	}
	return nil, false
}

// Save persists the channels and servers to dst
func (r *Registry) Save(dst Sink) error {
	if err := dst.SaveServers(r.Servers()); err != nil {
		return err
	}
	return dst.SaveChannels(r.Entries())
}
