// Package store persists the channel and server lists as YAML files.
// YAML is a superset of JSON, so legacy JSON config files load unchanged.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ytget/iptv-player/internal/model"
)

// Default file names inside the config directory
const (
	ChannelsFileName = "channels.yaml"
	ServersFileName  = "servers.yaml"
)

// File permissions
const (
	dirPermissions  = 0o750
	filePermissions = 0o600
)

// Store reads and writes the channel and server config files
type Store struct {
	ChannelsPath string
	ServersPath  string
}

// New creates a store using the default file names in dir
func New(dir string) *Store {
	return &Store{
		ChannelsPath: filepath.Join(dir, ChannelsFileName),
		ServersPath:  filepath.Join(dir, ServersFileName),
	}
}

// LoadChannels reads the channel list.
// A missing or empty file yields an empty list and no error.
func (s *Store) LoadChannels() ([]model.ChannelEntry, error) {
	var channels []model.ChannelEntry
	if err := readYAML(s.ChannelsPath, &channels); err != nil {
		return nil, fmt.Errorf("load channels: %w", err)
	}

	out := make([]model.ChannelEntry, 0, len(channels))
	for _, ch := range channels {
		if ch.URLTemplate == "" {
			continue
		}
		if ch.ID == "" {
			ch.ID = model.GenerateChannelID()
		}
		out = append(out, ch)
	}
	return out, nil
}

// LoadServers reads the server list
func (s *Store) LoadServers() ([]string, error) {
	var servers []string
	if err := readYAML(s.ServersPath, &servers); err != nil {
		return nil, fmt.Errorf("load servers: %w", err)
	}

	out := make([]string, 0, len(servers))
	for _, srv := range servers {
		if srv != "" {
			out = append(out, srv)
		}
	}
	return out, nil
}

// SaveChannels writes the channel list atomically
func (s *Store) SaveChannels(channels []model.ChannelEntry) error {
	if err := writeYAML(s.ChannelsPath, channels); err != nil {
		return fmt.Errorf("save channels: %w", err)
	}
	return nil
}

// SaveServers writes the server list atomically
func (s *Store) SaveServers(servers []string) error {
	if err := writeYAML(s.ServersPath, servers); err != nil {
		return fmt.Errorf("save servers: %w", err)
	}
	return nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeYAML(path string, in any) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(in); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}
