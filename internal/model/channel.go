package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChannelIDPrefix prefixes generated channel identifiers
const ChannelIDPrefix = "ch-"

// ChannelEntry is a named stream URL template.
// Entries are immutable after creation; the ID is stable for the process
// lifetime and is what the UI records on selection.
type ChannelEntry struct {
	ID          string `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string `yaml:"name" json:"name"`
	URLTemplate string `yaml:"url" json:"url"`
}

// NewChannelEntry creates a channel with a fresh identifier
func NewChannelEntry(name, urlTemplate string) ChannelEntry {
	return ChannelEntry{
		ID:          GenerateChannelID(),
		Name:        strings.TrimSpace(name),
		URLTemplate: strings.TrimSpace(urlTemplate),
	}
}

// GetDisplayName returns the name, or the template when the name is empty
func (c ChannelEntry) GetDisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.URLTemplate
}

// GenerateChannelID generates a unique, time ordered channel ID
func GenerateChannelID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(ChannelIDPrefix+"%d", time.Now().UnixNano())
	}
	return ChannelIDPrefix + id.String()
}

// ServerList holds candidate host:port values for {server} substitution.
// Order carries no meaning.
type ServerList []string

// Contains reports whether server is in the list
func (s ServerList) Contains(server string) bool {
	for _, v := range s {
		if v == server {
			return true
		}
	}
	return false
}

// Clone returns an independent copy
func (s ServerList) Clone() ServerList {
	if s == nil {
		return nil
	}
	out := make(ServerList, len(s))
	copy(out, s)
	return out
}
