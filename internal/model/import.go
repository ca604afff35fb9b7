package model

import (
	"time"
)

// ImportSource identifies where imported channels came from
type ImportSource string

const (
	ImportSourceM3U     ImportSource = "m3u"
	ImportSourceYouTube ImportSource = "youtube"
)

// ImportStatus represents the current status of a channel import
type ImportStatus string

const (
	ImportStatusParsing ImportStatus = "parsing"
	ImportStatusReady   ImportStatus = "ready"
	ImportStatusError   ImportStatus = "error"
)

// ChannelImport collects channels parsed from an external playlist
type ChannelImport struct {
	Source    ImportSource
	Location  string // file path or URL
	Title     string
	Channels  []ChannelEntry
	Skipped   int
	Status    ImportStatus
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewChannelImport creates an import in the parsing state
func NewChannelImport(source ImportSource, location string) *ChannelImport {
	now := time.Now()
	return &ChannelImport{
		Source:    source,
		Location:  location,
		Status:    ImportStatusParsing,
		Channels:  make([]ChannelEntry, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddChannel appends a parsed channel
func (ci *ChannelImport) AddChannel(entry ChannelEntry) {
	ci.Channels = append(ci.Channels, entry)
	ci.UpdatedAt = time.Now()
}

// Fail marks the import as failed
func (ci *ChannelImport) Fail(err error) {
	ci.Status = ImportStatusError
	if err != nil {
		ci.Error = err.Error()
	}
	ci.UpdatedAt = time.Now()
}

// Ready marks the import as finished
func (ci *ChannelImport) Ready() {
	ci.Status = ImportStatusReady
	ci.UpdatedAt = time.Now()
}

// IsEmpty reports whether nothing usable was parsed
func (ci *ChannelImport) IsEmpty() bool {
	return len(ci.Channels) == 0
}
