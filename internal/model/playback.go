package model

import "time"

// PlaybackState represents the state of the playback controller
type PlaybackState string

const (
	// PlaybackIdle means nothing is playing
	PlaybackIdle PlaybackState = "Idle"

	// PlaybackPlaying means a stream has been handed to the engine
	PlaybackPlaying PlaybackState = "Playing"
)

// String returns the string representation of PlaybackState
func (ps PlaybackState) String() string {
	return string(ps)
}

// IsPlaying returns true if a stream is active
func (ps PlaybackState) IsPlaying() bool {
	return ps == PlaybackPlaying
}

// PresentationMode selects which surface receives the video output
type PresentationMode int

const (
	Windowed PresentationMode = iota
	Fullscreen
)

// String returns a label for the mode
func (pm PresentationMode) String() string {
	switch pm {
	case Windowed:
		return "Windowed"
	case Fullscreen:
		return "Fullscreen"
	default:
		return "Unknown"
	}
}

// PlaybackSession is the transient state of the single active stream
type PlaybackSession struct {
	ChannelID   string
	ChannelName string
	Template    string
	ResolvedURL string
	StartedAt   time.Time
}
