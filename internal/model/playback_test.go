package model

import "testing"

func TestPlaybackState_IsPlaying(t *testing.T) {
	tests := []struct {
		state    PlaybackState
		expected bool
	}{
		{PlaybackIdle, false},
		{PlaybackPlaying, true},
	}

	for _, test := range tests {
		result := test.state.IsPlaying()
		if result != test.expected {
			t.Errorf("PlaybackState(%s).IsPlaying() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestPresentationMode_String(t *testing.T) {
	tests := []struct {
		mode     PresentationMode
		expected string
	}{
		{Windowed, "Windowed"},
		{Fullscreen, "Fullscreen"},
		{PresentationMode(7), "Unknown"},
	}

	for _, test := range tests {
		if result := test.mode.String(); result != test.expected {
			t.Errorf("PresentationMode(%d).String() = %s, expected %s", test.mode, result, test.expected)
		}
	}
}
