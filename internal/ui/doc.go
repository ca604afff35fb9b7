package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the playback controller and renders the channel
// list, status line, imports and settings. All UI strings are localized via Localization.
