package model

// Package model defines domain data structures used across the app: channel
// entries, the server list, and the playback state enums. Structures are kept
// small so the UI can render them directly.
