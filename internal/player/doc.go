package player

// Package player owns the single media engine session. It resolves channel
// templates into URLs, hands them to the engine with the playback options, and
// keeps the engine's video output bound to the surface that matches the
// current presentation mode.
