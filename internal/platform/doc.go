package platform

// Package platform contains OS integration and playlist import glue:
// config directory helpers, M3U and YouTube playlist importers, and OS open/reveal.
