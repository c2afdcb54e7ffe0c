// Package timeouts defines the fixed durations used across the companion.
// None of these are user-configurable.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// RollAnimation is the simulated rolling time before a roll resolves.
const RollAnimation = 1000 * time.Millisecond

// PaletteSettle is the pause between a palette load completing and its
// variant inspection.
const PaletteSettle = 100 * time.Millisecond

// PaletteLoad caps a single palette manifest load.
const PaletteLoad = 2 * time.Second
