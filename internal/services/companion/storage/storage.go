// Package storage defines companion preference persistence.
package storage

import (
	"context"
	"errors"
)

// Preference keys.
const (
	KeyThemeMode    = "theme.mode"
	KeyThemePalette = "theme.palette"
)

// ErrNotFound indicates a preference has never been saved.
var ErrNotFound = errors.New("preference not found")

// PreferenceStore persists flat string preferences.
type PreferenceStore interface {
	// LoadPreference returns the stored value or ErrNotFound.
	LoadPreference(ctx context.Context, key string) (string, error)
	// SavePreference stores value under key, replacing any earlier value.
	SavePreference(ctx context.Context, key, value string) error
}

// Store is the full persistence surface of the companion service.
type Store interface {
	PreferenceStore
	Close() error
}
