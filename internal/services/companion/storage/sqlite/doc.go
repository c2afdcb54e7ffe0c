// Package sqlite provides SQLite-backed companion preferences.
//
// Values are stored JSON-encoded so the column can later hold structured
// preferences without a schema change.
package sqlite
