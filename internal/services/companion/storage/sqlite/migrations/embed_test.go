package migrations

import (
	"io/fs"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected migrations to be embedded")
	}
	if entries[0].Name() != "001_preferences.sql" {
		t.Fatalf("expected first migration 001_preferences.sql, got %s", entries[0].Name())
	}
}
