package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/louisbranch/fightfantasy/internal/services/companion/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "companion.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestPreferenceRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.LoadPreference(ctx, storage.KeyThemeMode); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("load missing error = %v, want %v", err, storage.ErrNotFound)
	}
	if err := store.SavePreference(ctx, storage.KeyThemeMode, "dark"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SavePreference(ctx, storage.KeyThemeMode, "light"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.LoadPreference(ctx, storage.KeyThemeMode)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "light" {
		t.Fatalf("mode = %q, want light", got)
	}
}

func TestPreferenceStoredAsJSON(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.SavePreference(ctx, storage.KeyThemePalette, "beach"); err != nil {
		t.Fatalf("save: %v", err)
	}
	var raw string
	if err := store.sqlDB.QueryRow("SELECT value_json FROM preferences WHERE key = ?", storage.KeyThemePalette).Scan(&raw); err != nil {
		t.Fatalf("query raw: %v", err)
	}
	if raw != `"beach"` {
		t.Fatalf("raw value = %q, want JSON string", raw)
	}
}

func TestLoadPreferenceRejectsCorruptJSON(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.sqlDB.Exec(`INSERT INTO preferences (key, value_json, updated_at) VALUES ('theme.mode', 'dark', '')`); err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}
	if _, err := store.LoadPreference(context.Background(), storage.KeyThemeMode); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPreferencesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companion.db")
	ctx := context.Background()

	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.SavePreference(ctx, storage.KeyThemePalette, "midnight"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	got, err := second.LoadPreference(ctx, storage.KeyThemePalette)
	if err != nil || got != "midnight" {
		t.Fatalf("palette = %q, %v", got, err)
	}
}

func TestNilStore(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
	if err := store.SavePreference(context.Background(), "k", "v"); err == nil {
		t.Fatal("expected error from nil store")
	}
}
