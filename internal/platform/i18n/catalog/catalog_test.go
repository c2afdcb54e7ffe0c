package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if !bundle.HasLocale(BaseLocale) {
		t.Fatalf("expected base locale %s", BaseLocale)
	}
	if !bundle.HasLocale("pt-BR") {
		t.Fatal("expected locale pt-BR")
	}
	if got := bundle.Locales(); len(got) != 2 || got[0] != "en-US" || got[1] != "pt-BR" {
		t.Fatalf("locales = %v", got)
	}
}

func TestEmbeddedLocalesAreComplete(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range bundle.Locales() {
		if missing := bundle.MissingKeys(locale); len(missing) > 0 {
			t.Fatalf("locale %s is missing %v", locale, missing)
		}
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), "locale: en-US\nnamespace: web\nmessages:\n  core.bad: nope\n")
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), "locale: en-US\nnamespace: core\nmessages:\n  core.good: ok\n")

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), "locale: en-US\nnamespace: core\nmessages:\n  a.key: a\n")
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), "locale: en-US\nnamespace: web\nmessages:\n  a.key: b\n")

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSValidatesHeaders(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{"locale mismatch", "locales/en-US/core.yaml", "locale: pt-BR\nnamespace: core\nmessages:\n  a: b\n"},
		{"namespace mismatch", "locales/en-US/core.yaml", "locale: en-US\nnamespace: web\nmessages:\n  a: b\n"},
		{"no messages", "locales/en-US/core.yaml", "locale: en-US\nnamespace: core\n"},
		{"bad yaml", "locales/en-US/core.yaml", "locale: [\n"},
		{"no base locale", "locales/pt-BR/core.yaml", "locale: pt-BR\nnamespace: core\nmessages:\n  a: b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			mustWriteFile(t, filepath.Join(tempDir, tt.path), tt.content)
			if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadFromFSRequiresFiles(t *testing.T) {
	if _, err := LoadFromFS(os.DirFS(t.TempDir())); err == nil {
		t.Fatal("expected error for empty catalog dir")
	}
}

func TestUntranslatedKeysFallBackToBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), "locale: en-US\nnamespace: web\nmessages:\n  greet: Hello\n  bye: Bye\n")
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/web.yaml"), "locale: pt-BR\nnamespace: web\nmessages:\n  greet: Olá\n")

	bundle, err := LoadFromFS(os.DirFS(tempDir))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if missing := bundle.MissingKeys("pt-BR"); len(missing) != 1 || missing[0] != "bye" {
		t.Fatalf("missing = %v", missing)
	}
	if missing := bundle.MissingKeys("fr-FR"); missing != nil {
		t.Fatalf("unknown locale missing = %v", missing)
	}
	cat, err := bundle.Catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	pt := message.NewPrinter(language.BrazilianPortuguese, message.Catalog(cat))
	if got := pt.Sprintf("bye"); got != "Bye" {
		t.Fatalf("pt-BR bye = %q", got)
	}
	if got := pt.Sprintf("greet"); got != "Olá" {
		t.Fatalf("pt-BR greet = %q", got)
	}
	bare := message.NewPrinter(language.Portuguese, message.Catalog(cat))
	if got := bare.Sprintf("greet"); got != "Olá" {
		t.Fatalf("pt greet = %q", got)
	}
}

func TestLoadFromFSRejectsDuplicateNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), "locale: en-US\nnamespace: core\nmessages:\n  core.a: a\n")
	bundle, err := LoadFromFS(os.DirFS(tempDir))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := bundle.add("locales/en-US/core.yaml", file{Locale: "en-US", Namespace: "core", Messages: map[string]string{"core.b": "b"}}); err == nil {
		t.Fatal("expected duplicate namespace error")
	}
}

func TestCatalogPrinter(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	cat, err := bundle.Catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	pt := message.NewPrinter(language.BrazilianPortuguese, message.Catalog(cat))
	if got := pt.Sprintf("fight.attack"); got != "Atacar" {
		t.Fatalf("pt-BR attack = %q", got)
	}
	en := message.NewPrinter(language.AmericanEnglish, message.Catalog(cat))
	if got := en.Sprintf("dice.total", 7); got != "Total: 7" {
		t.Fatalf("en-US total = %q", got)
	}
}

func TestTagsStartWithBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	tags := bundle.Tags()
	if len(tags) != 2 || tags[0] != language.AmericanEnglish || tags[1] != language.BrazilianPortuguese {
		t.Fatalf("tags = %v", tags)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
