// Package catalog loads the YAML message catalogs shipped with the companion
// and turns them into an x/text catalog.
//
// Files live at locales/<locale>/<namespace>.yaml. A key may appear only once
// per locale, and "core." keys belong to the core namespace.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	xcatalog "golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other locale falls back to.
const BaseLocale = "en-US"

const corePrefix = "core."

//go:embed locales/*/*.yaml
var embedded embed.FS

type file struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

type locale struct {
	namespaces map[string]bool
	messages   map[string]string
}

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	locales map[string]*locale
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads every locales/*/*.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	slices.Sort(paths)

	b := &Bundle{locales: map[string]*locale{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, f); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s has no catalog", BaseLocale)
	}
	return b, nil
}

func (b *Bundle) add(p string, f file) error {
	name := strings.TrimSpace(f.Locale)
	ns := strings.TrimSpace(f.Namespace)
	switch {
	case name != path.Base(path.Dir(p)):
		return fmt.Errorf("locale %q does not match its directory", name)
	case ns != strings.TrimSuffix(path.Base(p), ".yaml"):
		return fmt.Errorf("namespace %q does not match its file name", ns)
	case len(f.Messages) == 0:
		return fmt.Errorf("no messages")
	}
	if _, err := language.Parse(name); err != nil {
		return fmt.Errorf("locale %q: %w", name, err)
	}

	loc := b.locales[name]
	if loc == nil {
		loc = &locale{namespaces: map[string]bool{}, messages: map[string]string{}}
		b.locales[name] = loc
	}
	if loc.namespaces[ns] {
		return fmt.Errorf("namespace %q loaded twice", ns)
	}
	loc.namespaces[ns] = true

	for key, text := range f.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("blank message key")
		}
		if strings.HasPrefix(key, corePrefix) && ns != "core" {
			return fmt.Errorf("key %q belongs in the core namespace", key)
		}
		if _, dup := loc.messages[key]; dup {
			return fmt.Errorf("key %q defined twice for %s", key, name)
		}
		loc.messages[key] = text
	}
	return nil
}

// HasLocale reports whether name was loaded.
func (b *Bundle) HasLocale(name string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(name)]
	return ok
}

// Locales lists loaded locale names, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.locales))
}

// Tags lists loaded locales as language tags, base locale first.
func (b *Bundle) Tags() []language.Tag {
	tags := []language.Tag{language.MustParse(BaseLocale)}
	for _, name := range b.Locales() {
		if name == BaseLocale {
			continue
		}
		if tag, err := language.Parse(name); err == nil {
			tags = append(tags, tag)
		}
	}
	return tags
}

// MissingKeys lists base-locale keys that name leaves untranslated.
func (b *Bundle) MissingKeys(name string) []string {
	if !b.HasLocale(name) {
		return nil
	}
	have := b.locales[name].messages
	var missing []string
	for key := range b.locales[BaseLocale].messages {
		if _, ok := have[key]; !ok {
			missing = append(missing, key)
		}
	}
	slices.Sort(missing)
	return missing
}

// Catalog builds an x/text catalog. Every locale is also registered under
// its bare language so "pt" finds "pt-BR", and untranslated keys use the
// base locale's text.
func (b *Bundle) Catalog() (xcatalog.Catalog, error) {
	builder := xcatalog.NewBuilder(xcatalog.Fallback(language.MustParse(BaseLocale)))
	base := b.locales[BaseLocale].messages
	for _, name := range b.Locales() {
		tags, err := registerTags(name)
		if err != nil {
			return nil, err
		}
		messages := maps.Clone(base)
		maps.Copy(messages, b.locales[name].messages)
		for _, key := range slices.Sorted(maps.Keys(messages)) {
			for _, tag := range tags {
				if err := builder.SetString(tag, key, messages[key]); err != nil {
					return nil, fmt.Errorf("set %s/%s: %w", name, key, err)
				}
			}
		}
	}
	return builder, nil
}

func registerTags(name string) ([]language.Tag, error) {
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", name, err)
	}
	tags := []language.Tag{tag}
	if lang, conf := tag.Base(); conf != language.No {
		if bare, err := language.Parse(lang.String()); err == nil && bare != tag {
			tags = append(tags, bare)
		}
	}
	return tags, nil
}
