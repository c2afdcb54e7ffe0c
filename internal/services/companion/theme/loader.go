package theme

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

const manifestExt = ".yaml"

// Loader fetches a palette manifest by name.
type Loader interface {
	Load(ctx context.Context, name string) (*Manifest, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, name string) (*Manifest, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, name string) (*Manifest, error) {
	return f(ctx, name)
}

// FSLoader reads <name>.yaml manifests from a filesystem.
type FSLoader struct {
	FS fs.FS
}

// Load implements Loader.
func (l FSLoader) Load(ctx context.Context, name string) (*Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.FS == nil {
		return nil, fmt.Errorf("palette filesystem is not configured")
	}
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	data, err := fs.ReadFile(l.FS, path.Clean(name+manifestExt))
	if err != nil {
		return nil, fmt.Errorf("read palette %s: %w", name, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("parse palette %s: %w", name, err)
	}
	if m.Name == "" {
		m.Name = name
	}
	return m, nil
}

// Names lists the manifests in the filesystem root, sorted.
func (l FSLoader) Names() ([]string, error) {
	entries, err := fs.ReadDir(l.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("list palettes: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), manifestExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), manifestExt))
	}
	sort.Strings(names)
	return names, nil
}
