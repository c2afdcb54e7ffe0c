// Package theme owns the process-wide display mode and color palette.
//
// Palettes are declared by YAML manifests. A manifest lists the theming
// variables for its light and dark variants plus an optional defaults block
// used when a palette declares no variants of its own.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/fightfantasy/internal/platform/errors"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Required theming variables. A variant counts only when it defines all of them.
const (
	VarNavColor           = "nav-color"
	VarSectionHeaderColor = "section-header-color"
	VarPrimaryButtonColor = "primary-button-color"
	VarBackgroundColor    = "background-color"
)

// RequiredVariables lists the variables every usable variant defines.
var RequiredVariables = []string{
	VarNavColor,
	VarSectionHeaderColor,
	VarPrimaryButtonColor,
	VarBackgroundColor,
}

var (
	// ErrUnknownPalette indicates a palette name outside the known set.
	ErrUnknownPalette = apperrors.New(apperrors.CodePaletteUnknown, "unknown palette")
	// ErrInvalidManifest indicates a manifest that could not be decoded.
	ErrInvalidManifest = apperrors.New(apperrors.CodeManifestInvalid, "invalid palette manifest")
)

// Variables maps a theming variable name (without the leading "--") to a color.
type Variables map[string]string

// complete reports whether every required variable is present.
func (v Variables) complete() bool {
	for _, name := range RequiredVariables {
		if strings.TrimSpace(v[name]) == "" {
			return false
		}
	}
	return true
}

// Manifest is a decoded palette definition.
type Manifest struct {
	Name     string    `yaml:"name"`
	Label    string    `yaml:"label"`
	Defaults Variables `yaml:"defaults"`
	Light    Variables `yaml:"light"`
	Dark     Variables `yaml:"dark"`
}

// ParseManifest decodes YAML and normalizes every color to #rrggbb.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeManifestInvalid, "decode palette manifest", err)
	}
	m.Name = strings.TrimSpace(m.Name)
	for block, vars := range map[string]Variables{"defaults": m.Defaults, "light": m.Light, "dark": m.Dark} {
		for name, value := range vars {
			if !validVariableName(name) {
				return nil, fmt.Errorf("%w: %s: variable name %q", ErrInvalidManifest, block, name)
			}
			normalized, err := normalizeColor(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s.%s: %v", ErrInvalidManifest, block, name, err)
			}
			vars[name] = normalized
		}
	}
	return &m, nil
}

// validVariableName accepts names that are safe to emit as "--name" in CSS.
func validVariableName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

func normalizeColor(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("empty color")
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// Variants reports which mode-scoped blocks are usable. When the manifest
// declares neither block, a complete defaults block stands in for both.
func (m *Manifest) Variants() Variants {
	if m == nil {
		return Variants{}
	}
	if len(m.Light) == 0 && len(m.Dark) == 0 {
		ok := m.Defaults.complete()
		return Variants{HasLight: ok, HasDark: ok}
	}
	return Variants{HasLight: m.Light.complete(), HasDark: m.Dark.complete()}
}

// Missing lists required variables absent from every block, sorted.
func (m *Manifest) Missing() []string {
	if m == nil {
		return append([]string(nil), RequiredVariables...)
	}
	var missing []string
	for _, name := range RequiredVariables {
		if m.Light[name] == "" && m.Dark[name] == "" && m.Defaults[name] == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Valid reports whether all required variables appear somewhere in the manifest.
func (m *Manifest) Valid() bool {
	return len(m.Missing()) == 0
}
