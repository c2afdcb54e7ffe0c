// Package palettes embeds the built-in palette manifests.
package palettes

import "embed"

// FS holds one <name>.yaml manifest per palette.
//
//go:embed *.yaml
var FS embed.FS
