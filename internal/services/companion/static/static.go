package static

import "embed"

// FS exposes the companion's browser assets for HTTP serving.
//
//go:embed *.css *.js
var FS embed.FS
