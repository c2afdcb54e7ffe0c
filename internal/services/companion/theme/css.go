package theme

import (
	"sort"
	"strings"
)

// Stylesheet renders the manifest as custom properties. Defaults land on
// :root and each variant is scoped by the data-theme attribute.
func (m *Manifest) Stylesheet() string {
	var b strings.Builder
	if m == nil {
		return ""
	}
	b.WriteString("/* palette: " + m.Name + " */\n")
	writeBlock(&b, ":root", m.Defaults)
	writeBlock(&b, `[data-theme="`+string(ModeLight)+`"]`, m.Light)
	writeBlock(&b, `[data-theme="`+string(ModeDark)+`"]`, m.Dark)
	return b.String()
}

func writeBlock(b *strings.Builder, selector string, vars Variables) {
	if len(vars) == 0 {
		return
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, name := range names {
		b.WriteString("  --")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(vars[name])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
}
