package icons

import (
	"fmt"
	"sort"
	"strings"
)

const lucideSymbolPrefix = "lucide-"

var lucideIconNames = map[ID]string{
	DieOne:   "dice-1",
	DieTwo:   "dice-2",
	DieThree: "dice-3",
	DieFour:  "dice-4",
	DieFive:  "dice-5",
	DieSix:   "dice-6",
	Roll:     "dices",
	Combat:   "swords",
	Luck:     "clover",
	Skill:    "target",
	Health:   "heart",
	Light:    "sun",
	Dark:     "moon",
	Palette:  "palette",
}

// pip centers for each die face, on Lucide's 24x24 grid.
var diePips = map[string][][2]int{
	"dice-1": {{12, 12}},
	"dice-2": {{15, 9}, {9, 15}},
	"dice-3": {{16, 8}, {12, 12}, {8, 16}},
	"dice-4": {{16, 8}, {8, 8}, {8, 16}, {16, 16}},
	"dice-5": {{16, 8}, {8, 8}, {8, 16}, {16, 16}, {12, 12}},
	"dice-6": {{16, 8}, {16, 12}, {16, 16}, {8, 8}, {8, 12}, {8, 16}},
}

// LucideName returns the Lucide icon name for an icon identifier.
func LucideName(id ID) (string, bool) {
	name, ok := lucideIconNames[id]
	return name, ok
}

// LucideNameOrDefault provides a stable Lucide name even when the id is unknown.
func LucideNameOrDefault(id ID) string {
	if name, ok := lucideIconNames[id]; ok {
		return name
	}
	return "sparkle"
}

// LucideSymbolID returns the sprite symbol ID for a Lucide icon name.
func LucideSymbolID(name string) string {
	return lucideSymbolPrefix + name
}

// LucideSprite returns SVG sprite markup for the dice faces.
func LucideSprite() string {
	names := make([]string, 0, len(diePips))
	for name := range diePips {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" style="display:none">`)
	for _, name := range names {
		fmt.Fprintf(&b, `<symbol id="%s" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">`, LucideSymbolID(name))
		b.WriteString(`<rect width="18" height="18" x="3" y="3" rx="2" ry="2"/>`)
		for _, pip := range diePips[name] {
			fmt.Fprintf(&b, `<path d="M%d %dh.01"/>`, pip[0], pip[1])
		}
		b.WriteString(`</symbol>`)
	}
	b.WriteString(`</svg>`)
	return b.String()
}
