package icons

// ID names an icon independently of how it is drawn.
type ID string

// Dice face icons, one per d6 value.
const (
	DieOne   ID = "die.one"
	DieTwo   ID = "die.two"
	DieThree ID = "die.three"
	DieFour  ID = "die.four"
	DieFive  ID = "die.five"
	DieSix   ID = "die.six"
)

// Interface icons.
const (
	Roll    ID = "roll"
	Combat  ID = "combat"
	Luck    ID = "luck"
	Skill   ID = "skill"
	Health  ID = "health"
	Light   ID = "mode.light"
	Dark    ID = "mode.dark"
	Palette ID = "palette"
)

// Definition describes a catalog entry.
type Definition struct {
	ID          ID
	Name        string
	Description string
}

var catalog = []Definition{
	{ID: DieOne, Name: "Die one", Description: "A d6 showing one pip."},
	{ID: DieTwo, Name: "Die two", Description: "A d6 showing two pips."},
	{ID: DieThree, Name: "Die three", Description: "A d6 showing three pips."},
	{ID: DieFour, Name: "Die four", Description: "A d6 showing four pips."},
	{ID: DieFive, Name: "Die five", Description: "A d6 showing five pips."},
	{ID: DieSix, Name: "Die six", Description: "A d6 showing six pips."},
	{ID: Roll, Name: "Roll", Description: "Dice rolls and tests."},
	{ID: Combat, Name: "Combat", Description: "Attack rounds."},
	{ID: Luck, Name: "Luck", Description: "Luck tests and use-luck."},
	{ID: Skill, Name: "Skill", Description: "Skill tests."},
	{ID: Health, Name: "Health", Description: "Health totals."},
	{ID: Light, Name: "Light", Description: "Light display mode."},
	{ID: Dark, Name: "Dark", Description: "Dark display mode."},
	{ID: Palette, Name: "Palette", Description: "Color palette selection."},
}

// Catalog returns a copy of the icon catalog definitions.
func Catalog() []Definition {
	result := make([]Definition, len(catalog))
	copy(result, catalog)
	return result
}

// Lookup returns the definition for id.
func Lookup(id ID) (Definition, bool) {
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}
