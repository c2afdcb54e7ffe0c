package icons

import (
	"strings"
	"testing"
)

func TestEveryCatalogIconHasLucideName(t *testing.T) {
	for _, def := range Catalog() {
		if _, ok := LucideName(def.ID); !ok {
			t.Errorf("icon %s has no lucide name", def.ID)
		}
	}
}

func TestLucideNameOrDefault(t *testing.T) {
	if got := LucideNameOrDefault(DieThree); got != "dice-3" {
		t.Fatalf("LucideNameOrDefault(DieThree) = %q", got)
	}
	if got := LucideNameOrDefault("unknown"); got != "sparkle" {
		t.Fatalf("LucideNameOrDefault(unknown) = %q", got)
	}
}

func TestLucideSpriteContainsEveryDieFace(t *testing.T) {
	sprite := LucideSprite()
	for _, id := range []ID{DieOne, DieTwo, DieThree, DieFour, DieFive, DieSix} {
		name, _ := LucideName(id)
		if !strings.Contains(sprite, `id="`+LucideSymbolID(name)+`"`) {
			t.Errorf("sprite missing symbol for %s", id)
		}
	}
}
