package random

import "testing"

func TestNewSeedVaries(t *testing.T) {
	seen := make(map[int64]struct{})
	for i := 0; i < 8; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("new seed: %v", err)
		}
		seen[seed] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected distinct seeds, got %d unique", len(seen))
	}
}

func TestNewRand(t *testing.T) {
	rng, err := NewRand()
	if err != nil {
		t.Fatalf("new rand: %v", err)
	}
	if v := rng.Intn(6); v < 0 || v >= 6 {
		t.Fatalf("Intn(6) = %d out of range", v)
	}
}

func TestSeedOr(t *testing.T) {
	want := int64(42)
	got, err := SeedOr(&want)
	if err != nil {
		t.Fatalf("seed or: %v", err)
	}
	if got != want {
		t.Fatalf("SeedOr(&42) = %d", got)
	}
	if _, err := SeedOr(nil); err != nil {
		t.Fatalf("seed or nil: %v", err)
	}
}
