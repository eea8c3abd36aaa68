package service

import (
	"fmt"
	"math"
	"testing"
	"time"

	"spiegelmatch/internal/catalog"
	"spiegelmatch/internal/domain"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func newTestGenerator(t *testing.T) *CharacterGenerator {
	t.Helper()
	g := NewCharacterGenerator(testCatalog(t), nil)
	g.now = func() time.Time { return fixedNow }
	seq := 0
	g.newID = func() string {
		seq++
		return fmt.Sprintf("char-%d", seq)
	}
	return g
}

func newTestMatchingEngine() MatchingEngine {
	return MatchingEngine{
		now:   func() time.Time { return fixedNow },
		newID: func() string { return "match-1" },
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func tag(id, typ string, intensity int) domain.TagSelection {
	return domain.TagSelection{TagID: id, TagType: typ, Intensity: intensity, Category: "test"}
}

func fullLifestyle() domain.LifestyleData {
	return domain.LifestyleData{
		Housing:           "alone",
		Career:            "creative",
		DailyRhythm:       "evening",
		EnergyLevel:       "high",
		Diet:              "vegetarian",
		Fitness:           "active",
		Smoking:           "never",
		Alcohol:           "social",
		Politics:          "liberal",
		Spirituality:      "agnostic",
		Environment:       "conscious",
		WantChildren:      "no",
		FashionStyle:      "goth",
		HairStyle:         "long",
		Beard:             "none",
		BodyModifications: []string{"tattoos", "piercings"},
	}
}
