package service

import (
	"strings"

	"spiegelmatch/internal/catalog"
	"spiegelmatch/internal/domain"
)

// TraitCalculator infiere Big5 a partir de los tags seleccionados usando el
// mapeo de keywords del catalogo.
type TraitCalculator struct {
	keywords map[string][]string // rasgo -> keywords en minuscula
}

func NewTraitCalculator(cat *catalog.Catalog) TraitCalculator {
	keywords := make(map[string][]string, len(cat.TraitKeywords))
	for trait, list := range cat.TraitKeywords {
		lowered := make([]string, 0, len(list))
		for _, k := range list {
			lowered = append(lowered, strings.ToLower(k))
		}
		keywords[trait] = lowered
	}
	return TraitCalculator{keywords: keywords}
}

// CalculateFromTags parte de 50 en cada rasgo. Por cada rasgo con al menos un
// tag coincidente suma matchCount*5 y (intensidad-3)*2 por tag; luego limita a [0,100].
// No deduplica: un tagId repetido cuenta dos veces.
func (c TraitCalculator) CalculateFromTags(tags []domain.TagSelection) domain.Big5Scores {
	scores := domain.BaselineBig5()

	for _, trait := range domain.TraitNames {
		keywords := c.keywords[trait]
		matchCount := 0
		intensityBoost := 0
		for _, t := range tags {
			if !containsAny(strings.ToLower(t.TagID), keywords) {
				continue
			}
			matchCount++
			intensityBoost += (t.Intensity - 3) * 2
		}
		if matchCount > 0 {
			scores.Add(trait, float64(matchCount*5+intensityBoost))
		}
	}

	return scores.Clamped()
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}
