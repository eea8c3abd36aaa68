package service

import (
	"math"
	"strings"

	"spiegelmatch/internal/catalog"
	"spiegelmatch/internal/domain"
)

const (
	bandHit          = 30.0
	tagKeywordPoints = 10.0
)

// ArchetypeDetector elige el arquetipo que mejor encaja (best-fit, nunca umbral).
type ArchetypeDetector struct {
	archetypes []domain.ArchetypeProfile
	keywords   [][]string // keywords en minuscula, mismo indice que archetypes
	bonuses    []catalog.LifestyleBonus
}

// ArchetypeScore es el puntaje de un arquetipo, util para depurar la eleccion.
type ArchetypeScore struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

func NewArchetypeDetector(cat *catalog.Catalog) ArchetypeDetector {
	keywords := make([][]string, len(cat.Archetypes))
	for i, a := range cat.Archetypes {
		for _, k := range a.Keywords {
			keywords[i] = append(keywords[i], strings.ToLower(k))
		}
	}
	return ArchetypeDetector{
		archetypes: cat.Archetypes,
		keywords:   keywords,
		bonuses:    cat.LifestyleBonuses,
	}
}

// Detect devuelve el arquetipo con mayor puntaje. Los empates se resuelven
// por orden de declaracion en el catalogo (gana el primero).
func (d ArchetypeDetector) Detect(big5 domain.Big5Scores, lifestyle domain.LifestyleData, tags []domain.TagSelection) domain.ArchetypeProfile {
	scores := d.Scores(big5, lifestyle, tags)
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[best].Score {
			best = i
		}
	}
	return d.archetypes[best]
}

// Scores calcula el puntaje de cada arquetipo en orden de catalogo.
func (d ArchetypeDetector) Scores(big5 domain.Big5Scores, lifestyle domain.LifestyleData, tags []domain.TagSelection) []ArchetypeScore {
	out := make([]ArchetypeScore, len(d.archetypes))
	for i, a := range d.archetypes {
		score := 0.0
		for _, trait := range domain.TraitNames {
			v, _ := big5.Get(trait)
			score += bandScore(a.Pattern.Band(trait), v)
		}

		for _, b := range d.bonuses {
			if b.Archetype == a.Key && lifestyle.Field(b.Field) == b.Value {
				score += b.Bonus
			}
		}

		matched := 0
		for _, t := range tags {
			if containsAny(strings.ToLower(t.TagID), d.keywords[i]) {
				matched++
			}
		}
		score += float64(matched) * tagKeywordPoints

		out[i] = ArchetypeScore{Key: a.Key, Score: score}
	}
	return out
}

// bandScore premia con 30 un valor dentro de la banda y penaliza la distancia
// al ancla de la banda (30, 50 o 70) cuando esta fuera.
func bandScore(band string, v float64) float64 {
	switch band {
	case domain.BandLow:
		if v < 40 {
			return bandHit
		}
		return -math.Abs(v - 30)
	case domain.BandMedium:
		if v >= 40 && v <= 60 {
			return bandHit
		}
		return -math.Abs(v - 50)
	case domain.BandHigh:
		if v > 60 {
			return bandHit
		}
		return -math.Abs(v - 70)
	}
	return 0
}
