package service

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"spiegelmatch/internal/domain"
)

// Pesos de cada dimension; suman 1.0.
const (
	weightFetishOverlap      = 0.40
	weightPersonalityCompat  = 0.15
	weightLifestyleAlignment = 0.20
	weightValuesAlignment    = 0.15
	weightAestheticHarmony   = 0.10

	neutralAlignment = 50.0
)

var (
	lifestyleFields = []string{"housing", "dailyRhythm", "energyLevel", "diet", "fitness", "smoking", "alcohol"}
	valuesFields    = []string{"politics", "spirituality", "environment", "wantChildren"}
	aestheticFields = []string{"fashionStyle", "hairStyle", "beard"}
)

type compatibilityTier struct {
	min            int
	level          string
	recommendation string
}

// Evaluados de arriba hacia abajo; el primero que cumple gana.
var compatibilityTiers = []compatibilityTier{
	{85, domain.CompatibilityPerfect, "Soulmate level! You two should match right away."},
	{70, domain.CompatibilityExcellent, "Outstanding overlap. This could turn out really well."},
	{55, domain.CompatibilityGood, "A good foundation. With open communication this works."},
	{40, domain.CompatibilityOkay, "Okay-ish. Some overlap, but also real differences."},
	{math.MinInt, domain.CompatibilityPoor, "Little overlap. Better keep looking at other profiles."},
}

// MatchingEngine puntua la compatibilidad de dos perfiles en cinco dimensiones.
type MatchingEngine struct {
	now   func() time.Time
	newID func() string
}

func NewMatchingEngine() MatchingEngine {
	return MatchingEngine{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Score valida ambos perfiles y devuelve el resultado completo.
// No es simetrico byte a byte: el termino must-have cuenta los must de a dentro de b.
func (e MatchingEngine) Score(a, b *domain.CharacterProfile) (domain.MatchResult, error) {
	if err := validateScorable(a, "first"); err != nil {
		return domain.MatchResult{}, err
	}
	if err := validateScorable(b, "second"); err != nil {
		return domain.MatchResult{}, err
	}

	scores := CalculateScores(a, b)
	level, recommendation := CompatibilityLevel(scores.Overall)

	return domain.MatchResult{
		MatchID:            e.newID(),
		User1ID:            a.UserID,
		User2ID:            b.UserID,
		Character1ID:       a.ID,
		Character2ID:       b.ID,
		Scores:             scores,
		CompatibilityLevel: level,
		Recommendation:     recommendation,
		CalculatedAt:       e.now(),
	}, nil
}

func validateScorable(p *domain.CharacterProfile, which string) error {
	if p == nil {
		return fmt.Errorf("%w: %s profile is missing", ErrInvalidInput, which)
	}
	if p.Tags == nil {
		return fmt.Errorf("%w: %s profile has no tag set", ErrInvalidInput, which)
	}
	if !p.Big5.InRange() {
		return fmt.Errorf("%w: %s profile has malformed big5 scores", ErrInvalidInput, which)
	}
	return nil
}

// CalculateScores calcula las cinco dimensiones y el total. El total se
// pondera con los valores sin redondear; todo se redondea al entero mas cercano.
func CalculateScores(a, b *domain.CharacterProfile) domain.MatchScore {
	fetish := FetishOverlap(a.Tags, b.Tags)
	personality := PersonalityCompat(a.Big5, b.Big5)
	lifestyle := LifestyleAlignment(a.Lifestyle, b.Lifestyle)
	values := ValuesAlignment(a.Lifestyle, b.Lifestyle)
	aesthetic := AestheticHarmony(a.Lifestyle, b.Lifestyle)

	overall := fetish*weightFetishOverlap +
		personality*weightPersonalityCompat +
		lifestyle*weightLifestyleAlignment +
		values*weightValuesAlignment +
		aesthetic*weightAestheticHarmony

	s := domain.MatchScore{
		Overall:            roundScore(overall),
		FetishOverlap:      roundScore(fetish),
		PersonalityCompat:  roundScore(personality),
		LifestyleAlignment: roundScore(lifestyle),
		ValuesAlignment:    roundScore(values),
		AestheticHarmony:   roundScore(aesthetic),
	}
	s.Breakdown = []domain.ScoreBreakdown{
		{Label: "Fetish Overlap", Score: float64(s.FetishOverlap), Weight: weightFetishOverlap},
		{Label: "Personality", Score: float64(s.PersonalityCompat), Weight: weightPersonalityCompat},
		{Label: "Lifestyle", Score: float64(s.LifestyleAlignment), Weight: weightLifestyleAlignment},
		{Label: "Values", Score: float64(s.ValuesAlignment), Weight: weightValuesAlignment},
		{Label: "Aesthetic", Score: float64(s.AestheticHarmony), Weight: weightAestheticHarmony},
	}
	return s
}

// FetishOverlap: coincidencias exactas (hasta 60) + must-haves de a presentes en b (hasta 40).
// Sin must-haves en ninguno de los dos lados el termino must vale 20.
func FetishOverlap(tagsA, tagsB []domain.TagSelection) float64 {
	if len(tagsA) == 0 || len(tagsB) == 0 {
		return 0
	}
	setA := domain.TagIDSet(tagsA)
	setB := domain.TagIDSet(tagsB)

	exact := 0
	for id := range setA {
		if _, ok := setB[id]; ok {
			exact++
		}
	}

	mustA, mustB := 0, 0
	mustHits := 0
	for _, t := range tagsA {
		if !t.IsMust() {
			continue
		}
		mustA++
		if _, ok := setB[t.TagID]; ok {
			mustHits++
		}
	}
	for _, t := range tagsB {
		if t.IsMust() {
			mustB++
		}
	}

	exactScore := float64(exact) / float64(max(len(setA), len(setB))) * 60
	mustScore := 20.0
	if required := max(mustA, mustB); required > 0 {
		mustScore = float64(mustHits) / float64(required) * 40
	}
	return math.Min(100, exactScore+mustScore)
}

// PersonalityCompat es 100 menos la diferencia absoluta media de los cinco rasgos.
func PersonalityCompat(a, b domain.Big5Scores) float64 {
	av, bv := a.Values(), b.Values()
	total := 0.0
	for i := range av {
		total += math.Abs(av[i] - bv[i])
	}
	return math.Max(0, 100-total/float64(len(av)))
}

func LifestyleAlignment(a, b domain.LifestyleData) float64 {
	matches, total := countFieldMatches(a, b, lifestyleFields)
	return ratioOrNeutral(matches, total)
}

func ValuesAlignment(a, b domain.LifestyleData) float64 {
	matches, total := countFieldMatches(a, b, valuesFields)
	return ratioOrNeutral(matches, total)
}

// AestheticHarmony suma ademas el solapamiento de modificaciones corporales
// como coincidencia fraccional cuando ambos lados las declaran.
func AestheticHarmony(a, b domain.LifestyleData) float64 {
	matches, total := countFieldMatches(a, b, aestheticFields)

	if a.BodyModifications != nil && b.BodyModifications != nil {
		modsA := stringSet(a.BodyModifications)
		modsB := stringSet(b.BodyModifications)
		if size := max(len(modsA), len(modsB)); size > 0 {
			overlap := 0
			for m := range modsA {
				if _, ok := modsB[m]; ok {
					overlap++
				}
			}
			total++
			matches += float64(overlap) / float64(size)
		}
	}

	return ratioOrNeutral(matches, total)
}

// countFieldMatches ignora los campos ausentes en cualquiera de los dos lados.
func countFieldMatches(a, b domain.LifestyleData, fields []string) (float64, int) {
	matches := 0.0
	total := 0
	for _, f := range fields {
		va, vb := a.Field(f), b.Field(f)
		if va == "" || vb == "" {
			continue
		}
		total++
		if va == vb {
			matches++
		}
	}
	return matches, total
}

func ratioOrNeutral(matches float64, total int) float64 {
	if total == 0 {
		return neutralAlignment
	}
	return matches / float64(total) * 100
}

// CompatibilityLevel mapea el total a nivel (85/70/55/40) y recomendacion fija.
func CompatibilityLevel(overall int) (string, string) {
	for _, tier := range compatibilityTiers {
		if overall >= tier.min {
			return tier.level, tier.recommendation
		}
	}
	last := compatibilityTiers[len(compatibilityTiers)-1]
	return last.level, last.recommendation
}

func roundScore(v float64) int {
	return int(math.Round(domain.ClampScore(v)))
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
