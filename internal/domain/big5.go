package domain

import "math"

const (
	TraitExtraversion      = "extraversion"
	TraitOpenness          = "openness"
	TraitConscientiousness = "conscientiousness"
	TraitAgreeableness     = "agreeableness"
	TraitNeuroticism       = "neuroticism"
)

// TraitNames lista las cinco dimensiones en orden canonico.
var TraitNames = []string{
	TraitExtraversion,
	TraitOpenness,
	TraitConscientiousness,
	TraitAgreeableness,
	TraitNeuroticism,
}

// BaselineTraitScore representa "sin senal" en cualquier dimension.
const BaselineTraitScore = 50.0

// Big5Scores son los rasgos inferidos (0-100).
type Big5Scores struct {
	Extraversion      float64 `json:"extraversion"`      // Energia social
	Openness          float64 `json:"openness"`          // Curiosidad vs. rutina
	Conscientiousness float64 `json:"conscientiousness"` // Estructura vs. espontaneidad
	Agreeableness     float64 `json:"agreeableness"`     // Empatia
	Neuroticism       float64 `json:"neuroticism"`       // Intensidad emocional
}

// BaselineBig5 devuelve el vector neutro (todo 50).
func BaselineBig5() Big5Scores {
	return Big5Scores{
		Extraversion:      BaselineTraitScore,
		Openness:          BaselineTraitScore,
		Conscientiousness: BaselineTraitScore,
		Agreeableness:     BaselineTraitScore,
		Neuroticism:       BaselineTraitScore,
	}
}

// Get devuelve el valor de una dimension por nombre; ok=false si no existe.
func (b Big5Scores) Get(trait string) (float64, bool) {
	switch trait {
	case TraitExtraversion:
		return b.Extraversion, true
	case TraitOpenness:
		return b.Openness, true
	case TraitConscientiousness:
		return b.Conscientiousness, true
	case TraitAgreeableness:
		return b.Agreeableness, true
	case TraitNeuroticism:
		return b.Neuroticism, true
	}
	return 0, false
}

// Add suma delta a la dimension indicada.
func (b *Big5Scores) Add(trait string, delta float64) {
	switch trait {
	case TraitExtraversion:
		b.Extraversion += delta
	case TraitOpenness:
		b.Openness += delta
	case TraitConscientiousness:
		b.Conscientiousness += delta
	case TraitAgreeableness:
		b.Agreeableness += delta
	case TraitNeuroticism:
		b.Neuroticism += delta
	}
}

// Values devuelve las cinco dimensiones en el orden de TraitNames.
func (b Big5Scores) Values() []float64 {
	return []float64{b.Extraversion, b.Openness, b.Conscientiousness, b.Agreeableness, b.Neuroticism}
}

// Big5FromValues es la inversa de Values; ok=false si no hay exactamente cinco valores.
func Big5FromValues(values []float64) (Big5Scores, bool) {
	if len(values) != len(TraitNames) {
		return Big5Scores{}, false
	}
	return Big5Scores{
		Extraversion:      values[0],
		Openness:          values[1],
		Conscientiousness: values[2],
		Agreeableness:     values[3],
		Neuroticism:       values[4],
	}, true
}

// Clamped limita cada dimension a [0,100].
func (b Big5Scores) Clamped() Big5Scores {
	return Big5Scores{
		Extraversion:      ClampScore(b.Extraversion),
		Openness:          ClampScore(b.Openness),
		Conscientiousness: ClampScore(b.Conscientiousness),
		Agreeableness:     ClampScore(b.Agreeableness),
		Neuroticism:       ClampScore(b.Neuroticism),
	}
}

// InRange indica si todas las dimensiones estan en [0,100].
func (b Big5Scores) InRange() bool {
	for _, v := range b.Values() {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return false
		}
	}
	return true
}

// ClampScore limita v a [0,100].
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
