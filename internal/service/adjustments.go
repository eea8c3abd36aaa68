package service

import (
	"fmt"
	"math"

	"spiegelmatch/internal/domain"
)

// DeriveAdjustments calcula los sliders desde Big5 + lifestyle. Las constantes
// son de tuning de dominio y deben mantenerse exactas.
func DeriveAdjustments(big5 domain.Big5Scores, lifestyle domain.LifestyleData) domain.Adjustments {
	dominance := (big5.Extraversion*0.4 + big5.Conscientiousness*0.4) * 0.6
	if lifestyle.Career == "business" {
		dominance += 20
	}
	if lifestyle.CommunicationStyle == "direct" {
		dominance += 15
	}

	return domain.Adjustments{
		DominanceLevel: domain.ClampScore(dominance),
		IntensityLevel: domain.ClampScore(big5.Openness*0.5 + big5.Neuroticism*0.3),
		EmotionalDepth: domain.ClampScore(big5.Agreeableness*0.8 - big5.Neuroticism*0.3),
		Experience:     domain.ClampScore(big5.Conscientiousness*0.3 + big5.Openness*0.4),
		Publicness:     domain.ClampScore(big5.Extraversion*0.7 - big5.Neuroticism*0.4),
	}
}

// MergeAdjustments aplica, campo por campo, override > derivado > 50.
func MergeAdjustments(overrides, derived domain.AdjustmentOverrides) domain.Adjustments {
	pick := func(o, d *float64) float64 {
		if o != nil {
			return *o
		}
		if d != nil {
			return *d
		}
		return domain.DefaultAdjustmentValue
	}
	return domain.Adjustments{
		DominanceLevel: pick(overrides.DominanceLevel, derived.DominanceLevel),
		IntensityLevel: pick(overrides.IntensityLevel, derived.IntensityLevel),
		EmotionalDepth: pick(overrides.EmotionalDepth, derived.EmotionalDepth),
		Experience:     pick(overrides.Experience, derived.Experience),
		Publicness:     pick(overrides.Publicness, derived.Publicness),
	}
}

// ValidateOverrides rechaza sliders fuera de [0,100].
func ValidateOverrides(o domain.AdjustmentOverrides) error {
	for _, v := range o.Values() {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || *v < 0 || *v > 100 {
			return fmt.Errorf("%w: adjustment %v out of range [0,100]", ErrInvalidInput, *v)
		}
	}
	return nil
}
