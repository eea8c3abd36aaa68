package service

import (
	"fmt"
	"strings"

	"spiegelmatch/internal/domain"
)

const maxNarrativeMustHaves = 3

// PersonalityLabelsFor traduce Big5 a etiquetas (umbrales 70/30).
func PersonalityLabelsFor(b domain.Big5Scores) domain.PersonalityLabels {
	return domain.PersonalityLabels{
		Extraversion:      band3(b.Extraversion, "Extrovert", "Ambivert", "Introvert"),
		Openness:          band3(b.Openness, "Very Open", "Balanced", "Traditional"),
		Conscientiousness: band3(b.Conscientiousness, "Organized", "Flexible", "Spontaneous"),
		Agreeableness:     band3(b.Agreeableness, "Compassionate", "Balanced", "Assertive"),
		Neuroticism:       band3(b.Neuroticism, "Sensitive", "Stable", "Resilient"),
	}
}

func band3(v float64, high, mid, low string) string {
	switch {
	case v > 70:
		return high
	case v < 30:
		return low
	default:
		return mid
	}
}

// ShortBio arma la linea corta del perfil.
func ShortBio(username string, archetype domain.ArchetypeProfile, tagCount int, big5 domain.Big5Scores) string {
	social := "introverted"
	if big5.Extraversion > 50 {
		social = "extroverted"
	}
	return fmt.Sprintf("%s - %s (%d tags, %s)", username, archetype.Name, tagCount, social)
}

// LongDescription compone el texto largo de forma determinista.
func LongDescription(archetype domain.ArchetypeProfile, summary domain.TagsSummary, big5 domain.Big5Scores, lifestyle domain.LifestyleData) string {
	parts := []string{fmt.Sprintf("You are %s.", archetype.Name)}

	if len(summary.MustHaves) > 0 {
		musts := summary.MustHaves
		if len(musts) > maxNarrativeMustHaves {
			musts = musts[:maxNarrativeMustHaves]
		}
		names := make([]string, 0, len(musts))
		for _, id := range musts {
			names = append(names, leafName(id))
		}
		parts = append(parts, fmt.Sprintf("Your must-haves are: %s.", strings.Join(names, ", ")))
	}

	parts = append(parts, big5Narrative(big5))

	if lifestyle.Career != "" {
		rhythm := lifestyle.DailyRhythm
		if rhythm == "" {
			rhythm = "ordinary"
		}
		parts = append(parts, fmt.Sprintf("Professionally: %s. Your days are %s, but kink is your escape.", lifestyle.Career, rhythm))
	}
	if lifestyle.RelationshipStructure != "" {
		parts = append(parts, fmt.Sprintf("In relationships you are looking for %s.", lifestyle.RelationshipStructure))
	}

	parts = append(parts, archetype.Description)
	return strings.Join(parts, " ")
}

// big5Narrative usa umbrales 65/35, mas finos que las etiquetas.
func big5Narrative(b domain.Big5Scores) string {
	var sb strings.Builder
	switch {
	case b.Extraversion > 65:
		sb.WriteString("You are extroverted and full of energy")
	case b.Extraversion < 35:
		sb.WriteString("You are introverted and need inner calm")
	default:
		sb.WriteString("You are ambiverted and flexible in social situations")
	}

	if b.Openness > 65 {
		sb.WriteString(" and open to new experiences")
	} else if b.Openness < 35 {
		sb.WriteString(" and prefer proven paths")
	}

	if b.Conscientiousness > 65 {
		sb.WriteString(". Structure and planning are your friends")
	} else if b.Conscientiousness < 35 {
		sb.WriteString(". Spontaneity and flexibility drive you")
	}

	if b.Agreeableness > 65 {
		sb.WriteString(", and empathy for your partner is central")
	} else if b.Agreeableness < 35 {
		sb.WriteString(", and others do not sway you easily")
	}

	if b.Neuroticism > 65 {
		sb.WriteString(". Intense feelings are normal for you")
	} else if b.Neuroticism < 35 {
		sb.WriteString(". You stay emotionally stable and balanced")
	}

	sb.WriteString(".")
	return sb.String()
}

func leafName(tagID string) string {
	if i := strings.LastIndexByte(tagID, '.'); i >= 0 {
		return tagID[i+1:]
	}
	return tagID
}
