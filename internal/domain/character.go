package domain

import "time"

// DefaultArchetypeCompatibility reemplaza el valor aleatorio de relleno; el
// puntaje real de cada pareja lo calcula el motor de matching.
const DefaultArchetypeCompatibility = 85

// DefaultAdjustmentValue se usa para un slider sin valor derivado ni override.
const DefaultAdjustmentValue = 50.0

type TagsSummary struct {
	MustHaves   []string `json:"mustHaves"`
	NiceToHaves []string `json:"niceToHaves"`
	TotalTags   int      `json:"totalTags"`
}

// PersonalityLabels traduce cada rasgo a una etiqueta legible.
type PersonalityLabels struct {
	Extraversion      string `json:"extraversion"`
	Openness          string `json:"openness"`
	Conscientiousness string `json:"conscientiousness"`
	Agreeableness     string `json:"agreeableness"`
	Neuroticism       string `json:"neuroticism"`
}

type ArchetypeSummary struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords"`
	Compatibility int      `json:"compatibility"`
}

type GeneratedProfile struct {
	ShortBio        string   `json:"shortBio"`
	LongDescription string   `json:"longDescription"`
	Keywords        []string `json:"keywords"`
}

// Adjustments son los sliders finos del perfil (0-100).
type Adjustments struct {
	DominanceLevel float64 `json:"dominanceLevel"` // Sub -> Dom
	IntensityLevel float64 `json:"intensityLevel"` // Soft -> Hardcore
	EmotionalDepth float64 `json:"emotionalDepth"` // Casual -> Soul mates
	Experience     float64 `json:"experience"`     // Newbie -> Veteran
	Publicness     float64 `json:"publicness"`     // Discreto -> Comunidad
}

// AdjustmentOverrides permite fijar sliders campo por campo; nil = sin override.
type AdjustmentOverrides struct {
	DominanceLevel *float64 `json:"dominanceLevel,omitempty" binding:"omitempty,min=0,max=100"`
	IntensityLevel *float64 `json:"intensityLevel,omitempty" binding:"omitempty,min=0,max=100"`
	EmotionalDepth *float64 `json:"emotionalDepth,omitempty" binding:"omitempty,min=0,max=100"`
	Experience     *float64 `json:"experience,omitempty" binding:"omitempty,min=0,max=100"`
	Publicness     *float64 `json:"publicness,omitempty" binding:"omitempty,min=0,max=100"`
}

// AsOverrides expone unos Adjustments completos como overrides (todos los campos fijados).
func (a Adjustments) AsOverrides() AdjustmentOverrides {
	d, i, e, x, p := a.DominanceLevel, a.IntensityLevel, a.EmotionalDepth, a.Experience, a.Publicness
	return AdjustmentOverrides{
		DominanceLevel: &d,
		IntensityLevel: &i,
		EmotionalDepth: &e,
		Experience:     &x,
		Publicness:     &p,
	}
}

// Values devuelve los cinco sliders en orden de declaracion.
func (o AdjustmentOverrides) Values() []*float64 {
	return []*float64{o.DominanceLevel, o.IntensityLevel, o.EmotionalDepth, o.Experience, o.Publicness}
}

// CharacterProfile es el perfil completo generado para un usuario.
type CharacterProfile struct {
	ID               string            `json:"id"`
	UserID           string            `json:"userId"`
	Username         string            `json:"username"`
	Tags             []TagSelection    `json:"tags"`
	TagsSummary      TagsSummary       `json:"tagsSummary"`
	Big5             Big5Scores        `json:"big5"`
	Personality      PersonalityLabels `json:"personality"`
	Lifestyle        LifestyleData     `json:"lifestyle"`
	Archetype        ArchetypeSummary  `json:"archetype"`
	GeneratedProfile GeneratedProfile  `json:"generatedProfile"`
	Adjustments      Adjustments       `json:"adjustments"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}
