package domain

const (
	BandLow    = "low"
	BandMedium = "medium"
	BandHigh   = "high"
)

// Big5Pattern declara la banda esperada de cada rasgo para un arquetipo.
type Big5Pattern struct {
	Extraversion      string `json:"extraversion" yaml:"extraversion"`
	Openness          string `json:"openness" yaml:"openness"`
	Conscientiousness string `json:"conscientiousness" yaml:"conscientiousness"`
	Agreeableness     string `json:"agreeableness" yaml:"agreeableness"`
	Neuroticism       string `json:"neuroticism" yaml:"neuroticism"`
}

// Band devuelve la banda declarada para el rasgo.
func (p Big5Pattern) Band(trait string) string {
	switch trait {
	case TraitExtraversion:
		return p.Extraversion
	case TraitOpenness:
		return p.Openness
	case TraitConscientiousness:
		return p.Conscientiousness
	case TraitAgreeableness:
		return p.Agreeableness
	case TraitNeuroticism:
		return p.Neuroticism
	}
	return ""
}

// ArchetypeProfile es una entrada fija del catalogo de arquetipos.
type ArchetypeProfile struct {
	Key         string      `json:"key" yaml:"key"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Keywords    []string    `json:"keywords" yaml:"keywords"`
	Pattern     Big5Pattern `json:"big5Pattern" yaml:"pattern"`
}
