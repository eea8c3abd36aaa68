// Package catalog carga los datos de referencia del motor: mapeo de tags a
// rasgos Big5, catalogo de arquetipos y bonus de estilo de vida. Se embeben
// en el binario y se validan una sola vez al arrancar.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"spiegelmatch/internal/domain"
)

// ArchetypeCount es el tamano fijo del catalogo.
const ArchetypeCount = 10

//go:embed catalog.yaml
var embeddedCatalog []byte

// LifestyleBonus suma puntos a un arquetipo cuando un campo de lifestyle tiene un valor exacto.
type LifestyleBonus struct {
	Archetype string  `yaml:"archetype"`
	Field     string  `yaml:"field"`
	Value     string  `yaml:"value"`
	Bonus     float64 `yaml:"bonus"`
}

// Catalog es inmutable una vez cargado; se comparte sin locks entre goroutines.
type Catalog struct {
	Version          int                       `yaml:"version"`
	TraitKeywords    map[string][]string       `yaml:"traits"`
	Archetypes       []domain.ArchetypeProfile `yaml:"archetypes"`
	LifestyleBonuses []LifestyleBonus          `yaml:"lifestyle_bonuses"`
}

var (
	ErrInvalidCatalog = errors.New("invalid catalog")

	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Parse decodifica y valida un catalogo en YAML.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Default devuelve el catalogo embebido, cargado una unica vez.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(embeddedCatalog)
	})
	return defaultCat, defaultErr
}

// MustDefault es Default para el arranque de binarios: un catalogo roto es un error de despliegue.
func MustDefault() *Catalog {
	cat, err := Default()
	if err != nil {
		panic(err)
	}
	return cat
}

// Archetype busca un arquetipo por key.
func (c *Catalog) Archetype(key string) (domain.ArchetypeProfile, bool) {
	for _, a := range c.Archetypes {
		if a.Key == key {
			return a, true
		}
	}
	return domain.ArchetypeProfile{}, false
}

func (c *Catalog) validate() error {
	for _, trait := range domain.TraitNames {
		if len(c.TraitKeywords[trait]) == 0 {
			return fmt.Errorf("%w: no keywords for trait %q", ErrInvalidCatalog, trait)
		}
	}
	for trait := range c.TraitKeywords {
		if _, ok := domain.BaselineBig5().Get(trait); !ok {
			return fmt.Errorf("%w: unknown trait %q", ErrInvalidCatalog, trait)
		}
	}

	if len(c.Archetypes) != ArchetypeCount {
		return fmt.Errorf("%w: expected %d archetypes, got %d", ErrInvalidCatalog, ArchetypeCount, len(c.Archetypes))
	}
	seen := make(map[string]struct{}, len(c.Archetypes))
	for _, a := range c.Archetypes {
		if strings.TrimSpace(a.Key) == "" || strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: archetype without key or name", ErrInvalidCatalog)
		}
		if _, dup := seen[a.Key]; dup {
			return fmt.Errorf("%w: duplicated archetype %q", ErrInvalidCatalog, a.Key)
		}
		seen[a.Key] = struct{}{}
		for _, trait := range domain.TraitNames {
			switch a.Pattern.Band(trait) {
			case domain.BandLow, domain.BandMedium, domain.BandHigh:
			default:
				return fmt.Errorf("%w: archetype %q has invalid band for %s", ErrInvalidCatalog, a.Key, trait)
			}
		}
	}

	for _, b := range c.LifestyleBonuses {
		if _, ok := seen[b.Archetype]; !ok {
			return fmt.Errorf("%w: bonus for unknown archetype %q", ErrInvalidCatalog, b.Archetype)
		}
		if b.Field == "" || b.Value == "" {
			return fmt.Errorf("%w: bonus for %q without field or value", ErrInvalidCatalog, b.Archetype)
		}
	}
	return nil
}
