package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"spiegelmatch/internal/catalog"
	"spiegelmatch/internal/domain"
	"spiegelmatch/internal/taxonomy"
)

// GenerateInput son los datos que el usuario aporta para crear su perfil.
type GenerateInput struct {
	UserID      string
	Username    string
	Tags        []domain.TagSelection
	Lifestyle   domain.LifestyleData
	Adjustments *domain.AdjustmentOverrides
}

// CharacterGenerator compone inferencia de rasgos, arquetipo y sliders en un
// perfil inmutable. No hace I/O; es seguro para uso concurrente.
type CharacterGenerator struct {
	traits     TraitCalculator
	archetypes ArchetypeDetector
	tags       taxonomy.Lookup
	now        func() time.Time
	newID      func() string
}

// NewCharacterGenerator recibe el catalogo cargado al arranque. lookup es opcional
// y solo se usa para completar la categoria de tags que llegan sin ella.
func NewCharacterGenerator(cat *catalog.Catalog, lookup taxonomy.Lookup) *CharacterGenerator {
	return &CharacterGenerator{
		traits:     NewTraitCalculator(cat),
		archetypes: NewArchetypeDetector(cat),
		tags:       lookup,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

// Traits expone la inferencia Big5 sin armar un perfil completo.
func (g *CharacterGenerator) Traits(tags []domain.TagSelection) domain.Big5Scores {
	return g.traits.CalculateFromTags(tags)
}

// Archetype expone la clasificacion sin armar un perfil completo.
func (g *CharacterGenerator) Archetype(big5 domain.Big5Scores, lifestyle domain.LifestyleData, tags []domain.TagSelection) domain.ArchetypeProfile {
	return g.archetypes.Detect(big5, lifestyle, tags)
}

// Generate valida la entrada y arma el perfil. Los tags se deduplican por
// tagId (gana la mayor intensidad) antes de inferir rasgos.
func (g *CharacterGenerator) Generate(in GenerateInput) (domain.CharacterProfile, error) {
	userID := strings.TrimSpace(in.UserID)
	username := strings.TrimSpace(in.Username)
	if userID == "" || username == "" {
		return domain.CharacterProfile{}, fmt.Errorf("%w: userId and username are required", ErrInvalidInput)
	}
	if len(in.Tags) == 0 {
		return domain.CharacterProfile{}, fmt.Errorf("%w: at least one tag is required", ErrInvalidInput)
	}
	var overrides domain.AdjustmentOverrides
	if in.Adjustments != nil {
		if err := ValidateOverrides(*in.Adjustments); err != nil {
			return domain.CharacterProfile{}, err
		}
		overrides = *in.Adjustments
	}

	tags := g.enrich(domain.DedupeTags(in.Tags))
	big5 := g.traits.CalculateFromTags(tags)
	archetype := g.archetypes.Detect(big5, in.Lifestyle, tags)
	derived := DeriveAdjustments(big5, in.Lifestyle)
	summary := summarizeTags(tags)
	now := g.now()

	return domain.CharacterProfile{
		ID:          g.newID(),
		UserID:      userID,
		Username:    username,
		Tags:        tags,
		TagsSummary: summary,
		Big5:        big5,
		Personality: PersonalityLabelsFor(big5),
		Lifestyle:   in.Lifestyle,
		Archetype: domain.ArchetypeSummary{
			Key:           archetype.Key,
			Name:          archetype.Name,
			Description:   archetype.Description,
			Keywords:      archetype.Keywords,
			Compatibility: domain.DefaultArchetypeCompatibility,
		},
		GeneratedProfile: domain.GeneratedProfile{
			ShortBio:        ShortBio(username, archetype, len(tags), big5),
			LongDescription: LongDescription(archetype, summary, big5, in.Lifestyle),
			Keywords:        archetype.Keywords,
		},
		Adjustments: MergeAdjustments(overrides, derived.AsOverrides()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// enrich copia los tags y completa Category desde la taxonomia o el primer segmento del id.
func (g *CharacterGenerator) enrich(tags []domain.TagSelection) []domain.TagSelection {
	out := make([]domain.TagSelection, len(tags))
	for i, t := range tags {
		if strings.TrimSpace(t.Category) == "" {
			if g.tags != nil {
				if meta, ok := g.tags.Tag(t.TagID); ok {
					t.Category = meta.Category
				}
			}
			if t.Category == "" {
				t.Category = t.RootCategory()
			}
		}
		out[i] = t
	}
	return out
}

func summarizeTags(tags []domain.TagSelection) domain.TagsSummary {
	summary := domain.TagsSummary{
		MustHaves:   []string{},
		NiceToHaves: []string{},
		TotalTags:   len(tags),
	}
	for _, t := range tags {
		switch t.TagType {
		case domain.TagTypeMust:
			summary.MustHaves = append(summary.MustHaves, t.TagID)
		case domain.TagTypeNice:
			summary.NiceToHaves = append(summary.NiceToHaves, t.TagID)
		}
	}
	return summary
}
