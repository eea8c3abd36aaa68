package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"spiegelmatch/internal/domain"
)

func TestCalculateFromTags(t *testing.T) {
	calc := NewTraitCalculator(testCatalog(t))

	tests := []struct {
		name string
		tags []domain.TagSelection
		want domain.Big5Scores
	}{
		{
			name: "empty input stays at baseline",
			tags: nil,
			want: domain.BaselineBig5(),
		},
		{
			name: "no keyword match stays at baseline",
			tags: []domain.TagSelection{tag("bdsm.bondage.shibari", "must", 5)},
			want: domain.BaselineBig5(),
		},
		{
			name: "single match with max intensity",
			tags: []domain.TagSelection{tag("public.settings.party", "must", 5)},
			want: domain.Big5Scores{Extraversion: 59, Openness: 50, Conscientiousness: 50, Agreeableness: 50, Neuroticism: 50},
		},
		{
			name: "tag feeding two dimensions with low intensity",
			tags: []domain.TagSelection{tag("extreme.transformation", "nice", 1)},
			want: domain.Big5Scores{Extraversion: 51, Openness: 51, Conscientiousness: 50, Agreeableness: 50, Neuroticism: 50},
		},
		{
			name: "keyword matching is case-insensitive",
			tags: []domain.TagSelection{tag("PSYCHOLOGICAL.EMOTIONS.FEAR", "must", 3)},
			want: domain.Big5Scores{Extraversion: 50, Openness: 50, Conscientiousness: 50, Agreeableness: 50, Neuroticism: 55},
		},
		{
			name: "keyword matches as substring of deeper ids",
			tags: []domain.TagSelection{
				tag("bdsm.domSub.powerDyn.highProtocol.rituals", "must", 4),
				tag("objectification.service.cleaning", "nice", 2),
			},
			want: domain.Big5Scores{Extraversion: 50, Openness: 50, Conscientiousness: 57, Agreeableness: 53, Neuroticism: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateFromTags(tt.tags)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected scores (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateFromTags_ClampsToRange(t *testing.T) {
	calc := NewTraitCalculator(testCatalog(t))

	var high, low []domain.TagSelection
	for i := 0; i < 20; i++ {
		high = append(high, tag("psychological.emotions.fear", "must", 5))
	}
	for i := 0; i < 60; i++ {
		// Intensidad fuera de rango: el motor no valida, solo limita el resultado.
		low = append(low, tag("psychological.emotions.shame", "nice", 0))
	}

	if got := calc.CalculateFromTags(high).Neuroticism; got != 100 {
		t.Fatalf("expected neuroticism clamped to 100, got %v", got)
	}
	if got := calc.CalculateFromTags(low).Neuroticism; got != 0 {
		t.Fatalf("expected neuroticism clamped to 0, got %v", got)
	}
}

func TestCalculateFromTags_DuplicatesDoubleCount(t *testing.T) {
	calc := NewTraitCalculator(testCatalog(t))
	single := calc.CalculateFromTags([]domain.TagSelection{tag("public.settings.party", "must", 3)})
	double := calc.CalculateFromTags([]domain.TagSelection{
		tag("public.settings.party", "must", 3),
		tag("public.settings.party", "must", 3),
	})
	if single.Extraversion != 55 || double.Extraversion != 60 {
		t.Fatalf("expected 55 and 60, got %v and %v", single.Extraversion, double.Extraversion)
	}
}

func TestCalculateFromTags_OrderIndependent(t *testing.T) {
	calc := NewTraitCalculator(testCatalog(t))
	tags := []domain.TagSelection{
		tag("public.settings.party", "must", 5),
		tag("extreme.vore", "nice", 2),
		tag("bdsm.domSub.powerDyn.tpe24", "must", 4),
		tag("psychological.emotions.caregiving", "nice", 1),
		tag("extreme.asphyxiation", "must", 5),
	}
	want := calc.CalculateFromTags(tags)

	reversed := make([]domain.TagSelection, len(tags))
	for i, tg := range tags {
		reversed[len(tags)-1-i] = tg
	}
	rotated := append(append([]domain.TagSelection{}, tags[2:]...), tags[:2]...)

	for _, perm := range [][]domain.TagSelection{reversed, rotated} {
		if diff := cmp.Diff(want, calc.CalculateFromTags(perm)); diff != "" {
			t.Fatalf("order changed scores (-want +got):\n%s", diff)
		}
	}
}
