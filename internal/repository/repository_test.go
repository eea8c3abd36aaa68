package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	pgvector "github.com/pgvector/pgvector-go"

	"spiegelmatch/internal/domain"
)

// fakeRows reproduce el contrato de pgx.Rows asignando cada valor por reflexion.
type fakeRows struct {
	data   [][]any
	idx    int
	err    error
	closed bool
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.data) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...interface{}) error {
	row := f.data[f.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: expected %d destinations, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func (f *fakeRows) Err() error { return f.err }
func (f *fakeRows) Close()     { f.closed = true }

func sampleCharacter() domain.CharacterProfile {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return domain.CharacterProfile{
		ID:       "c1",
		UserID:   "u1",
		Username: "alice",
		Tags: []domain.TagSelection{
			{TagID: "bdsm.bondage.shibari", TagType: domain.TagTypeMust, Intensity: 5, Category: "bdsm.bondage"},
		},
		TagsSummary: domain.TagsSummary{MustHaves: []string{"bdsm.bondage.shibari"}, NiceToHaves: []string{}, TotalTags: 1},
		Big5:        domain.Big5Scores{Extraversion: 55, Openness: 61, Conscientiousness: 50, Agreeableness: 47, Neuroticism: 59},
		Personality: domain.PersonalityLabels{Extraversion: "Ambivert"},
		Lifestyle:   domain.LifestyleData{Career: "creative", BodyModifications: []string{"tattoos"}},
		Archetype:   domain.ArchetypeSummary{Key: "submissiveArtist", Name: "The Submissive Artist", Compatibility: 85},
		GeneratedProfile: domain.GeneratedProfile{
			ShortBio: "alice - The Submissive Artist (1 tags, extroverted)",
			Keywords: []string{"Shibari"},
		},
		Adjustments: domain.Adjustments{DominanceLevel: 24, IntensityLevel: 40, EmotionalDepth: 25, Experience: 35, Publicness: 15},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func characterRowValues(t *testing.T, c domain.CharacterProfile) []any {
	t.Helper()
	row, err := encodeCharacter(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return []any{c.ID, c.UserID, c.Username, row.tags, row.summary, row.big5, row.personality, row.lifestyle, row.archetype, row.generated, row.adjustments, c.CreatedAt, c.UpdatedAt}
}

func TestTraitsVectorRoundTrip(t *testing.T) {
	in := domain.Big5Scores{Extraversion: 10, Openness: 20.5, Conscientiousness: 30, Agreeableness: 40, Neuroticism: 100}
	vec := TraitsToVector(in)
	if got := vec.Slice(); len(got) != 5 || got[0] != 10 || got[4] != 100 {
		t.Fatalf("unexpected vector layout: %v", got)
	}
	out, ok := VectorToTraits(vec)
	if !ok {
		t.Fatalf("expected a five dimension vector")
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if _, ok := VectorToTraits(pgvector.NewVector([]float32{1, 2, 3})); ok {
		t.Fatalf("expected wrong dimension to be rejected")
	}
}

func TestScanCharacters(t *testing.T) {
	c := sampleCharacter()
	rows := &fakeRows{data: [][]any{characterRowValues(t, c)}}

	got, err := scanCharacters(rows)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one character, got %d", len(got))
	}
	if diff := cmp.Diff(c, got[0]); diff != "" {
		t.Fatalf("character mismatch (-want +got):\n%s", diff)
	}
}

func TestScanCharacters_EmptyAndErrors(t *testing.T) {
	got, err := scanCharacters(&fakeRows{})
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v,%v", got, err)
	}

	rowsErr := errors.New("connection reset")
	if _, err := scanCharacters(&fakeRows{err: rowsErr}); !errors.Is(err, rowsErr) {
		t.Fatalf("expected rows error, got %v", err)
	}

	values := characterRowValues(t, sampleCharacter())
	values[3] = []byte("{not json")
	if _, err := scanCharacters(&fakeRows{data: [][]any{values}}); err == nil {
		t.Fatalf("expected decode error")
	}

	values = characterRowValues(t, sampleCharacter())
	values[5] = pgvector.NewVector([]float32{1, 2})
	if _, err := scanCharacters(&fakeRows{data: [][]any{values}}); err == nil {
		t.Fatalf("expected dimension error")
	}
}

func TestEncodeCharacter_NilTagsBecomeEmptyArray(t *testing.T) {
	c := sampleCharacter()
	c.Tags = nil
	row, err := encodeCharacter(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(row.tags) != "[]" {
		t.Fatalf("expected [] for nil tags, got %s", row.tags)
	}
}

func TestScanMatches(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	want := domain.MatchResult{
		MatchID:      "m1",
		User1ID:      "u1",
		User2ID:      "u2",
		Character1ID: "c1",
		Character2ID: "c2",
		Scores: domain.MatchScore{
			Overall:       72,
			FetishOverlap: 80,
			Breakdown:     []domain.ScoreBreakdown{{Label: "Fetish Overlap", Score: 80, Weight: 0.4}},
		},
		CompatibilityLevel: domain.CompatibilityExcellent,
		Recommendation:     "rec",
		CalculatedAt:       now,
	}
	scores, err := json.Marshal(want.Scores)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	rows := &fakeRows{data: [][]any{{want.MatchID, want.User1ID, want.User2ID, want.Character1ID, want.Character2ID, scores, want.CompatibilityLevel, want.Recommendation, want.CalculatedAt}}}

	got, err := scanMatches(rows)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if diff := cmp.Diff([]domain.MatchResult{want}, got); diff != "" {
		t.Fatalf("match mismatch (-want +got):\n%s", diff)
	}
}
