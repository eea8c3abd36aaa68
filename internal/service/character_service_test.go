package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"spiegelmatch/internal/domain"
)

func newTestCharacterService(t *testing.T, repo *mockCharacterRepo, limiter RateLimiter) *CharacterService {
	t.Helper()
	svc := NewCharacterService(zap.NewNop(), newTestGenerator(t), repo, limiter)
	svc.now = func() time.Time { return fixedNow.Add(time.Hour) }
	return svc
}

func generateInput(userID string) GenerateInput {
	return GenerateInput{
		UserID:   userID,
		Username: "alice",
		Tags:     []domain.TagSelection{tag("bdsm.bondage.shibari", domain.TagTypeMust, 5)},
	}
}

func TestCharacterServiceGenerate_PersistsProfile(t *testing.T) {
	repo := newMockCharacterRepo()
	svc := newTestCharacterService(t, repo, nil)

	profile, err := svc.Generate(context.Background(), generateInput("u1"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	stored, ok := repo.byID[profile.ID]
	if !ok {
		t.Fatalf("expected profile %s to be stored", profile.ID)
	}
	if stored.Archetype.Key != "submissiveArtist" || stored.UserID != "u1" {
		t.Fatalf("unexpected stored profile: %+v", stored)
	}
}

func TestCharacterServiceGenerate_Errors(t *testing.T) {
	t.Run("invalid input is not persisted", func(t *testing.T) {
		repo := newMockCharacterRepo()
		svc := newTestCharacterService(t, repo, nil)
		in := generateInput("u1")
		in.Tags = nil
		if _, err := svc.Generate(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if len(repo.byID) != 0 {
			t.Fatalf("nothing should be stored on invalid input")
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		svc := newTestCharacterService(t, newMockCharacterRepo(), denyAllLimiter{})
		if _, err := svc.Generate(context.Background(), generateInput("u1")); !errors.Is(err, ErrRateLimited) {
			t.Fatalf("expected ErrRateLimited, got %v", err)
		}
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		repo := newMockCharacterRepo()
		repo.createErr = errors.New("insert failed")
		svc := newTestCharacterService(t, repo, nil)
		if _, err := svc.Generate(context.Background(), generateInput("u1")); !errors.Is(err, repo.createErr) {
			t.Fatalf("expected wrapped repo error, got %v", err)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		svc := NewCharacterService(nil, nil, nil, nil)
		if _, err := svc.Generate(context.Background(), generateInput("u1")); err == nil {
			t.Fatalf("expected error for unconfigured service")
		}
	})
}

func TestCharacterServiceGet(t *testing.T) {
	repo := newMockCharacterRepo()
	svc := newTestCharacterService(t, repo, nil)
	profile, err := svc.Generate(context.Background(), generateInput("u1"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := svc.Get(context.Background(), " "+profile.ID+" ")
	if err != nil || got.ID != profile.ID {
		t.Fatalf("expected stored profile, got %+v,%v", got, err)
	}
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrCharacterNotFound) {
		t.Fatalf("expected ErrCharacterNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// Postgres rechaza ids que no son UUID con 22P02.
	repo.getErr = fmt.Errorf("get character: %w", &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"})
	if _, err := svc.Get(context.Background(), "abc"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for malformed id, got %v", err)
	}
	repo.getErr = &pgconn.PgError{Code: "08006"}
	if _, err := svc.Get(context.Background(), "abc"); errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrCharacterNotFound) {
		t.Fatalf("expected other database errors to pass through, got %v", err)
	}
}

func TestCharacterServiceListAndLatest(t *testing.T) {
	repo := newMockCharacterRepo()
	svc := newTestCharacterService(t, repo, nil)
	ctx := context.Background()

	first, err := svc.Generate(ctx, generateInput("u1"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	svc.generator.now = func() time.Time { return fixedNow.Add(time.Minute) }
	second, err := svc.Generate(ctx, generateInput("u1"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	list, err := svc.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}
	latest, err := svc.Latest(ctx, "u1")
	if err != nil || latest.ID != second.ID {
		t.Fatalf("expected latest %s, got %+v,%v", second.ID, latest, err)
	}
	if _, err := svc.Latest(ctx, "nobody"); !errors.Is(err, ErrCharacterNotFound) {
		t.Fatalf("expected ErrCharacterNotFound, got %v", err)
	}
	if _, err := svc.ListByUser(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCharacterServiceUpdateAdjustments(t *testing.T) {
	repo := newMockCharacterRepo()
	svc := newTestCharacterService(t, repo, nil)
	ctx := context.Background()
	profile, err := svc.Generate(ctx, generateInput("u1"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	intensity := 80.0
	updated, err := svc.UpdateAdjustments(ctx, profile.ID, domain.AdjustmentOverrides{IntensityLevel: &intensity})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := profile.Adjustments
	want.IntensityLevel = 80
	if updated.Adjustments != want {
		t.Fatalf("expected %+v, got %+v", want, updated.Adjustments)
	}
	if !updated.UpdatedAt.Equal(fixedNow.Add(time.Hour)) || !updated.CreatedAt.Equal(profile.CreatedAt) {
		t.Fatalf("unexpected timestamps: %v / %v", updated.CreatedAt, updated.UpdatedAt)
	}
	if updated.Big5 != profile.Big5 || updated.Archetype.Key != profile.Archetype.Key {
		t.Fatalf("traits and archetype must not change")
	}
	if repo.updates != 1 || repo.byID[profile.ID].Adjustments.IntensityLevel != 80 {
		t.Fatalf("expected one persisted update")
	}

	bad := 101.0
	if _, err := svc.UpdateAdjustments(ctx, profile.ID, domain.AdjustmentOverrides{Publicness: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpdateAdjustments(ctx, "missing", domain.AdjustmentOverrides{IntensityLevel: &intensity}); !errors.Is(err, ErrCharacterNotFound) {
		t.Fatalf("expected ErrCharacterNotFound, got %v", err)
	}
}
