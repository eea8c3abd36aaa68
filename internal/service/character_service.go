package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"spiegelmatch/internal/domain"
	"spiegelmatch/internal/repository"
)

// CharacterService genera, persiste y ajusta perfiles de personaje.
type CharacterService struct {
	logger     *zap.Logger
	generator  *CharacterGenerator
	characters repository.CharacterRepository
	limiter    RateLimiter
	now        func() time.Time
}

// NewCharacterService usa un limitador en memoria si limiter es nil.
func NewCharacterService(logger *zap.Logger, generator *CharacterGenerator, characters repository.CharacterRepository, limiter RateLimiter) *CharacterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = NewMemoryRateLimiter(time.Hour, 10)
	}
	return &CharacterService{
		logger:     logger,
		generator:  generator,
		characters: characters,
		limiter:    limiter,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *CharacterService) Generate(ctx context.Context, in GenerateInput) (domain.CharacterProfile, error) {
	if s.characters == nil || s.generator == nil {
		return domain.CharacterProfile{}, errors.New("character service not configured")
	}
	if !s.limiter.Allow(ctx, in.UserID) {
		return domain.CharacterProfile{}, ErrRateLimited
	}

	profile, err := s.generator.Generate(in)
	if err != nil {
		return domain.CharacterProfile{}, err
	}
	if err := s.characters.Create(ctx, profile); err != nil {
		return domain.CharacterProfile{}, fmt.Errorf("save character: %w", err)
	}

	s.logger.Info("character generated",
		zap.String("character_id", profile.ID),
		zap.String("user_id", profile.UserID),
		zap.String("archetype", profile.Archetype.Key),
		zap.Int("tags", profile.TagsSummary.TotalTags),
	)
	return profile, nil
}

func (s *CharacterService) Get(ctx context.Context, id string) (domain.CharacterProfile, error) {
	if s.characters == nil {
		return domain.CharacterProfile{}, errors.New("character service not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.CharacterProfile{}, fmt.Errorf("%w: character id is required", ErrInvalidInput)
	}
	profile, err := s.characters.GetByID(ctx, id)
	if err != nil {
		return domain.CharacterProfile{}, notFound(err)
	}
	return profile, nil
}

// ListByUser devuelve los perfiles del usuario, el mas reciente primero.
func (s *CharacterService) ListByUser(ctx context.Context, userID string) ([]domain.CharacterProfile, error) {
	if s.characters == nil {
		return nil, errors.New("character service not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	return s.characters.ListByUserID(ctx, userID)
}

func (s *CharacterService) Latest(ctx context.Context, userID string) (domain.CharacterProfile, error) {
	if s.characters == nil {
		return domain.CharacterProfile{}, errors.New("character service not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.CharacterProfile{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	profile, err := s.characters.GetLatestByUserID(ctx, userID)
	if err != nil {
		return domain.CharacterProfile{}, notFound(err)
	}
	return profile, nil
}

// UpdateAdjustments aplica los campos presentes en patch sobre los sliders
// actuales. Rasgos y arquetipo no se recalculan.
func (s *CharacterService) UpdateAdjustments(ctx context.Context, id string, patch domain.AdjustmentOverrides) (domain.CharacterProfile, error) {
	if err := ValidateOverrides(patch); err != nil {
		return domain.CharacterProfile{}, err
	}
	profile, err := s.Get(ctx, id)
	if err != nil {
		return domain.CharacterProfile{}, err
	}

	profile.Adjustments = MergeAdjustments(patch, profile.Adjustments.AsOverrides())
	profile.UpdatedAt = s.now()
	if err := s.characters.Update(ctx, profile); err != nil {
		return domain.CharacterProfile{}, fmt.Errorf("update character: %w", err)
	}

	s.logger.Info("character adjustments updated", zap.String("character_id", profile.ID))
	return profile, nil
}

// pgInvalidTextRepresentation es el SQLSTATE de un id que no castea a UUID.
const pgInvalidTextRepresentation = "22P02"

// notFound traduce los errores de repositorio que dependen del input del
// cliente; el resto pasa sin cambios.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCharacterNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
		return fmt.Errorf("%w: malformed id", ErrInvalidInput)
	}
	return err
}
