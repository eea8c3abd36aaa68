package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"spiegelmatch/internal/domain"
	"spiegelmatch/internal/repository"
)

const defaultMatchListLimit = 20

// MatchService calcula matches entre los perfiles mas recientes de dos usuarios.
type MatchService struct {
	logger     *zap.Logger
	characters repository.CharacterRepository
	matches    repository.MatchRepository
	engine     MatchingEngine
	cache      MatchCache
	cacheTTL   time.Duration
	limiter    RateLimiter
}

type MatchServiceOptions struct {
	Cache    MatchCache
	CacheTTL time.Duration
	Limiter  RateLimiter
}

func NewMatchService(logger *zap.Logger, characters repository.CharacterRepository, matches repository.MatchRepository, engine MatchingEngine, opts MatchServiceOptions) *MatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Cache == nil {
		opts.Cache = NewMemoryMatchCache()
	}
	if opts.Limiter == nil {
		opts.Limiter = NewMemoryRateLimiter(time.Minute, 60)
	}
	return &MatchService{
		logger:     logger,
		characters: characters,
		matches:    matches,
		engine:     engine,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		limiter:    opts.Limiter,
	}
}

// CalculateForUsers puntua el ultimo perfil de userID1 contra el de userID2.
// Un fallo al guardar o cachear el resultado se registra pero no se propaga.
func (s *MatchService) CalculateForUsers(ctx context.Context, userID1, userID2 string) (domain.MatchResult, error) {
	if s.characters == nil {
		return domain.MatchResult{}, errors.New("match service not configured")
	}
	userID1, userID2 = strings.TrimSpace(userID1), strings.TrimSpace(userID2)
	if userID1 == "" || userID2 == "" {
		return domain.MatchResult{}, fmt.Errorf("%w: both user ids are required", ErrInvalidInput)
	}
	if userID1 == userID2 {
		return domain.MatchResult{}, fmt.Errorf("%w: cannot match a user with themselves", ErrInvalidInput)
	}
	if !s.limiter.Allow(ctx, userID1) {
		return domain.MatchResult{}, ErrRateLimited
	}

	var a, b domain.CharacterProfile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.latest(gctx, userID1)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = s.latest(gctx, userID2)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.MatchResult{}, err
	}

	if cached, ok, err := s.cache.Get(ctx, a.ID, b.ID); err != nil {
		s.logger.Warn("match cache read failed", zap.Error(err))
	} else if ok {
		return cached, nil
	}

	result, err := s.engine.Score(&a, &b)
	if err != nil {
		return domain.MatchResult{}, err
	}

	if s.matches != nil {
		if err := s.matches.Create(ctx, result); err != nil {
			s.logger.Warn("match save failed", zap.String("match_id", result.MatchID), zap.Error(err))
		}
	}
	if err := s.cache.Set(ctx, result, s.cacheTTL); err != nil {
		s.logger.Warn("match cache write failed", zap.Error(err))
	}

	s.logger.Info("match calculated",
		zap.String("match_id", result.MatchID),
		zap.Int("overall", result.Scores.Overall),
		zap.String("level", result.CompatibilityLevel),
	)
	return result, nil
}

// ScoreProfiles puntua dos perfiles enviados por el cliente, sin persistir.
func (s *MatchService) ScoreProfiles(a, b *domain.CharacterProfile) (domain.MatchResult, error) {
	return s.engine.Score(a, b)
}

func (s *MatchService) ListForUser(ctx context.Context, userID string, limit int) ([]domain.MatchResult, error) {
	if s.matches == nil {
		return nil, errors.New("match service not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if limit <= 0 || limit > 100 {
		limit = defaultMatchListLimit
	}
	return s.matches.ListByUserID(ctx, userID, limit)
}

func (s *MatchService) latest(ctx context.Context, userID string) (domain.CharacterProfile, error) {
	profile, err := s.characters.GetLatestByUserID(ctx, userID)
	if err != nil {
		if err = notFound(err); errors.Is(err, ErrCharacterNotFound) {
			return domain.CharacterProfile{}, fmt.Errorf("%w for user %s", ErrCharacterNotFound, userID)
		}
		return domain.CharacterProfile{}, err
	}
	return profile, nil
}
