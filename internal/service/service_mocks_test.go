package service

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"spiegelmatch/internal/domain"
)

type mockCharacterRepo struct {
	mu        sync.Mutex
	byID      map[string]domain.CharacterProfile
	createErr error
	updateErr error
	getErr    error
	updates   int
}

func newMockCharacterRepo() *mockCharacterRepo {
	return &mockCharacterRepo{byID: make(map[string]domain.CharacterProfile)}
}

func (m *mockCharacterRepo) Create(_ context.Context, c domain.CharacterProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[c.ID] = c
	return nil
}

func (m *mockCharacterRepo) Update(_ context.Context, c domain.CharacterProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.byID[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.byID[c.ID] = c
	m.updates++
	return nil
}

func (m *mockCharacterRepo) GetByID(_ context.Context, id string) (domain.CharacterProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return domain.CharacterProfile{}, m.getErr
	}
	c, ok := m.byID[id]
	if !ok {
		return domain.CharacterProfile{}, pgx.ErrNoRows
	}
	return c, nil
}

func (m *mockCharacterRepo) ListByUserID(_ context.Context, userID string) ([]domain.CharacterProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.CharacterProfile{}
	for _, c := range m.byID {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockCharacterRepo) GetLatestByUserID(ctx context.Context, userID string) (domain.CharacterProfile, error) {
	if m.getErr != nil {
		return domain.CharacterProfile{}, m.getErr
	}
	list, _ := m.ListByUserID(ctx, userID)
	if len(list) == 0 {
		return domain.CharacterProfile{}, pgx.ErrNoRows
	}
	return list[0], nil
}

type mockMatchRepo struct {
	mu        sync.Mutex
	saved     []domain.MatchResult
	createErr error
	lastLimit int
}

func (m *mockMatchRepo) Create(_ context.Context, match domain.MatchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.saved = append(m.saved, match)
	return nil
}

func (m *mockMatchRepo) ListByUserID(_ context.Context, userID string, limit int) ([]domain.MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	out := []domain.MatchResult{}
	for _, r := range m.saved {
		if r.User1ID == userID || r.User2ID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(context.Context, string) bool { return false }
