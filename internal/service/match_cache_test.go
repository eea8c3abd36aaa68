package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"spiegelmatch/internal/domain"
)

type mockRedisKVClient struct {
	store      map[string][]byte
	lastSetKey string
	lastSetTTL time.Duration

	getErr error
	setErr error
}

func newMockRedisKVClient() *mockRedisKVClient {
	return &mockRedisKVClient{store: make(map[string][]byte)}
}

func (m *mockRedisKVClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	raw, ok := m.store[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(raw))
	return cmd
}

func (m *mockRedisKVClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastSetKey = key
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	m.store[key] = value.([]byte)
	cmd.SetVal("OK")
	return cmd
}

func sampleMatch() domain.MatchResult {
	return domain.MatchResult{
		MatchID:            "m1",
		User1ID:            "u1",
		User2ID:            "u2",
		Character1ID:       "c1",
		Character2ID:       "c2",
		Scores:             domain.MatchScore{Overall: 72, FetishOverlap: 80},
		CompatibilityLevel: domain.CompatibilityExcellent,
		Recommendation:     "ok",
		CalculatedAt:       fixedNow,
	}
}

func TestMemoryMatchCache_SetGetExpire(t *testing.T) {
	cache := NewMemoryMatchCache().(*memoryMatchCache)
	current := fixedNow
	cache.now = func() time.Time { return current }
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx, "c1", "c2"); err != nil || ok {
		t.Fatalf("expected miss, got %v,%v", ok, err)
	}
	if err := cache.Set(ctx, sampleMatch(), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, ok, err := cache.Get(ctx, "c1", "c2")
	if err != nil || !ok {
		t.Fatalf("expected hit, got %v,%v", ok, err)
	}
	if diff := cmp.Diff(sampleMatch(), got); diff != "" {
		t.Fatalf("cached match mismatch (-want +got):\n%s", diff)
	}
	if _, ok, _ := cache.Get(ctx, "c2", "c1"); ok {
		t.Fatalf("cache key must keep pair order")
	}

	current = current.Add(2 * time.Minute)
	if _, ok, _ := cache.Get(ctx, "c1", "c2"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestMemoryMatchCache_IgnoresEmptyKeysAndTTL(t *testing.T) {
	cache := NewMemoryMatchCache()
	ctx := context.Background()
	m := sampleMatch()
	m.Character2ID = ""
	if err := cache.Set(ctx, m, time.Minute); err != nil {
		t.Fatalf("empty key set should be no-op, got %v", err)
	}
	if err := cache.Set(ctx, sampleMatch(), 0); err != nil {
		t.Fatalf("zero ttl set should be no-op, got %v", err)
	}
	if _, ok, _ := cache.Get(ctx, "c1", "c2"); ok {
		t.Fatalf("expected nothing cached")
	}
}

func TestRedisMatchCache_RoundTrip(t *testing.T) {
	mock := newMockRedisKVClient()
	cache := &redisMatchCache{client: mock, prefix: "match:cache:"}
	ctx := context.Background()

	if err := cache.Set(ctx, sampleMatch(), 10*time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if mock.lastSetKey != "match:cache:c1:c2" || mock.lastSetTTL != 10*time.Minute {
		t.Fatalf("unexpected set call: %q %v", mock.lastSetKey, mock.lastSetTTL)
	}
	var stored domain.MatchResult
	if err := json.Unmarshal(mock.store["match:cache:c1:c2"], &stored); err != nil {
		t.Fatalf("stored payload is not json: %v", err)
	}

	got, ok, err := cache.Get(ctx, " c1 ", "c2")
	if err != nil || !ok {
		t.Fatalf("expected hit, got %v,%v", ok, err)
	}
	if got.MatchID != "m1" || got.Scores.Overall != 72 || !got.CalculatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected cached match: %+v", got)
	}
}

func TestRedisMatchCache_MissAndErrors(t *testing.T) {
	mock := newMockRedisKVClient()
	cache := &redisMatchCache{client: mock, prefix: "match:cache:"}
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx, "c1", "c2"); err != nil || ok {
		t.Fatalf("redis.Nil should be a clean miss, got %v,%v", ok, err)
	}

	mock.getErr = errors.New("get failed")
	mock.setErr = errors.New("set failed")
	if _, _, err := cache.Get(ctx, "c1", "c2"); err == nil {
		t.Fatalf("expected get error")
	}
	if err := cache.Set(ctx, sampleMatch(), time.Minute); err == nil {
		t.Fatalf("expected set error")
	}

	mock.getErr = nil
	mock.store["match:cache:c1:c2"] = []byte("{not json")
	if _, _, err := cache.Get(ctx, "c1", "c2"); err == nil {
		t.Fatalf("expected decode error")
	}
}
