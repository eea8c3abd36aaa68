package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"spiegelmatch/internal/domain"
)

// MatchCache guarda resultados recientes por par ordenado de personajes.
// La clave incluye los ids de perfil: regenerar un perfil invalida sus entradas.
type MatchCache interface {
	Get(ctx context.Context, character1ID, character2ID string) (domain.MatchResult, bool, error)
	Set(ctx context.Context, result domain.MatchResult, ttl time.Duration) error
}

func matchCacheKey(character1ID, character2ID string) string {
	a, b := strings.TrimSpace(character1ID), strings.TrimSpace(character2ID)
	if a == "" || b == "" {
		return ""
	}
	return a + ":" + b
}

type cachedMatch struct {
	result    domain.MatchResult
	expiresAt time.Time
}

type memoryMatchCache struct {
	mu    sync.Mutex
	items map[string]cachedMatch
	now   func() time.Time
}

func NewMemoryMatchCache() MatchCache {
	return &memoryMatchCache{
		items: make(map[string]cachedMatch),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (c *memoryMatchCache) Get(_ context.Context, character1ID, character2ID string) (domain.MatchResult, bool, error) {
	key := matchCacheKey(character1ID, character2ID)
	if key == "" {
		return domain.MatchResult{}, false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	if !ok {
		return domain.MatchResult{}, false, nil
	}
	if c.now().After(item.expiresAt) {
		delete(c.items, key)
		return domain.MatchResult{}, false, nil
	}
	return item.result, true, nil
}

func (c *memoryMatchCache) Set(_ context.Context, result domain.MatchResult, ttl time.Duration) error {
	key := matchCacheKey(result.Character1ID, result.Character2ID)
	if key == "" || ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cachedMatch{result: result, expiresAt: c.now().Add(ttl)}
	return nil
}

type redisKVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisMatchCache struct {
	client redisKVClient
	prefix string
}

func NewRedisMatchCache(client *redis.Client) MatchCache {
	if client == nil {
		return nil
	}
	return &redisMatchCache{
		client: client,
		prefix: "match:cache:",
	}
}

func (c *redisMatchCache) Get(ctx context.Context, character1ID, character2ID string) (domain.MatchResult, bool, error) {
	key := matchCacheKey(character1ID, character2ID)
	if key == "" {
		return domain.MatchResult{}, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.MatchResult{}, false, nil
	}
	if err != nil {
		return domain.MatchResult{}, false, err
	}
	var result domain.MatchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return domain.MatchResult{}, false, err
	}
	return result, true, nil
}

func (c *redisMatchCache) Set(ctx context.Context, result domain.MatchResult, ttl time.Duration) error {
	key := matchCacheKey(result.Character1ID, result.Character2ID)
	if key == "" || ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+key, payload, ttl).Err()
}
