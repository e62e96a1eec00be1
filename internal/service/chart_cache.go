package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"saju-api/internal/domain"
)

// ChartCache memoriza cartas por instante exacto. Nunca comparte una entrada
// entre instantes distintos.
type ChartCache interface {
	Get(ctx context.Context, m domain.BirthMoment) (domain.FourPillars, bool, error)
	Set(ctx context.Context, m domain.BirthMoment, chart domain.FourPillars) error
}

type memoryChartEntry struct {
	chart     domain.FourPillars
	expiresAt time.Time
}

type memoryChartCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryChartEntry
}

func NewMemoryChartCache(ttl time.Duration) ChartCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &memoryChartCache{
		ttl:   ttl,
		items: make(map[string]memoryChartEntry),
	}
}

func (c *memoryChartCache) Get(_ context.Context, m domain.BirthMoment) (domain.FourPillars, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := m.Key()
	entry, ok := c.items[key]
	if !ok {
		return domain.FourPillars{}, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, key)
		return domain.FourPillars{}, false, nil
	}
	return entry.chart, true, nil
}

func (c *memoryChartCache) Set(_ context.Context, m domain.BirthMoment, chart domain.FourPillars) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[m.Key()] = memoryChartEntry{chart: chart, expiresAt: time.Now().UTC().Add(c.ttl)}
	return nil
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisChartCache struct {
	client redisKV
	ttl    time.Duration
	prefix string
}

func NewRedisChartCache(client *redis.Client, ttl time.Duration) ChartCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisChartCache{
		client: client,
		ttl:    ttl,
		prefix: "saju:chart:",
	}
}

// Get trata un valor corrupto como ausencia: la carta se recalcula y se sobrescribe.
func (c *redisChartCache) Get(ctx context.Context, m domain.BirthMoment) (domain.FourPillars, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.prefix+m.Key()).Result()
	if errors.Is(err, redis.Nil) {
		return domain.FourPillars{}, false, nil
	}
	if err != nil {
		return domain.FourPillars{}, false, err
	}
	chart, err := domain.ParseFourPillars(raw)
	if err != nil {
		return domain.FourPillars{}, false, nil
	}
	return chart, true, nil
}

func (c *redisChartCache) Set(ctx context.Context, m domain.BirthMoment, chart domain.FourPillars) error {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+m.Key(), chart.String(), c.ttl).Err()
}
