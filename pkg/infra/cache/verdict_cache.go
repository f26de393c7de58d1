package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL   = 24 * time.Hour
	writeTimeout = 2 * time.Second
)

//go:generate mockery --name=VerdictCache --dir=. --output=./mocks --filename=verdict_cache_mock.go --case=underscore --with-expecter

// VerdictCache holds accepted verdicts only. A miss is (zero, false, nil).
type VerdictCache interface {
	Get(ctx context.Context, key string) (verdict.Verdict, bool, error)
	Set(ctx context.Context, key string, v verdict.Verdict) error
}

type memoryCache struct {
	entries *TTLMap[verdict.Verdict]
}

// NewMemoryCache keeps verdicts in process for the given TTL.
func NewMemoryCache(ttl time.Duration) VerdictCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &memoryCache{entries: NewTTLMap[verdict.Verdict](ttl)}
}

func (c *memoryCache) Get(_ context.Context, key string) (verdict.Verdict, bool, error) {
	v, ok := c.entries.Get(key)
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, v verdict.Verdict) error {
	if !v.Valid() {
		return fmt.Errorf("refusing to cache invalid verdict %q", v.Type)
	}
	c.entries.Set(key, v)
	return nil
}

type redisCache struct {
	redisClient *redis.Client
	local       *TTLMap[verdict.Verdict]
	ttl         time.Duration
	sf          singleflight.Group
	logger      *logrus.Logger
}

// NewRedisCache stores verdicts in redis with a short-lived local copy in
// front. Concurrent lookups of the same key share one round trip.
func NewRedisCache(redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) VerdictCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	localTTL := ttl
	if localTTL > 5*time.Minute {
		localTTL = 5 * time.Minute
	}
	return &redisCache{
		redisClient: redisClient,
		local:       NewTTLMap[verdict.Verdict](localTTL),
		ttl:         ttl,
		logger:      logger,
	}
}

type lookup struct {
	v  verdict.Verdict
	ok bool
}

func (c *redisCache) Get(ctx context.Context, key string) (verdict.Verdict, bool, error) {
	if v, ok := c.local.Get(key); ok {
		return v, true, nil
	}

	res, err, _ := c.sf.Do(key, func() (interface{}, error) {
		raw, err := c.redisClient.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return lookup{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("redis get %s: %w", key, err)
		}
		var v verdict.Verdict
		if err := json.Unmarshal([]byte(raw), &v); err != nil || !v.Valid() {
			c.logger.WithField("key", key).Warn("discarding malformed cached verdict")
			return lookup{}, nil
		}
		c.local.Set(key, v)
		return lookup{v: v, ok: true}, nil
	})
	if err != nil {
		return verdict.Verdict{}, false, err
	}
	l, _ := res.(lookup) //nolint:errcheck
	return l.v, l.ok, nil
}

func (c *redisCache) Set(ctx context.Context, key string, v verdict.Verdict) error {
	if !v.Valid() {
		return fmt.Errorf("refusing to cache invalid verdict %q", v.Type)
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := c.redisClient.Set(ctx, key, string(payload), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	c.local.Set(key, v)
	return nil
}
