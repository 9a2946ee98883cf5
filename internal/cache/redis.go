package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/uniscore/uniscore/internal/engine"
)

const redisKeyPrefix = "uniscore:result:"

// Redis is a ResultCache backed by a Redis instance, for deployments
// running more than one API replica. Failures degrade to cache misses;
// the cache never fails a request.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis wraps a Redis client as a result cache.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get implements ResultCache.
func (r *Redis) Get(ctx context.Context, key string) (*engine.ScoringResult, bool) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("redis cache get failed")
		}
		return nil, false
	}
	var result engine.ScoringResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis cache entry corrupt")
		return nil, false
	}
	return &result, true
}

// Set implements ResultCache.
func (r *Redis) Set(ctx context.Context, key string, result *engine.ScoringResult) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis cache marshal failed")
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, data, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis cache set failed")
	}
}
