package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

type compatCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCompatCacheRepository stores compatibility scores under the canonical
// pair key with the given TTL. Expiry makes stale entries cache misses, so
// they are recomputed rather than read.
func NewCompatCacheRepository(client *redis.Client, ttl time.Duration) repository.CompatibilityCacheRepository {
	return &compatCacheRepository{client: client, ttl: ttl}
}

func cacheKey(pair domain.Pair) string {
	return fmt.Sprintf("compat:%d:%d", pair.Low, pair.High)
}

func (r *compatCacheRepository) Get(ctx context.Context, pair domain.Pair) (float64, bool, error) {
	val, err := r.client.Get(ctx, cacheKey(pair)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read compatibility cache: %w", err)
	}

	score, err := strconv.ParseFloat(val, 64)
	if err != nil {
		// Unparseable entry is treated as a miss and overwritten on Put.
		return 0, false, nil
	}
	return score, true, nil
}

func (r *compatCacheRepository) Put(ctx context.Context, pair domain.Pair, score float64) error {
	val := strconv.FormatFloat(score, 'f', -1, 64)
	if err := r.client.Set(ctx, cacheKey(pair), val, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write compatibility cache: %w", err)
	}
	return nil
}
