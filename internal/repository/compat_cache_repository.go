package repository

import (
	"context"

	"github.com/goldwen/matching-backend/internal/domain"
)

// CompatibilityCacheRepository memoizes scores per canonical pair. Entries
// expire after the configured TTL; an expired entry is a miss.
type CompatibilityCacheRepository interface {
	Get(ctx context.Context, pair domain.Pair) (float64, bool, error)
	Put(ctx context.Context, pair domain.Pair, score float64) error
}
