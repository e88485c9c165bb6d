package compat

import (
	"context"
	"fmt"

	"github.com/goldwen/matching-backend/internal/config"
	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/repository"
	"go.uber.org/zap"
)

// CompatUseCase computes compatibility scores with the cache as a
// read-through/write-through layer over the pure cosine computation.
type CompatUseCase struct {
	userRepo        repository.UserRepository
	personalityRepo repository.PersonalityRepository
	cacheRepo       repository.CompatibilityCacheRepository
	cfg             config.MatchingConfig
	logger          *zap.Logger
}

func NewCompatUseCase(
	userRepo repository.UserRepository,
	personalityRepo repository.PersonalityRepository,
	cacheRepo repository.CompatibilityCacheRepository,
	cfg config.MatchingConfig,
	logger *zap.Logger,
) *CompatUseCase {
	return &CompatUseCase{
		userRepo:        userRepo,
		personalityRepo: personalityRepo,
		cacheRepo:       cacheRepo,
		cfg:             cfg,
		logger:          logger,
	}
}

// ComputeCompatibility is the caller-facing variant of Score: both users
// must resolve before scoring.
func (uc *CompatUseCase) ComputeCompatibility(ctx context.Context, user1ID, user2ID int) (float64, error) {
	if _, err := uc.userRepo.GetByID(ctx, user1ID); err != nil {
		return 0, err
	}
	if _, err := uc.userRepo.GetByID(ctx, user2ID); err != nil {
		return 0, err
	}
	return uc.Score(ctx, user1ID, user2ID)
}

// Vector returns the user's ordered response vector. A user with fewer than
// the required number of answers yields ErrIncompleteProfile.
func (uc *CompatUseCase) Vector(ctx context.Context, userID int) ([]float64, error) {
	responses, err := uc.personalityRepo.GetResponses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get personality responses: %w", err)
	}
	if len(responses) != uc.cfg.PersonalityQuestions {
		return nil, domain.ErrIncompleteProfile
	}

	vec := make([]float64, len(responses))
	for i, resp := range responses {
		vec[i] = float64(resp.ResponseValue)
	}
	return vec, nil
}

// Score returns the compatibility score for a pair of users. Scores are
// symmetric and cached under the canonical pair key; an incomplete profile
// on either side contributes 0.0 instead of failing.
func (uc *CompatUseCase) Score(ctx context.Context, user1ID, user2ID int) (float64, error) {
	pair := domain.CanonicalPair(user1ID, user2ID)

	cached, ok, err := uc.cacheRepo.Get(ctx, pair)
	if err != nil {
		// A broken cache degrades to recomputation; it never blocks scoring.
		uc.logger.Warn("compatibility cache read failed",
			zap.Int("user1_id", pair.Low), zap.Int("user2_id", pair.High), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	vec1, err := uc.Vector(ctx, user1ID)
	if err != nil {
		if err == domain.ErrIncompleteProfile {
			return 0.0, nil
		}
		return 0, err
	}
	vec2, err := uc.Vector(ctx, user2ID)
	if err != nil {
		if err == domain.ErrIncompleteProfile {
			return 0.0, nil
		}
		return 0, err
	}

	score := CosineSimilarity(vec1, vec2)

	if err := uc.cacheRepo.Put(ctx, pair, score); err != nil {
		uc.logger.Warn("compatibility cache write failed",
			zap.Int("user1_id", pair.Low), zap.Int("user2_id", pair.High), zap.Error(err))
	}

	return score, nil
}
