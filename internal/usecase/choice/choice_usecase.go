package choice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goldwen/matching-backend/internal/config"
	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/repository"
	"github.com/goldwen/matching-backend/pkg/keylock"
	"go.uber.org/zap"
)

// InsightGenerator produces the optional match blurb. A nil generator (or a
// failing one) simply means no insight is attached.
type InsightGenerator interface {
	GenerateMatchInsight(ctx context.Context, user1, user2 *domain.User) (string, error)
}

type ChoiceUseCase struct {
	userRepo   repository.UserRepository
	choiceRepo repository.ChoiceRepository
	insight    InsightGenerator
	cfg        config.MatchingConfig
	logger     *zap.Logger
	locks      *keylock.KeyLock
}

func NewChoiceUseCase(
	userRepo repository.UserRepository,
	choiceRepo repository.ChoiceRepository,
	insight InsightGenerator,
	cfg config.MatchingConfig,
	logger *zap.Logger,
) *ChoiceUseCase {
	return &ChoiceUseCase{
		userRepo:   userRepo,
		choiceRepo: choiceRepo,
		insight:    insight,
		cfg:        cfg,
		logger:     logger,
		locks:      keylock.New(),
	}
}

// ChoiceResponse is the recorded choice plus match details when the pick
// turned out to be mutual.
type ChoiceResponse struct {
	Choice       *domain.Choice `json:"choice"`
	IsMatch      bool           `json:"is_match"`
	MatchInsight *string        `json:"match_insight,omitempty"`
}

// RecordChoice records a pick, enforces the daily quota and detects mutual
// matches. The quota check, insert and flag updates run under the chooser's
// lock so concurrent picks cannot both squeeze through the last slot.
func (uc *ChoiceUseCase) RecordChoice(ctx context.Context, userID, chosenUserID int) (*ChoiceResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	chosen, err := uc.userRepo.GetByID(ctx, chosenUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrChosenUserNotFound
		}
		return nil, err
	}

	uc.locks.Lock(userID)
	defer uc.locks.Unlock(userID)

	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	count, err := uc.choiceRepo.CountByChooserSince(ctx, userID, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's choices: %w", err)
	}

	quota := user.MaxDailyChoices(uc.cfg.StandardDailyChoices, uc.cfg.PremiumDailyChoices)
	if count >= quota {
		return nil, domain.ErrQuotaExceeded
	}

	choice := &domain.Choice{
		UserID:       userID,
		ChosenUserID: chosenUserID,
		ChoiceDate:   now,
		IsMatch:      false,
	}
	if err := uc.choiceRepo.Create(ctx, choice); err != nil {
		return nil, fmt.Errorf("failed to record choice: %w", err)
	}

	// Mutual-match detection looks at the reverse choice's entire history,
	// not just today.
	reverse, err := uc.choiceRepo.GetReverse(ctx, chosenUserID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up reverse choice: %w", err)
	}

	response := &ChoiceResponse{Choice: choice}

	if reverse != nil {
		if err := uc.choiceRepo.UpdateMatchFlag(ctx, choice.ID, true); err != nil {
			return nil, fmt.Errorf("failed to flag choice as match: %w", err)
		}
		if err := uc.choiceRepo.UpdateMatchFlag(ctx, reverse.ID, true); err != nil {
			return nil, fmt.Errorf("failed to flag reverse choice as match: %w", err)
		}
		choice.IsMatch = true
		response.IsMatch = true

		uc.logger.Info("mutual match detected",
			zap.Int("user_id", userID), zap.Int("chosen_user_id", chosenUserID))

		if insight := uc.matchInsight(ctx, user, chosen); insight != "" {
			response.MatchInsight = &insight
		}
	}

	return response, nil
}

// ListChoices returns the user's choice history, most recent first.
func (uc *ChoiceUseCase) ListChoices(ctx context.Context, userID, limit int) ([]*domain.Choice, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 20
	}

	choices, err := uc.choiceRepo.ListByChooser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list choices: %w", err)
	}
	return choices, nil
}

func (uc *ChoiceUseCase) matchInsight(ctx context.Context, user, chosen *domain.User) string {
	if uc.insight == nil {
		return ""
	}
	insight, err := uc.insight.GenerateMatchInsight(ctx, user, chosen)
	if err != nil {
		uc.logger.Warn("match insight generation failed",
			zap.Int("user_id", user.ID), zap.Int("chosen_user_id", chosen.ID), zap.Error(err))
		return ""
	}
	return insight
}
