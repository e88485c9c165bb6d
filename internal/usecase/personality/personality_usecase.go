package personality

import (
	"context"
	"fmt"

	"github.com/goldwen/matching-backend/internal/config"
	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/repository"
)

type PersonalityUseCase struct {
	userRepo        repository.UserRepository
	personalityRepo repository.PersonalityRepository
	cfg             config.MatchingConfig
}

func NewPersonalityUseCase(
	userRepo repository.UserRepository,
	personalityRepo repository.PersonalityRepository,
	cfg config.MatchingConfig,
) *PersonalityUseCase {
	return &PersonalityUseCase{
		userRepo:        userRepo,
		personalityRepo: personalityRepo,
		cfg:             cfg,
	}
}

// ResponseInput is a single submitted questionnaire answer.
type ResponseInput struct {
	QuestionID    int `json:"question_id" binding:"required"`
	ResponseValue int `json:"response_value" binding:"required"`
}

// Submit validates a full questionnaire and replaces the user's previous
// answers wholesale. Partial updates are not supported.
func (uc *PersonalityUseCase) Submit(ctx context.Context, userID int, inputs []ResponseInput) ([]*domain.PersonalityResponse, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	n := uc.cfg.PersonalityQuestions
	if len(inputs) != n {
		return nil, domain.NewValidationError("responses",
			"questionnaire must have exactly %d responses, got %d", n, len(inputs))
	}

	seen := make(map[int]bool, n)
	responses := make([]*domain.PersonalityResponse, 0, n)
	for _, in := range inputs {
		if in.QuestionID < 1 || in.QuestionID > n {
			return nil, domain.NewValidationError("question_id",
				"invalid question_id %d, must be between 1 and %d", in.QuestionID, n)
		}
		if seen[in.QuestionID] {
			return nil, domain.NewValidationError("question_id",
				"duplicate question_id %d", in.QuestionID)
		}
		seen[in.QuestionID] = true

		if in.ResponseValue < domain.MinResponseValue || in.ResponseValue > domain.MaxResponseValue {
			return nil, domain.NewValidationError("response_value",
				"invalid response_value %d, must be between %d and %d",
				in.ResponseValue, domain.MinResponseValue, domain.MaxResponseValue)
		}

		responses = append(responses, &domain.PersonalityResponse{
			UserID:        userID,
			QuestionID:    in.QuestionID,
			ResponseValue: in.ResponseValue,
		})
	}

	if err := uc.personalityRepo.Replace(ctx, userID, responses); err != nil {
		return nil, fmt.Errorf("failed to store questionnaire: %w", err)
	}
	return responses, nil
}

// GetResponses returns the user's stored answers ordered by question.
func (uc *PersonalityUseCase) GetResponses(ctx context.Context, userID int) ([]*domain.PersonalityResponse, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.personalityRepo.GetResponses(ctx, userID)
}
