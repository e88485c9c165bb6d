package repository

import (
	"context"

	"github.com/goldwen/matching-backend/internal/domain"
)

type PersonalityRepository interface {
	// GetResponses returns a user's answers ordered by question id.
	GetResponses(ctx context.Context, userID int) ([]*domain.PersonalityResponse, error)
	// Replace removes any existing answers and stores the new set atomically.
	Replace(ctx context.Context, userID int, responses []*domain.PersonalityResponse) error
}
