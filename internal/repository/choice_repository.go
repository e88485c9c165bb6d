package repository

import (
	"context"
	"time"

	"github.com/goldwen/matching-backend/internal/domain"
)

type ChoiceRepository interface {
	Create(ctx context.Context, choice *domain.Choice) error
	CountByChooserSince(ctx context.Context, userID int, since time.Time) (int, error)
	ChosenIDsSince(ctx context.Context, userID int, since time.Time) ([]int, error)
	// GetReverse looks up the opposite-direction choice over its entire
	// history; mutual-match detection is not date bounded.
	GetReverse(ctx context.Context, chosenUserID, userID int) (*domain.Choice, error)
	UpdateMatchFlag(ctx context.Context, choiceID int, isMatch bool) error
	ListByChooser(ctx context.Context, userID int, limit int) ([]*domain.Choice, error)
}
