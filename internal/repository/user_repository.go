package repository

import (
	"context"

	"github.com/goldwen/matching-backend/internal/domain"
)

// CandidateCriteria describes the eligibility query for matching candidates.
// Results are ordered by id so selection output stays reproducible.
type CandidateCriteria struct {
	SubjectGender      domain.Gender
	SubjectAge         int
	AgeRange           int
	ExcludedIDs        []int
	RequireCoordinates bool
	Limit              int
}

type UserRepository interface {
	GetByID(ctx context.Context, id int) (*domain.User, error)
	UpdatePremium(ctx context.Context, id int, isPremium bool) (*domain.User, error)
	QueryActiveCandidates(ctx context.Context, criteria CandidateCriteria) ([]*domain.User, error)
}
