package user

import (
	"context"

	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/repository"
)

// UserUseCase covers the thin read/update operations the main API performs
// on matching users. Account management itself lives outside this service.
type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) GetByID(ctx context.Context, userID int) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// SetPremium updates the subscription flag pushed by the main API when a
// user's plan changes; the flag drives the daily choice quota.
func (uc *UserUseCase) SetPremium(ctx context.Context, userID int, isPremium bool) (*domain.User, error) {
	return uc.userRepo.UpdatePremium(ctx, userID, isPremium)
}
