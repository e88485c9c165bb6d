package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePremium(ctx context.Context, id int, isPremium bool) (*domain.User, error) {
	var user domain.User
	query := `
		UPDATE users
		SET is_premium = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING *
	`
	err := r.db.GetContext(ctx, &user, query, isPremium, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) QueryActiveCandidates(ctx context.Context, criteria repository.CandidateCriteria) ([]*domain.User, error) {
	excluded := make([]int64, 0, len(criteria.ExcludedIDs))
	for _, id := range criteria.ExcludedIDs {
		excluded = append(excluded, int64(id))
	}

	query := `
		SELECT * FROM users
		WHERE is_active = true
		  AND gender <> $1
		  AND abs(age - $2) <= $3
		  AND NOT (id = ANY($4))
	`
	args := []interface{}{criteria.SubjectGender, criteria.SubjectAge, criteria.AgeRange, pq.Array(excluded)}

	if criteria.RequireCoordinates {
		query += ` AND location_latitude IS NOT NULL AND location_longitude IS NOT NULL`
	}

	// Ascending id keeps the result order stable across runs.
	query += ` ORDER BY id LIMIT $5`
	args = append(args, criteria.Limit)

	var users []*domain.User
	err := r.db.SelectContext(ctx, &users, query, args...)
	return users, err
}
