package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type choiceRepository struct {
	db *sqlx.DB
}

func NewChoiceRepository(db *sqlx.DB) repository.ChoiceRepository {
	return &choiceRepository{db: db}
}

func (r *choiceRepository) Create(ctx context.Context, choice *domain.Choice) error {
	query := `
		INSERT INTO user_choices (user_id, chosen_user_id, choice_date, is_match)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		choice.UserID, choice.ChosenUserID, choice.ChoiceDate, choice.IsMatch,
	).Scan(&choice.ID, &choice.CreatedAt)
}

func (r *choiceRepository) CountByChooserSince(ctx context.Context, userID int, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM user_choices WHERE user_id = $1 AND choice_date >= $2`
	err := r.db.GetContext(ctx, &count, query, userID, since)
	return count, err
}

func (r *choiceRepository) ChosenIDsSince(ctx context.Context, userID int, since time.Time) ([]int, error) {
	var ids []int
	query := `SELECT chosen_user_id FROM user_choices WHERE user_id = $1 AND choice_date > $2`
	err := r.db.SelectContext(ctx, &ids, query, userID, since)
	return ids, err
}

// GetReverse returns the earliest opposite-direction choice, or nil if the
// chosen user never picked the chooser.
func (r *choiceRepository) GetReverse(ctx context.Context, chosenUserID, userID int) (*domain.Choice, error) {
	var choice domain.Choice
	query := `
		SELECT * FROM user_choices
		WHERE user_id = $1 AND chosen_user_id = $2
		ORDER BY choice_date
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &choice, query, chosenUserID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &choice, nil
}

func (r *choiceRepository) UpdateMatchFlag(ctx context.Context, choiceID int, isMatch bool) error {
	query := `UPDATE user_choices SET is_match = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, isMatch, choiceID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("choice %d not found", choiceID)
	}
	return nil
}

func (r *choiceRepository) ListByChooser(ctx context.Context, userID int, limit int) ([]*domain.Choice, error) {
	var choices []*domain.Choice
	query := `
		SELECT * FROM user_choices
		WHERE user_id = $1
		ORDER BY choice_date DESC
		LIMIT $2
	`
	err := r.db.SelectContext(ctx, &choices, query, userID, limit)
	return choices, err
}
