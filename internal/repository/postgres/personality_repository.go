package postgres

import (
	"context"
	"fmt"

	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type personalityRepository struct {
	db *sqlx.DB
}

func NewPersonalityRepository(db *sqlx.DB) repository.PersonalityRepository {
	return &personalityRepository{db: db}
}

func (r *personalityRepository) GetResponses(ctx context.Context, userID int) ([]*domain.PersonalityResponse, error) {
	var responses []*domain.PersonalityResponse
	query := `
		SELECT * FROM personality_responses
		WHERE user_id = $1
		ORDER BY question_id
	`
	err := r.db.SelectContext(ctx, &responses, query, userID)
	return responses, err
}

func (r *personalityRepository) Replace(ctx context.Context, userID int, responses []*domain.PersonalityResponse) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM personality_responses WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear responses: %w", err)
	}

	insert := `
		INSERT INTO personality_responses (user_id, question_id, response_value)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	for _, resp := range responses {
		resp.UserID = userID
		err := tx.QueryRowContext(ctx, insert, userID, resp.QuestionID, resp.ResponseValue).
			Scan(&resp.ID, &resp.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert response: %w", err)
		}
	}

	return tx.Commit()
}
