package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/goldwen/matching-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type selectionRepository struct {
	db *sqlx.DB
}

func NewSelectionRepository(db *sqlx.DB) repository.SelectionRepository {
	return &selectionRepository{db: db}
}

func (r *selectionRepository) GetForDate(ctx context.Context, userID int, date time.Time) ([]*domain.DailySelection, error) {
	var rows []*domain.DailySelection
	query := `
		SELECT * FROM daily_selections
		WHERE user_id = $1 AND DATE(selection_date) = DATE($2)
		ORDER BY rank_position
	`
	err := r.db.SelectContext(ctx, &rows, query, userID, date)
	return rows, err
}

// ReplaceForDate rewrites the day's ranked rows in one transaction so a
// failed regeneration never leaves a partial selection behind.
func (r *selectionRepository) ReplaceForDate(ctx context.Context, userID int, date time.Time, rows []*domain.DailySelection) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	del := `DELETE FROM daily_selections WHERE user_id = $1 AND DATE(selection_date) = DATE($2)`
	if _, err := tx.ExecContext(ctx, del, userID, date); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}

	insert := `
		INSERT INTO daily_selections (user_id, candidate_user_id, compatibility_score, selection_date, rank_position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	for _, row := range rows {
		err := tx.QueryRowContext(ctx, insert,
			userID, row.CandidateUserID, row.CompatibilityScore, row.SelectionDate, row.RankPosition,
		).Scan(&row.ID, &row.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert selection row: %w", err)
		}
	}

	return tx.Commit()
}

func (r *selectionRepository) RecentCandidateIDs(ctx context.Context, userID int, since, until time.Time) ([]int, error) {
	var ids []int
	query := `
		SELECT candidate_user_id FROM daily_selections
		WHERE user_id = $1 AND selection_date > $2 AND selection_date < $3
	`
	err := r.db.SelectContext(ctx, &ids, query, userID, since, until)
	return ids, err
}
