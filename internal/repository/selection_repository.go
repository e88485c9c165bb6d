package repository

import (
	"context"
	"time"

	"github.com/goldwen/matching-backend/internal/domain"
)

type SelectionRepository interface {
	// GetForDate returns the selection rows for one calendar day, ordered by rank.
	GetForDate(ctx context.Context, userID int, date time.Time) ([]*domain.DailySelection, error)
	// ReplaceForDate removes any rows for (user, date) and writes the new
	// ranked list in a single transaction.
	ReplaceForDate(ctx context.Context, userID int, date time.Time, rows []*domain.DailySelection) error
	// RecentCandidateIDs returns candidates shown to the user between the two
	// cutoffs. Bounding the upper end lets regeneration ignore today's rows.
	RecentCandidateIDs(ctx context.Context, userID int, since, until time.Time) ([]int, error)
}
