package domain

import "time"

// DailySelection is one ranked row of a user's selection for a calendar day.
type DailySelection struct {
	ID                 int       `json:"id" db:"id"`
	UserID             int       `json:"user_id" db:"user_id"`
	CandidateUserID    int       `json:"candidate_user_id" db:"candidate_user_id"`
	CompatibilityScore float64   `json:"compatibility_score" db:"compatibility_score"`
	SelectionDate      time.Time `json:"selection_date" db:"selection_date"`
	RankPosition       int       `json:"rank_position" db:"rank_position"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// SelectionCandidate is a ranked candidate as surfaced to the caller.
type SelectionCandidate struct {
	UserID             int     `json:"user_id"`
	FirstName          string  `json:"first_name"`
	Age                int     `json:"age"`
	LocationCity       string  `json:"location_city"`
	CompatibilityScore float64 `json:"compatibility_score"`
	RankPosition       int     `json:"rank_position"`
}
