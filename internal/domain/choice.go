package domain

import "time"

// Choice records that a user picked a candidate from their selection.
// Two choices (A→B and B→A) jointly form a mutual match; once detected,
// both rows carry IsMatch = true.
type Choice struct {
	ID           int       `json:"id" db:"id"`
	UserID       int       `json:"user_id" db:"user_id"`
	ChosenUserID int       `json:"chosen_user_id" db:"chosen_user_id"`
	ChoiceDate   time.Time `json:"choice_date" db:"choice_date"`
	IsMatch      bool      `json:"is_match" db:"is_match"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
