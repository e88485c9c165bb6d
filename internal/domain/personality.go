package domain

import "time"

// PersonalityResponse is a single questionnaire answer. A user's full set of
// responses, ordered by question, forms their personality vector.
type PersonalityResponse struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	QuestionID    int       `json:"question_id" db:"question_id"`
	ResponseValue int       `json:"response_value" db:"response_value"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

const (
	// MinResponseValue and MaxResponseValue bound the questionnaire scale.
	MinResponseValue = 1
	MaxResponseValue = 5
)
