package domain

import "time"

type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonBinary Gender = "non-binary"
)

type User struct {
	ID                int       `json:"id" db:"id"`
	Email             string    `json:"email" db:"email"`
	FirstName         string    `json:"first_name" db:"first_name"`
	Age               int       `json:"age" db:"age"`
	Gender            Gender    `json:"gender" db:"gender"`
	LocationCity      string    `json:"location_city" db:"location_city"`
	LocationLatitude  *float64  `json:"location_latitude" db:"location_latitude"`
	LocationLongitude *float64  `json:"location_longitude" db:"location_longitude"`
	IsPremium         bool      `json:"is_premium" db:"is_premium"`
	IsActive          bool      `json:"is_active" db:"is_active"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// HasCoordinates reports whether the user has a usable location.
func (u *User) HasCoordinates() bool {
	return u.LocationLatitude != nil && u.LocationLongitude != nil
}

// MaxDailyChoices returns the choice quota for the user's subscription tier.
func (u *User) MaxDailyChoices(standard, premium int) int {
	if u.IsPremium {
		return premium
	}
	return standard
}
