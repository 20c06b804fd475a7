package user

import "time"

// User is primarily an identity reference; the profile fields exist for
// display and contact, never for authorization decisions.
type User struct {
	ID          string
	DisplayName string
	Phone       string
	Campus      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type UpdateProfileInput struct {
	DisplayName *string
	Phone       *string
	Campus      *string
}
