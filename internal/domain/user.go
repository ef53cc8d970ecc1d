package domain

import "time"

type User struct {
	ID           string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          int       `json:"age"`
	Interests    []string  `json:"interests"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the slice of user data the ranking core consumes.
type Profile struct {
	Age       int      `json:"age"`
	Interests []string `json:"interests"`
}

// DefaultProfile is assumed for unknown users instead of failing the request.
func DefaultProfile() Profile {
	return Profile{Age: 25, Interests: []string{}}
}
