package domain

import "errors"

var (
	// ErrUserNotFound is returned by user storage lookups. The state
	// builder converts it into a default profile; only the auth surface
	// reports it to callers.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering an already known email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRecommendationFailed wraps unexpected failures in the
	// recommendation path. The original cause is preserved for diagnostics.
	ErrRecommendationFailed = errors.New("recommendation failed")
)
