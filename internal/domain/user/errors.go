package user

import "errors"

var (
	// ErrUserNotFound is returned when no user exists for the given ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserInactive is returned when an inactive user tries to act.
	ErrUserInactive = errors.New("user is not active")
)
