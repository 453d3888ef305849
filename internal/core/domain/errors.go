package domain

import "errors"

var (
	// ErrValidation marks malformed or missing input. Wrapped errors carry
	// the field-level reason, e.g. fmt.Errorf("%w: phone is required", ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateUser is returned when a username or email is already taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidRole is returned when a role reference does not resolve.
	ErrInvalidRole = errors.New("invalid role")

	// ErrUserNotFound is returned when the target user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrRoleNotFound is returned by role lookups that miss.
	ErrRoleNotFound = errors.New("role not found")

	// ErrAuthenticationFailed is the only credential-check failure exposed to
	// callers. The specific reason (unknown user vs wrong password) is logged
	// and audited internally but never surfaced.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrTokenInvalid and ErrTokenExpired are returned by token verification.
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrStorage wraps unexpected persistence failures. Details are logged
	// server-side and never exposed to the caller.
	ErrStorage = errors.New("storage failure")
)
