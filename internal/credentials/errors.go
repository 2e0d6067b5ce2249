package credentials

import "errors"

var (
	// ErrNotFound indicates no value is stored for a key.
	ErrNotFound = errors.New("credential not found")

	// ErrUnauthorized indicates a provided secret did not match.
	ErrUnauthorized = errors.New("unauthorized")
)
