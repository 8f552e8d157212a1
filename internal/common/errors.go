// Package common defines shared sentinel errors and small helpers used
// across the dashboard packages. Callers should use errors.Is to match the
// error values.
package common

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation marks user-facing input problems (empty fields,
	// malformed email, short secret, unknown role).
	ErrValidation = errors.New("validation error")
)
