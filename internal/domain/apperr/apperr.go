// Package apperr defines the domain error kinds shared across services,
// repositories, and the HTTP layer. Callers classify with errors.Is; extra
// context is attached by wrapping, e.g.
//
//	fmt.Errorf("%w: product %d", apperr.ErrNotFound, id)
//
// Storage failures that are not one of these kinds pass through unwrapped and
// are treated as infrastructure errors by the HTTP layer.
package apperr

import "errors"

var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness rule was violated (duplicate
	// email/username, already-verified address).
	ErrConflict = errors.New("conflict")

	// ErrInsufficientStock means a requested quantity exceeds what is available.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrUnauthorized covers bad credentials and inactive accounts. The cases
	// are deliberately indistinguishable to the caller.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidArgument means malformed input (unknown status value, empty
	// order, non-positive quantity).
	ErrInvalidArgument = errors.New("invalid argument")
)
