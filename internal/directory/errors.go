// Package directory is the core of the admin user directory: the listing
// query builder and the transactional write path over users, profiles and
// skill memberships.
package directory

import "errors"

// Error kinds. Callers classify failures with errors.Is and map them onto
// their own surface (HTTP status, form error, ...). Details are attached by
// wrapping, e.g. fmt.Errorf("%w: user %d", ErrNotFound, id).
var (
	// ErrNotFound reports that a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraintViolation reports a broken data constraint: an email
	// already used by a live user, or a skill/profession reference that does
	// not resolve.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrInvalidParameter reports a listing parameter outside the allow-list.
	ErrInvalidParameter = errors.New("invalid parameter")
)
