package question

import "errors"

// Error kinds surfaced to the HTTP boundary. Everything else is internal.
var (
	// ErrNotFound is returned when a requested or required resource is absent:
	// empty catalog, empty question store, missing question id, or an exhausted
	// quiz candidate set.
	ErrNotFound = errors.New("resource not found")

	// ErrUnprocessable is returned when a well-formed request cannot be
	// satisfied: empty search term, or a failed create/delete transaction.
	ErrUnprocessable = errors.New("unprocessable request")
)

// IsNotFound reports whether err maps to a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnprocessable reports whether err maps to an unsatisfiable request.
func IsUnprocessable(err error) bool {
	return errors.Is(err, ErrUnprocessable)
}
