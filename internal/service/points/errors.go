package points

import "errors"

// Service errors exposed to the API boundary.
var (
	// ErrPointNotOwned is returned when an ownership-conditional update or
	// delete matched zero rows. It deliberately covers both "no such point"
	// and "owned by someone else" so callers cannot probe for existence.
	ErrPointNotOwned = errors.New("point not found or not owned by caller")

	// ErrGuestWriteDenied is returned when a guest-role caller attempts to
	// create or delete a point.
	ErrGuestWriteDenied = errors.New("guests cannot modify data")
)
