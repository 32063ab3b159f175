package service

import (
	"errors"
)

// Sentinel errors for the failure taxonomy. Operations wrap these with
// detail via fmt.Errorf("%w: ...") so callers match with errors.Is and
// the boundary layer can translate them to HTTP statuses.
var (
	// ErrNotFound means a referenced merchandise, consumer or sale row
	// does not exist.
	ErrNotFound = errors.New("salesmanager: not found")

	// ErrInvalidArgument means a required field is missing or an input
	// value is malformed (bad date, non-positive quantity, unreadable
	// archive).
	ErrInvalidArgument = errors.New("salesmanager: invalid argument")

	// ErrConflict means the operation would violate ledger state:
	// insufficient stock, or a deletion blocked by existing references.
	ErrConflict = errors.New("salesmanager: conflict")
)
