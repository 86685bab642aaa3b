package errs

import "errors"

// Sentinel errors shared by the usecase layers
var (
	// Listing errors
	ErrListingNotFound = errors.New("listing not found")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")

	// Reference generation: the bounded retry loop ran out of attempts. An
	// operational alarm, not a caller-correctable failure.
	ErrReferenceExhausted = errors.New("reference generation exhausted")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
