package service

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrReservationNotFound = errors.New("no matching active reservation")
	ErrProductNotFound     = errors.New("product not found")

	// ErrInvalidState signals an operation against a row whose status
	// no longer permits it; the caller must re-fetch and retry the
	// decision, not the call.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrConfirmationRequired is returned when releasing an order that
	// already has fulfilled reservations without confirm=true. It is an
	// expected prompt, not a failure.
	ErrConfirmationRequired = errors.New("partial release requires confirmation")

	// ErrConcurrencyConflict means a stock row changed under us. The
	// services retry internally; callers only see it once retries are
	// exhausted.
	ErrConcurrencyConflict = errors.New("stock row was modified concurrently")

	// ErrInvariantViolation means a write would leave reserved < 0,
	// quantity < 0 or reserved > quantity. It aborts the transaction
	// and is never clamped away.
	ErrInvariantViolation = errors.New("stock invariant violation")
)
