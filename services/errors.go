// Package services holds the business operations behind the HTTP
// controllers. The sentinel errors below let controllers translate
// failure kinds into HTTP statuses: ErrValidation maps to 400,
// ErrNotFound to 404, the conflict family (ErrSlotNotAvailable,
// ErrAlreadyCancelled, ErrInvalidTransition, ErrConflict) to 409,
// and anything else to 500.
package services

import "errors"

var (
	// ErrValidation is returned when an input fails a business rule
	// check (bad time range, rating out of bounds, negative amounts).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a salon-scoped record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlotNotAvailable is returned when the requested staff time range
	// overlaps an existing reservation that still blocks the slot.
	ErrSlotNotAvailable = errors.New("slot not available")

	// ErrAlreadyCancelled is returned when cancelling a reservation or
	// booking that is already cancelled.
	ErrAlreadyCancelled = errors.New("already cancelled")

	// ErrInvalidTransition is returned for any other disallowed
	// lifecycle state change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict is returned when an operation cannot proceed because
	// of existing dependent state, such as a duplicate review.
	ErrConflict = errors.New("conflict")
)
