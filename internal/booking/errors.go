// Package booking implements the reservation lifecycle on top of the
// allocation engine: booking a table, cancelling a reservation and
// listing a user's reservations.  Business-rule outcomes are sentinel
// errors so handlers can translate them into precise HTTP responses
// with errors.Is.
package booking

import "errors"

// ErrNoTableAvailable means allocation found no table that can host the
// party.  It is an expected negative outcome, not a failure.
var ErrNoTableAvailable = errors.New("no table available")

// ErrReservationNotFound is returned when the referenced reservation
// does not exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrTableNotFound is returned when a referenced table id does not
// exist in the inventory.
var ErrTableNotFound = errors.New("table not found")

// ErrForbidden is returned when a user attempts to act on a reservation
// owned by someone else.  Handlers should translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyCancelled distinguishes a repeated cancellation from a real
// state change.  The reservation and the table are left untouched.
var ErrAlreadyCancelled = errors.New("reservation already cancelled")

// ErrConflict signals that a concurrent writer won the slot: the
// reservation insert hit the (table, date, time, status) uniqueness key.
// The whole allocation should be retried, not the same table.
var ErrConflict = errors.New("reservation slot conflict")

// ErrInvalidSlot is returned when the reservation date or time cannot
// be parsed.
var ErrInvalidSlot = errors.New("invalid reservation date or time")
