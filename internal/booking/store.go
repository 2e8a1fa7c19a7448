package booking

import (
    "context"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Store is the persistence boundary of the reservation lifecycle.  The
// production implementation lives in internal/repository and wraps a
// MySQL database; tests substitute an in-memory fake.
type Store interface {
    // InTx runs fn inside a single database transaction.  A non-nil
    // error from fn rolls the transaction back and is returned as-is.
    InTx(ctx context.Context, fn func(tx StoreTx) error) error

    // ListByUser returns a page of the user's reservations (any status),
    // most recent slot first.
    ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]model.Reservation, error)

    // CountByUser returns the total number of reservations the user owns.
    CountByUser(ctx context.Context, userID uint64) (int, error)

    // GetByIDForUser loads one reservation.  It returns
    // ErrReservationNotFound when the id does not exist and ErrForbidden
    // when it belongs to a different user.
    GetByIDForUser(ctx context.Context, reservationID, userID uint64) (model.Reservation, error)
}

// StoreTx is the transaction-scoped view of the store.  The
// read-allocate-write sequence of Book and both mutations of Cancel run
// against a single StoreTx so they commit or roll back together.
type StoreTx interface {
    // AvailableTables returns the currently available tables, locked
    // against concurrent bookings for the duration of the transaction.
    AvailableTables(ctx context.Context) ([]model.Table, error)

    // CreateReservation inserts the reservation and fills in its
    // generated ID and timestamps.  A slot-uniqueness violation is
    // reported as ErrConflict.
    CreateReservation(ctx context.Context, r *model.Reservation) error

    // SetTableAvailability flips a table's availability flag.  It
    // returns ErrTableNotFound when the table id does not exist.
    SetTableAvailability(ctx context.Context, tableID uint64, available bool) error

    // ReservationForUpdate loads a reservation with a row lock, or
    // ErrReservationNotFound.
    ReservationForUpdate(ctx context.Context, id uint64) (model.Reservation, error)

    // UpdateReservationStatus sets the reservation's status.
    UpdateReservationStatus(ctx context.Context, id uint64, status model.ReservationStatus) error
}
