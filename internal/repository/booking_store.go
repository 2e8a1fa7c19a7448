package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// BookingStore adapts the table and reservation repositories to the
// booking.Store interface, owning the transaction boundary.  The service
// layer never sees *sql.DB or *sql.Tx.
type BookingStore struct {
    DB           *sql.DB
    Tables       *TableRepo
    Reservations *ReservationRepo
}

func NewBookingStore(db *sql.DB, tables *TableRepo, reservations *ReservationRepo) *BookingStore {
    return &BookingStore{DB: db, Tables: tables, Reservations: reservations}
}

// InTx runs fn inside a transaction, rolling back on any error or panic
// and committing otherwise.
func (s *BookingStore) InTx(ctx context.Context, fn func(tx booking.StoreTx) error) error {
    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(&bookingTx{tx: tx, store: s}); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

func (s *BookingStore) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]model.Reservation, error) {
    return s.Reservations.ListByUser(ctx, userID, limit, offset)
}

func (s *BookingStore) CountByUser(ctx context.Context, userID uint64) (int, error) {
    return s.Reservations.CountByUser(ctx, userID)
}

func (s *BookingStore) GetByIDForUser(ctx context.Context, reservationID, userID uint64) (model.Reservation, error) {
    return s.Reservations.GetByIDForUser(ctx, reservationID, userID)
}

// bookingTx is the transaction-scoped view handed to the service.
type bookingTx struct {
    tx    *sql.Tx
    store *BookingStore
}

func (t *bookingTx) AvailableTables(ctx context.Context) ([]model.Table, error) {
    return t.store.Tables.ListAvailableForUpdateTx(ctx, t.tx)
}

func (t *bookingTx) CreateReservation(ctx context.Context, r *model.Reservation) error {
    return t.store.Reservations.CreateTx(ctx, t.tx, r)
}

func (t *bookingTx) SetTableAvailability(ctx context.Context, tableID uint64, available bool) error {
    return t.store.Tables.SetAvailabilityTx(ctx, t.tx, tableID, available)
}

func (t *bookingTx) ReservationForUpdate(ctx context.Context, id uint64) (model.Reservation, error) {
    return t.store.Reservations.GetForUpdateTx(ctx, t.tx, id)
}

func (t *bookingTx) UpdateReservationStatus(ctx context.Context, id uint64, status model.ReservationStatus) error {
    return t.store.Reservations.UpdateStatusTx(ctx, t.tx, id, status)
}

var (
    _ booking.Store   = (*BookingStore)(nil)
    _ booking.StoreTx = (*bookingTx)(nil)
)
