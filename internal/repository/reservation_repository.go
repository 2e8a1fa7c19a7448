package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// reservation_date/reservation_time are formatted in SQL because the
// driver's parseTime=true turns DATE columns into time.Time while the
// model keeps slots as strings.
const reservationColumns = "id,user_id,table_id,seats_reserved,total_cost_cents,status," +
    "DATE_FORMAT(reservation_date,'%Y-%m-%d'),TIME_FORMAT(reservation_time,'%H:%i:%s'),created_at,updated_at"

// ReservationRepo provides CRUD operations for reservations.  The slot
// uniqueness key (table_id, reservation_date, reservation_time, status)
// is the last line of defense against double booking; violations are
// surfaced as booking.ErrConflict.  DATE and TIME columns are scanned
// as their string forms.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// CreateTx inserts a new reservation within an existing transaction and
// populates the generated ID and timestamps on the provided record.  The
// caller must commit or roll back the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const q = `INSERT INTO reservations (user_id, table_id, seats_reserved, total_cost_cents, status, reservation_date, reservation_time)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        res.UserID, res.TableID, res.SeatsReserved, res.TotalCostCents, res.Status, res.Date, res.Time)
    if err != nil {
        if isDuplicate(err, "") {
            return booking.ErrConflict
        }
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    // Query back the timestamps the DB assigned.
    return tx.QueryRowContext(ctx,
        "SELECT created_at, updated_at FROM reservations WHERE id=?", res.ID).
        Scan(&res.CreatedAt, &res.UpdatedAt)
}

// GetForUpdateTx loads a reservation with a row lock so concurrent
// cancellations of the same reservation serialize.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
    const q = "SELECT " + reservationColumns + " FROM reservations WHERE id=? FOR UPDATE"
    res, err := scanReservation(tx.QueryRowContext(ctx, q, id))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Reservation{}, booking.ErrReservationNotFound
    }
    return res, err
}

// UpdateStatusTx sets the reservation's status within a transaction.
// The slot uniqueness key admits at most one row per status: moving a
// reservation to cancelled collides when an earlier reservation for the
// same slot was already cancelled.  That collision maps to
// booking.ErrConflict so callers can answer with a deliberate status
// instead of a generic failure.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.ReservationStatus) error {
    _, err := tx.ExecContext(ctx,
        "UPDATE reservations SET status=? WHERE id=?", status, id)
    if err != nil && isDuplicate(err, "") {
        return booking.ErrConflict
    }
    return err
}

// GetByIDForUser returns a single reservation, enforcing ownership.  A
// missing id maps to booking.ErrReservationNotFound; someone else's
// reservation maps to booking.ErrForbidden.
func (r *ReservationRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (model.Reservation, error) {
    const q = "SELECT " + reservationColumns + " FROM reservations WHERE id=?"
    res, err := scanReservation(r.DB.QueryRowContext(ctx, q, id))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Reservation{}, booking.ErrReservationNotFound
    }
    if err != nil {
        return model.Reservation{}, err
    }
    if res.UserID != userID {
        return model.Reservation{}, booking.ErrForbidden
    }
    return res, nil
}

// ListByUser returns one page of the user's reservations (any status),
// ordered most recent slot first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]model.Reservation, error) {
    const q = "SELECT " + reservationColumns + ` FROM reservations
               WHERE user_id=?
               ORDER BY reservation_date DESC, reservation_time DESC, id DESC
               LIMIT ? OFFSET ?`
    rows, err := r.DB.QueryContext(ctx, q, userID, limit, offset)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Reservation, 0)
    for rows.Next() {
        var res model.Reservation
        if err := rows.Scan(&res.ID, &res.UserID, &res.TableID, &res.SeatsReserved, &res.TotalCostCents,
            &res.Status, &res.Date, &res.Time, &res.CreatedAt, &res.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    return out, rows.Err()
}

// CountByUser returns how many reservations the user owns in total.
func (r *ReservationRepo) CountByUser(ctx context.Context, userID uint64) (int, error) {
    var n int
    err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM reservations WHERE user_id=?", userID).Scan(&n)
    return n, err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanReservation(row rowScanner) (model.Reservation, error) {
    var res model.Reservation
    err := row.Scan(&res.ID, &res.UserID, &res.TableID, &res.SeatsReserved, &res.TotalCostCents,
        &res.Status, &res.Date, &res.Time, &res.CreatedAt, &res.UpdatedAt)
    return res, err
}
