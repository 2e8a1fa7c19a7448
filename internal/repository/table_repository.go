package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

const tableColumns = "id,table_number,seats,price_per_seat_cents,is_available,created_at,updated_at"

// TableRepo is the source of truth for the restaurant's table
// inventory.  Capacity and price are immutable after creation; only the
// availability flag changes, and only through the booking lifecycle.
type TableRepo struct{ DB *sql.DB }

func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{DB: db} }

// Create inserts a new table.  The table number must be unique;
// violations are reported as ErrTableNumberExists.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO restaurant_tables (table_number, seats, price_per_seat_cents, is_available) VALUES (?,?,?,?)",
        t.TableNumber, t.Seats, t.PricePerSeatCents, t.IsAvailable)
    if err != nil {
        if isDuplicate(err, "") {
            return ErrTableNumberExists
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    t.ID = uint64(id)
    return nil
}

// List returns the full inventory ordered by table number, including
// unavailable tables.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
    return r.list(ctx, "SELECT "+tableColumns+" FROM restaurant_tables ORDER BY table_number")
}

// ListAvailable returns the currently bookable tables ordered by table
// number.  Deterministic ordering keeps allocation ties reproducible.
func (r *TableRepo) ListAvailable(ctx context.Context) ([]model.Table, error) {
    return r.list(ctx, "SELECT "+tableColumns+" FROM restaurant_tables WHERE is_available=1 ORDER BY table_number")
}

func (r *TableRepo) list(ctx context.Context, query string) ([]model.Table, error) {
    rows, err := r.DB.QueryContext(ctx, query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    tables := make([]model.Table, 0)
    for rows.Next() {
        var t model.Table
        if err := rows.Scan(&t.ID, &t.TableNumber, &t.Seats, &t.PricePerSeatCents, &t.IsAvailable, &t.CreatedAt, &t.UpdatedAt); err != nil {
            return nil, err
        }
        tables = append(tables, t)
    }
    return tables, rows.Err()
}

// ListAvailableForUpdateTx returns available tables with their rows
// locked for the duration of the transaction.  The lock serializes
// concurrent bookings around the read-allocate-write sequence: a second
// booking blocks here until the first commits and then sees the table
// already taken.
func (r *TableRepo) ListAvailableForUpdateTx(ctx context.Context, tx *sql.Tx) ([]model.Table, error) {
    const q = "SELECT " + tableColumns + " FROM restaurant_tables WHERE is_available=1 ORDER BY table_number FOR UPDATE"
    rows, err := tx.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    tables := make([]model.Table, 0)
    for rows.Next() {
        var t model.Table
        if err := rows.Scan(&t.ID, &t.TableNumber, &t.Seats, &t.PricePerSeatCents, &t.IsAvailable, &t.CreatedAt, &t.UpdatedAt); err != nil {
            return nil, err
        }
        tables = append(tables, t)
    }
    return tables, rows.Err()
}

// SetAvailabilityTx flips a table's availability flag inside an open
// transaction.  A missing table id is an error, never a silent no-op:
// RowsAffected alone cannot distinguish "missing" from "already in the
// requested state", so existence is checked explicitly when no row
// changed.
func (r *TableRepo) SetAvailabilityTx(ctx context.Context, tx *sql.Tx, tableID uint64, available bool) error {
    res, err := tx.ExecContext(ctx,
        "UPDATE restaurant_tables SET is_available=? WHERE id=?", available, tableID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        var exists bool
        if err := tx.QueryRowContext(ctx,
            "SELECT EXISTS(SELECT 1 FROM restaurant_tables WHERE id=?)", tableID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return booking.ErrTableNotFound
        }
    }
    return nil
}

// SeedDefault inserts the fixed ten-table inventory when it is not
// already present.  INSERT IGNORE makes the seed idempotent across
// restarts.
func (r *TableRepo) SeedDefault(ctx context.Context) error {
    seed := []model.Table{
        {TableNumber: 1, Seats: 4, PricePerSeatCents: 1000},
        {TableNumber: 2, Seats: 4, PricePerSeatCents: 1000},
        {TableNumber: 3, Seats: 5, PricePerSeatCents: 1200},
        {TableNumber: 4, Seats: 6, PricePerSeatCents: 1200},
        {TableNumber: 5, Seats: 7, PricePerSeatCents: 1200},
        {TableNumber: 6, Seats: 8, PricePerSeatCents: 1500},
        {TableNumber: 7, Seats: 8, PricePerSeatCents: 1500},
        {TableNumber: 8, Seats: 8, PricePerSeatCents: 1500},
        {TableNumber: 9, Seats: 9, PricePerSeatCents: 1800},
        {TableNumber: 10, Seats: 10, PricePerSeatCents: 1800},
    }
    query := "INSERT IGNORE INTO restaurant_tables (table_number, seats, price_per_seat_cents, is_available) VALUES "
    args := make([]any, 0, len(seed)*4)
    for i, t := range seed {
        if i > 0 {
            query += ","
        }
        query += "(?,?,?,1)"
        args = append(args, t.TableNumber, t.Seats, t.PricePerSeatCents)
    }
    _, err := r.DB.ExecContext(ctx, query, args...)
    return err
}
