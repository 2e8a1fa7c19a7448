package model

import "time"

// ReservationStatus enumerates the lifecycle states of a reservation.
type ReservationStatus string

const (
    // StatusPending exists as a schema provision only; the booking flow
    // writes confirmed directly and nothing transitions through pending.
    StatusPending   ReservationStatus = "pending"
    StatusConfirmed ReservationStatus = "confirmed"
    StatusCancelled ReservationStatus = "cancelled"
)

// Reservation records a user's booking of a table for a specific
// date/time slot.  TotalCostCents is computed once by the allocation
// engine at creation time and frozen thereafter.  SeatsReserved may
// exceed the requested party size because of the odd/even rounding
// rule.
//
// Date and Time are stored as the DB's DATE ("2006-01-02") and TIME
// ("15:04:05") string forms; together they identify the slot.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – user who made the reservation.
//  TableID        – table allocated for the slot.
//  SeatsReserved  – seats actually allocated.
//  TotalCostCents – frozen total price in cents.
//  Status         – state of the reservation (pending, confirmed, cancelled).
//  Date           – reservation date.
//  Time           – reservation time.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Reservation struct {
    ID             uint64            `json:"id"`               // reservations.id
    UserID         uint64            `json:"user_id"`          // reservations.user_id
    TableID        uint64            `json:"table_id"`         // reservations.table_id
    SeatsReserved  uint32            `json:"seats_reserved"`   // reservations.seats_reserved
    TotalCostCents uint32            `json:"total_cost_cents"` // reservations.total_cost_cents
    Status         ReservationStatus `json:"status"`           // reservations.status
    Date           string            `json:"reservation_date"` // reservations.reservation_date
    Time           string            `json:"reservation_time"` // reservations.reservation_time
    CreatedAt      time.Time         `json:"created_at"`       // reservations.created_at
    UpdatedAt      time.Time         `json:"updated_at"`       // reservations.updated_at
}

// IsCancelled reports whether the reservation reached its terminal state.
func (r Reservation) IsCancelled() bool { return r.Status == StatusCancelled }
