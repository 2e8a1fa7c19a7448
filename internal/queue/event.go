// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used for reservation lifecycle events.
const (
    ReservationConfirmedQueue = "reservation.confirmed"
    ReservationCancelledQueue = "reservation.cancelled"
)

// ReservationConfirmedEvent is published when a booking succeeds.  It
// carries enough information for downstream consumers to log, notify, or
// feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
    ReservationID  uint64 `json:"reservation_id"`
    UserID         uint64 `json:"user_id"`
    TableID        uint64 `json:"table_id"`
    TableNumber    uint32 `json:"table_number"`
    SeatsReserved  uint32 `json:"seats_reserved"`
    TotalCostCents uint32 `json:"total_cost_cents"`
    Date           string `json:"reservation_date"`
    Time           string `json:"reservation_time"`
    ConfirmedAt    string `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when a reservation is cancelled
// and its table released back into the inventory.
type ReservationCancelledEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    UserID        uint64 `json:"user_id"`
    TableID       uint64 `json:"table_id"`
    Date          string `json:"reservation_date"`
    Time          string `json:"reservation_time"`
    CancelledAt   string `json:"cancelled_at"`
}
