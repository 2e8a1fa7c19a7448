package model

import (
    "math"
    "time"
)

// Table describes a physical restaurant table.  Tables form a fixed
// inventory created at seed time; their capacity and price never
// change in normal operation, only the availability flag flips as
// reservations are created and cancelled.
//
// Fields:
//  ID                – primary key identifier.
//  TableNumber       – human-facing table number, unique, 1..10.
//  Seats             – seat capacity, 4..10.
//  PricePerSeatCents – price per seat in cents.
//  IsAvailable       – whether the table can currently be booked.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Table struct {
    ID                uint64    `json:"id"`                   // restaurant_tables.id
    TableNumber       uint32    `json:"table_number"`         // restaurant_tables.table_number
    Seats             uint32    `json:"seats"`                // restaurant_tables.seats
    PricePerSeatCents uint32    `json:"price_per_seat_cents"` // restaurant_tables.price_per_seat_cents
    IsAvailable       bool      `json:"is_available"`         // restaurant_tables.is_available
    CreatedAt         time.Time `json:"created_at"`           // restaurant_tables.created_at
    UpdatedAt         time.Time `json:"updated_at"`           // restaurant_tables.updated_at
}

// Bounds enforced on table creation: at most ten numbered tables
// seating between four and ten.
const (
    MinTableNumber = 1
    MaxTableNumber = 10
    MinSeats       = 4
    MaxSeats       = 10

    // MaxPricePerSeatCents keeps price*seats within uint32 for any
    // legal seat count, so total prices never overflow.
    MaxPricePerSeatCents = math.MaxUint32 / MaxSeats
)
