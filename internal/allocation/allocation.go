// Package allocation implements the table selection algorithm.  It is a
// pure decision layer: callers hand it a snapshot of currently available
// tables and a party size, and it picks the table and seat count that
// minimise cost.  All persistence and locking concerns stay with the
// caller.
package allocation

import (
    "errors"
    "sort"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ErrInvalidPeopleCount is returned when the requested party size is not
// a positive integer.  Handlers validate input before calling the engine,
// so hitting this error indicates a caller bug rather than bad user input.
var ErrInvalidPeopleCount = errors.New("people count must be a positive integer")

// Option is the engine's answer: the chosen table, the number of seats
// actually allocated (which may exceed the requested party size) and the
// total price in cents.
type Option struct {
    Table          model.Table
    SeatsAllocated uint32
    PriceCents     uint32
}

// Price computes the cost of booking seatsRequested seats at a table.
// Booking out the entire table earns a one-seat discount: the price is
// pricePerSeat*(seats-1).  Any partial booking is charged per seat.
// Prices are integer cents, so the arithmetic is exact.
func Price(t model.Table, seatsRequested uint32) uint32 {
    if seatsRequested == t.Seats {
        return t.PricePerSeatCents * (t.Seats - 1)
    }
    return t.PricePerSeatCents * seatsRequested
}

// FindOptimalTable selects the cheapest suitable table for a party.
//
// Rules:
//  1. An odd party size first looks for a table whose capacity matches
//     exactly; such a match always wins, regardless of price.
//  2. Otherwise an odd count is rounded up to the next even number.
//  3. Among tables with enough seats, the cheapest wins; on a price tie
//     the lowest table number wins (candidates are scanned in ascending
//     table-number order and a candidate only replaces the current best
//     when strictly cheaper).
//
// A nil Option with a nil error means no available table can host the
// party; that is an expected outcome, not a failure.
func FindOptimalTable(available []model.Table, peopleCount int) (*Option, error) {
    if peopleCount <= 0 {
        return nil, ErrInvalidPeopleCount
    }
    if len(available) == 0 {
        return nil, nil
    }

    // A party larger than the largest table cannot be seated.  Checking
    // in int space also keeps the uint32 conversion below from wrapping
    // on absurd counts.
    maxSeats := 0
    for _, t := range available {
        if int(t.Seats) > maxSeats {
            maxSeats = int(t.Seats)
        }
    }
    if peopleCount > maxSeats {
        return nil, nil
    }

    // Work on a sorted copy so ties resolve deterministically no matter
    // how the caller ordered the snapshot.
    tables := make([]model.Table, len(available))
    copy(tables, available)
    sort.Slice(tables, func(i, j int) bool { return tables[i].TableNumber < tables[j].TableNumber })

    count := uint32(peopleCount)
    if count%2 != 0 {
        for _, t := range tables {
            if t.Seats == count {
                return &Option{Table: t, SeatsAllocated: count, PriceCents: Price(t, count)}, nil
            }
        }
        count++ // round up to the next even number
    }

    var best *Option
    for _, t := range tables {
        if t.Seats < count {
            continue
        }
        price := Price(t, count)
        if best == nil || price < best.PriceCents {
            best = &Option{Table: t, SeatsAllocated: count, PriceCents: price}
        }
    }
    return best, nil
}
