package booking

import (
    "context"
    "errors"
    "log"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/allocation"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
    "github.com/iliyamo/restaurant-table-reservation/internal/queue"
)

// UseCase is the inbound surface consumed by the HTTP layer.  Handlers
// depend on this interface so tests can substitute a mock service.
type UseCase interface {
    Book(ctx context.Context, userID uint64, in BookTableInput) (*BookingResult, error)
    Cancel(ctx context.Context, reservationID, userID uint64) error
    ListReservations(ctx context.Context, userID uint64, page, pageSize int) (*ReservationPage, error)
    GetReservation(ctx context.Context, reservationID, userID uint64) (model.Reservation, error)
}

// Publisher emits reservation lifecycle events to the message broker.
// Publishing is best-effort: failures are logged, never surfaced to the
// caller.  A nil Publisher disables events entirely.
type Publisher interface {
    PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error
    PublishReservationCancelled(ctx context.Context, ev queue.ReservationCancelledEvent) error
}

// BookTableInput carries a validated booking request into the service.
type BookTableInput struct {
    PeopleCount int
    Date        string // "2006-01-02"
    Time        string // "15:04" or "15:04:05"
}

// BookingResult is returned to the caller on a successful booking.
type BookingResult struct {
    ReservationID  uint64 `json:"reservation_id"`
    TableNumber    uint32 `json:"table_number"`
    SeatsReserved  uint32 `json:"seats_reserved"`
    TotalCostCents uint32 `json:"total_cost_cents"`
    Date           string `json:"reservation_date"`
    Time           string `json:"reservation_time"`

    tableID uint64 // internal, for event payloads
}

// ReservationPage is a page of a user's reservations together with
// pagination metadata.
type ReservationPage struct {
    Count        int                 `json:"count"`
    TotalPages   int                 `json:"total_pages"`
    Page         int                 `json:"page"`
    PageSize     int                 `json:"page_size"`
    Reservations []model.Reservation `json:"results"`
}

const (
    defaultPageSize = 10
    maxPageSize     = 100
)

// Service implements UseCase over a Store.
type Service struct {
    store     Store
    publisher Publisher
}

// NewService constructs the booking service.  publisher may be nil.
func NewService(store Store, publisher Publisher) *Service {
    if store == nil {
        panic("nil store passed to booking.NewService")
    }
    return &Service{store: store, publisher: publisher}
}

// Book allocates the optimal table for the party and records a confirmed
// reservation, marking the table unavailable, all within one
// transaction.  A concurrent writer losing the slot race triggers one
// full re-allocation before the conflict is surfaced.
func (s *Service) Book(ctx context.Context, userID uint64, in BookTableInput) (*BookingResult, error) {
    if in.PeopleCount <= 0 {
        return nil, allocation.ErrInvalidPeopleCount
    }
    date, timeOfDay, err := normalizeSlot(in.Date, in.Time)
    if err != nil {
        return nil, err
    }

    res, err := s.bookOnce(ctx, userID, in.PeopleCount, date, timeOfDay)
    if errors.Is(err, ErrConflict) {
        // Another booking took the table between our read and write.
        // Retry the whole read-allocate-write sequence once; the losing
        // table may be gone but a different one may still qualify.
        res, err = s.bookOnce(ctx, userID, in.PeopleCount, date, timeOfDay)
    }
    if err != nil {
        return nil, err
    }

    if s.publisher != nil {
        ev := queue.ReservationConfirmedEvent{
            ReservationID:  res.ReservationID,
            UserID:         userID,
            TableID:        res.tableID,
            TableNumber:    res.TableNumber,
            SeatsReserved:  res.SeatsReserved,
            TotalCostCents: res.TotalCostCents,
            Date:           res.Date,
            Time:           res.Time,
            ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
        }
        if err := s.publisher.PublishReservationConfirmed(ctx, ev); err != nil {
            log.Printf("booking: publish reservation.confirmed failed: %v", err)
        }
    }
    return res, nil
}

func (s *Service) bookOnce(ctx context.Context, userID uint64, peopleCount int, date, timeOfDay string) (*BookingResult, error) {
    var res *BookingResult
    err := s.store.InTx(ctx, func(tx StoreTx) error {
        tables, err := tx.AvailableTables(ctx)
        if err != nil {
            return err
        }
        opt, err := allocation.FindOptimalTable(tables, peopleCount)
        if err != nil {
            return err
        }
        if opt == nil {
            return ErrNoTableAvailable
        }

        r := &model.Reservation{
            UserID:         userID,
            TableID:        opt.Table.ID,
            SeatsReserved:  opt.SeatsAllocated,
            TotalCostCents: opt.PriceCents,
            Status:         model.StatusConfirmed,
            Date:           date,
            Time:           timeOfDay,
        }
        if err := tx.CreateReservation(ctx, r); err != nil {
            return err
        }
        if err := tx.SetTableAvailability(ctx, opt.Table.ID, false); err != nil {
            return err
        }

        res = &BookingResult{
            ReservationID:  r.ID,
            TableNumber:    opt.Table.TableNumber,
            SeatsReserved:  opt.SeatsAllocated,
            TotalCostCents: opt.PriceCents,
            Date:           date,
            Time:           timeOfDay,
            tableID:        opt.Table.ID,
        }
        return nil
    })
    if err != nil {
        return nil, err
    }
    return res, nil
}

// Cancel transitions a reservation to cancelled and releases its table.
// Both writes share one transaction.  Cancelling an already-cancelled
// reservation returns ErrAlreadyCancelled and changes nothing.
func (s *Service) Cancel(ctx context.Context, reservationID, userID uint64) error {
    var cancelled model.Reservation
    err := s.store.InTx(ctx, func(tx StoreTx) error {
        r, err := tx.ReservationForUpdate(ctx, reservationID)
        if err != nil {
            return err
        }
        if r.UserID != userID {
            return ErrForbidden
        }
        if r.IsCancelled() {
            return ErrAlreadyCancelled
        }
        if err := tx.UpdateReservationStatus(ctx, r.ID, model.StatusCancelled); err != nil {
            return err
        }
        if err := tx.SetTableAvailability(ctx, r.TableID, true); err != nil {
            return err
        }
        cancelled = r
        return nil
    })
    if err != nil {
        return err
    }

    if s.publisher != nil {
        ev := queue.ReservationCancelledEvent{
            ReservationID: cancelled.ID,
            UserID:        cancelled.UserID,
            TableID:       cancelled.TableID,
            Date:          cancelled.Date,
            Time:          cancelled.Time,
            CancelledAt:   time.Now().UTC().Format(time.RFC3339),
        }
        if err := s.publisher.PublishReservationCancelled(ctx, ev); err != nil {
            log.Printf("booking: publish reservation.cancelled failed: %v", err)
        }
    }
    return nil
}

// ListReservations returns one page of the user's reservations, newest
// slot first, with count metadata.
func (s *Service) ListReservations(ctx context.Context, userID uint64, page, pageSize int) (*ReservationPage, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = defaultPageSize
    }
    if pageSize > maxPageSize {
        pageSize = maxPageSize
    }

    count, err := s.store.CountByUser(ctx, userID)
    if err != nil {
        return nil, err
    }
    items, err := s.store.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
    if err != nil {
        return nil, err
    }

    totalPages := count / pageSize
    if count%pageSize != 0 {
        totalPages++
    }
    return &ReservationPage{
        Count:        count,
        TotalPages:   totalPages,
        Page:         page,
        PageSize:     pageSize,
        Reservations: items,
    }, nil
}

// GetReservation loads a single reservation owned by the user.
func (s *Service) GetReservation(ctx context.Context, reservationID, userID uint64) (model.Reservation, error) {
    return s.store.GetByIDForUser(ctx, reservationID, userID)
}

// normalizeSlot validates the date and time strings and normalizes the
// time to the DB's "15:04:05" form.
func normalizeSlot(date, timeOfDay string) (string, string, error) {
    if _, err := time.Parse("2006-01-02", date); err != nil {
        return "", "", ErrInvalidSlot
    }
    if t, err := time.Parse("15:04", timeOfDay); err == nil {
        return date, t.Format("15:04:05"), nil
    }
    if t, err := time.Parse("15:04:05", timeOfDay); err == nil {
        return date, t.Format("15:04:05"), nil
    }
    return "", "", ErrInvalidSlot
}

var _ UseCase = (*Service)(nil)
