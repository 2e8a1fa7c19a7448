package booking

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/allocation"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
)

// fakeStore is an in-memory Store.  It is not safe for concurrent use;
// the tests drive it sequentially.
type fakeStore struct {
	tables       map[uint64]*model.Table
	reservations map[uint64]*model.Reservation
	nextID       uint64

	// conflictOnCreate makes the next N CreateReservation calls fail
	// with ErrConflict, mimicking a concurrent writer winning the slot.
	conflictOnCreate int
}

func newFakeStore(tables ...model.Table) *fakeStore {
	s := &fakeStore{
		tables:       make(map[uint64]*model.Table),
		reservations: make(map[uint64]*model.Reservation),
		nextID:       1,
	}
	for i := range tables {
		t := tables[i]
		s.tables[t.ID] = &t
	}
	return s
}

func (s *fakeStore) InTx(ctx context.Context, fn func(tx StoreTx) error) error {
	// The fake applies writes directly; rollback fidelity is not needed
	// because the service never continues after a failed step.
	return fn(&fakeTx{s: s})
}

func (s *fakeStore) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]model.Reservation, error) {
	var all []model.Reservation
	for _, r := range s.reservations {
		if r.UserID == userID {
			all = append(all, *r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeStore) CountByUser(ctx context.Context, userID uint64) (int, error) {
	n := 0
	for _, r := range s.reservations {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) GetByIDForUser(ctx context.Context, reservationID, userID uint64) (model.Reservation, error) {
	r, ok := s.reservations[reservationID]
	if !ok {
		return model.Reservation{}, ErrReservationNotFound
	}
	if r.UserID != userID {
		return model.Reservation{}, ErrForbidden
	}
	return *r, nil
}

type fakeTx struct{ s *fakeStore }

func (t *fakeTx) AvailableTables(ctx context.Context) ([]model.Table, error) {
	var out []model.Table
	for _, tab := range t.s.tables {
		if tab.IsAvailable {
			out = append(out, *tab)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableNumber < out[j].TableNumber })
	return out, nil
}

func (t *fakeTx) CreateReservation(ctx context.Context, r *model.Reservation) error {
	if t.s.conflictOnCreate > 0 {
		t.s.conflictOnCreate--
		return ErrConflict
	}
	r.ID = t.s.nextID
	t.s.nextID++
	cp := *r
	t.s.reservations[r.ID] = &cp
	return nil
}

func (t *fakeTx) SetTableAvailability(ctx context.Context, tableID uint64, available bool) error {
	tab, ok := t.s.tables[tableID]
	if !ok {
		return ErrTableNotFound
	}
	tab.IsAvailable = available
	return nil
}

func (t *fakeTx) ReservationForUpdate(ctx context.Context, id uint64) (model.Reservation, error) {
	r, ok := t.s.reservations[id]
	if !ok {
		return model.Reservation{}, ErrReservationNotFound
	}
	return *r, nil
}

func (t *fakeTx) UpdateReservationStatus(ctx context.Context, id uint64, status model.ReservationStatus) error {
	r, ok := t.s.reservations[id]
	if !ok {
		return ErrReservationNotFound
	}
	r.Status = status
	return nil
}

var (
	_ Store   = (*fakeStore)(nil)
	_ StoreTx = (*fakeTx)(nil)
)

// recordingPublisher captures published events.
type recordingPublisher struct {
	confirmed []queue.ReservationConfirmedEvent
	cancelled []queue.ReservationCancelledEvent
}

func (p *recordingPublisher) PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error {
	p.confirmed = append(p.confirmed, ev)
	return nil
}

func (p *recordingPublisher) PublishReservationCancelled(ctx context.Context, ev queue.ReservationCancelledEvent) error {
	p.cancelled = append(p.cancelled, ev)
	return nil
}

func defaultInventory() []model.Table {
	return []model.Table{
		{ID: 1, TableNumber: 1, Seats: 4, PricePerSeatCents: 1000, IsAvailable: true},
		{ID: 2, TableNumber: 2, Seats: 6, PricePerSeatCents: 1200, IsAvailable: true},
		{ID: 3, TableNumber: 3, Seats: 8, PricePerSeatCents: 1500, IsAvailable: true},
	}
}

func TestBookAllocatesCheapestTable(t *testing.T) {
	store := newFakeStore(defaultInventory()...)
	pub := &recordingPublisher{}
	svc := NewService(store, pub)

	res, err := svc.Book(context.Background(), 7, BookTableInput{
		PeopleCount: 4,
		Date:        "2026-09-01",
		Time:        "19:00",
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), res.TableNumber)
	assert.Equal(t, uint32(4), res.SeatsReserved)
	// Full table booking is charged for seats-1.
	assert.Equal(t, uint32(3000), res.TotalCostCents)
	assert.Equal(t, "19:00:00", res.Time)

	// The winning table is no longer available.
	assert.False(t, store.tables[1].IsAvailable)
	assert.True(t, store.tables[2].IsAvailable)

	// The reservation is confirmed immediately, never pending.
	stored := store.reservations[res.ReservationID]
	require.NotNil(t, stored)
	assert.Equal(t, model.StatusConfirmed, stored.Status)

	require.Len(t, pub.confirmed, 1)
	assert.Equal(t, res.ReservationID, pub.confirmed[0].ReservationID)
	assert.Equal(t, uint64(7), pub.confirmed[0].UserID)
}

func TestBookRoundsOddPartyUp(t *testing.T) {
	store := newFakeStore(defaultInventory()...)
	svc := NewService(store, nil)

	// 5 people round up to 6 seats; table 1 (4 seats) cannot host them.
	res, err := svc.Book(context.Background(), 1, BookTableInput{
		PeopleCount: 5,
		Date:        "2026-09-01",
		Time:        "20:00",
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), res.TableNumber)
	assert.Equal(t, uint32(6), res.SeatsReserved)
}

func TestBookRejectsInvalidInput(t *testing.T) {
	svc := NewService(newFakeStore(defaultInventory()...), nil)

	_, err := svc.Book(context.Background(), 1, BookTableInput{PeopleCount: 0, Date: "2026-09-01", Time: "19:00"})
	assert.ErrorIs(t, err, allocation.ErrInvalidPeopleCount)

	_, err = svc.Book(context.Background(), 1, BookTableInput{PeopleCount: 2, Date: "tomorrow", Time: "19:00"})
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = svc.Book(context.Background(), 1, BookTableInput{PeopleCount: 2, Date: "2026-09-01", Time: "7pm"})
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestBookNoTableAvailable(t *testing.T) {
	store := newFakeStore(defaultInventory()...)
	svc := NewService(store, nil)

	_, err := svc.Book(context.Background(), 1, BookTableInput{
		PeopleCount: 12,
		Date:        "2026-09-01",
		Time:        "19:00",
	})
	assert.ErrorIs(t, err, ErrNoTableAvailable)
	// Nothing changed.
	for _, tab := range store.tables {
		assert.True(t, tab.IsAvailable)
	}
	assert.Empty(t, store.reservations)
}

func TestBookRetriesOnceOnConflict(t *testing.T) {
	store := newFakeStore(defaultInventory()...)
	store.conflictOnCreate = 1
	svc := NewService(store, nil)

	res, err := svc.Book(context.Background(), 1, BookTableInput{
		PeopleCount: 2,
		Date:        "2026-09-01",
		Time:        "19:00",
	})
	require.NoError(t, err)
	assert.NotZero(t, res.ReservationID)
}

func TestBookSurfacesRepeatedConflict(t *testing.T) {
	store := newFakeStore(defaultInventory()...)
	store.conflictOnCreate = 2
	svc := NewService(store, nil)

	_, err := svc.Book(context.Background(), 1, BookTableInput{
		PeopleCount: 2,
		Date:        "2026-09-01",
		Time:        "19:00",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCancelReleasesTable(t *testing.T) {
	store := newFakeStore(defaultInventory()...)
	pub := &recordingPublisher{}
	svc := NewService(store, pub)

	res, err := svc.Book(context.Background(), 7, BookTableInput{
		PeopleCount: 4, Date: "2026-09-01", Time: "19:00",
	})
	require.NoError(t, err)
	require.False(t, store.tables[1].IsAvailable)

	require.NoError(t, svc.Cancel(context.Background(), res.ReservationID, 7))
	assert.True(t, store.tables[1].IsAvailable)
	assert.Equal(t, model.StatusCancelled, store.reservations[res.ReservationID].Status)
	require.Len(t, pub.cancelled, 1)
	assert.Equal(t, res.ReservationID, pub.cancelled[0].ReservationID)
}

func TestCancelTwiceIsSignalled(t *testing.T) {
	store := newFakeStore(defaultInventory()...)
	svc := NewService(store, nil)

	res, err := svc.Book(context.Background(), 7, BookTableInput{
		PeopleCount: 4, Date: "2026-09-01", Time: "19:00",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(context.Background(), res.ReservationID, 7))

	err = svc.Cancel(context.Background(), res.ReservationID, 7)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	// Still cancelled, table still free.
	assert.Equal(t, model.StatusCancelled, store.reservations[res.ReservationID].Status)
	assert.True(t, store.tables[1].IsAvailable)
}

func TestCancelEnforcesOwnership(t *testing.T) {
	store := newFakeStore(defaultInventory()...)
	svc := NewService(store, nil)

	res, err := svc.Book(context.Background(), 7, BookTableInput{
		PeopleCount: 4, Date: "2026-09-01", Time: "19:00",
	})
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), res.ReservationID, 8)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, model.StatusConfirmed, store.reservations[res.ReservationID].Status)

	err = svc.Cancel(context.Background(), 9999, 7)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelThenRebookSameSlot(t *testing.T) {
	store := newFakeStore(defaultInventory()...)
	svc := NewService(store, nil)

	first, err := svc.Book(context.Background(), 7, BookTableInput{
		PeopleCount: 4, Date: "2026-09-01", Time: "19:00",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(context.Background(), first.ReservationID, 7))

	// The released table can be rebooked for the very same slot; the
	// cancelled row does not block it.
	second, err := svc.Book(context.Background(), 9, BookTableInput{
		PeopleCount: 4, Date: "2026-09-01", Time: "19:00",
	})
	require.NoError(t, err)
	assert.Equal(t, first.TableNumber, second.TableNumber)
	assert.NotEqual(t, first.ReservationID, second.ReservationID)
}

func TestListReservationsPaginates(t *testing.T) {
	store := newFakeStore(
		model.Table{ID: 1, TableNumber: 1, Seats: 10, PricePerSeatCents: 1000, IsAvailable: true},
	)
	svc := NewService(store, nil)

	// Seed reservations directly; booking would exhaust the single table.
	for i := 0; i < 25; i++ {
		id := store.nextID
		store.nextID++
		store.reservations[id] = &model.Reservation{
			ID: id, UserID: 7, TableID: 1, Status: model.StatusConfirmed,
			Date: "2026-09-01", Time: "19:00:00",
		}
	}

	page, err := svc.ListReservations(context.Background(), 7, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 25, page.Count)
	assert.Equal(t, defaultPageSize, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Reservations, 10)

	last, err := svc.ListReservations(context.Background(), 7, 3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Reservations, 5)

	// Oversized page sizes clamp to the maximum.
	huge, err := svc.ListReservations(context.Background(), 7, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, huge.PageSize)

	// A stranger sees nothing.
	other, err := svc.ListReservations(context.Background(), 8, 1, 0)
	require.NoError(t, err)
	assert.Zero(t, other.Count)
	assert.Empty(t, other.Reservations)
}

func TestGetReservation(t *testing.T) {
	store := newFakeStore(defaultInventory()...)
	svc := NewService(store, nil)

	res, err := svc.Book(context.Background(), 7, BookTableInput{
		PeopleCount: 4, Date: "2026-09-01", Time: "19:00",
	})
	require.NoError(t, err)

	got, err := svc.GetReservation(context.Background(), res.ReservationID, 7)
	require.NoError(t, err)
	assert.Equal(t, res.ReservationID, got.ID)

	_, err = svc.GetReservation(context.Background(), res.ReservationID, 8)
	assert.ErrorIs(t, err, ErrForbidden)
}
