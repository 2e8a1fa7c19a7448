package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// stubUseCase lets each test script the service outcome.
type stubUseCase struct {
	bookFn   func(ctx context.Context, userID uint64, in booking.BookTableInput) (*booking.BookingResult, error)
	cancelFn func(ctx context.Context, reservationID, userID uint64) error
	listFn   func(ctx context.Context, userID uint64, page, pageSize int) (*booking.ReservationPage, error)
	getFn    func(ctx context.Context, reservationID, userID uint64) (model.Reservation, error)
}

func (s *stubUseCase) Book(ctx context.Context, userID uint64, in booking.BookTableInput) (*booking.BookingResult, error) {
	return s.bookFn(ctx, userID, in)
}
func (s *stubUseCase) Cancel(ctx context.Context, reservationID, userID uint64) error {
	return s.cancelFn(ctx, reservationID, userID)
}
func (s *stubUseCase) ListReservations(ctx context.Context, userID uint64, page, pageSize int) (*booking.ReservationPage, error) {
	return s.listFn(ctx, userID, page, pageSize)
}
func (s *stubUseCase) GetReservation(ctx context.Context, reservationID, userID uint64) (model.Reservation, error) {
	return s.getFn(ctx, reservationID, userID)
}

var _ booking.UseCase = (*stubUseCase)(nil)

func newBookingContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	// JWT numeric claims arrive as float64.
	c.Set("user_id", float64(7))
	c.Set("role", "CUSTOMER")
	return c, rec
}

func TestBookHandlerSuccess(t *testing.T) {
	var gotUser uint64
	var gotInput booking.BookTableInput
	h := NewBookingHandler(&stubUseCase{
		bookFn: func(ctx context.Context, userID uint64, in booking.BookTableInput) (*booking.BookingResult, error) {
			gotUser = userID
			gotInput = in
			return &booking.BookingResult{
				ReservationID: 42, TableNumber: 2, SeatsReserved: 6,
				TotalCostCents: 7200, Date: in.Date, Time: "19:00:00",
			}, nil
		},
	})

	c, rec := newBookingContext(t, http.MethodPost, "/v1/bookings",
		`{"people_count":5,"reservation_date":"2026-09-01","reservation_time":"19:00"}`)
	require.NoError(t, h.Book(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint64(7), gotUser)
	assert.Equal(t, 5, gotInput.PeopleCount)
	assert.Contains(t, rec.Body.String(), `"reservation_id":42`)
	assert.Contains(t, rec.Body.String(), `"total_cost_cents":7200`)
}

func TestBookHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid slot", booking.ErrInvalidSlot, http.StatusBadRequest},
		{"no table", booking.ErrNoTableAvailable, http.StatusConflict},
		{"conflict", booking.ErrConflict, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewBookingHandler(&stubUseCase{
				bookFn: func(ctx context.Context, userID uint64, in booking.BookTableInput) (*booking.BookingResult, error) {
					return nil, tc.err
				},
			})
			c, rec := newBookingContext(t, http.MethodPost, "/v1/bookings",
				`{"people_count":2,"reservation_date":"2026-09-01","reservation_time":"19:00"}`)
			require.NoError(t, h.Book(c))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestBookHandlerRejectsMissingIdentity(t *testing.T) {
	h := NewBookingHandler(&stubUseCase{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"ok", nil, http.StatusOK},
		{"not found", booking.ErrReservationNotFound, http.StatusNotFound},
		{"forbidden", booking.ErrForbidden, http.StatusForbidden},
		{"already cancelled", booking.ErrAlreadyCancelled, http.StatusConflict},
		{"cancelled slot occupied", booking.ErrConflict, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewBookingHandler(&stubUseCase{
				cancelFn: func(ctx context.Context, reservationID, userID uint64) error {
					assert.Equal(t, uint64(42), reservationID)
					assert.Equal(t, uint64(7), userID)
					return tc.err
				},
			})
			c, rec := newBookingContext(t, http.MethodDelete, "/v1/reservations/42", "")
			c.SetParamNames("id")
			c.SetParamValues("42")
			require.NoError(t, h.Cancel(c))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestCancelHandlerRejectsBadID(t *testing.T) {
	h := NewBookingHandler(&stubUseCase{})
	c, rec := newBookingContext(t, http.MethodDelete, "/v1/reservations/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListHandlerPassesPagination(t *testing.T) {
	h := NewBookingHandler(&stubUseCase{
		listFn: func(ctx context.Context, userID uint64, page, pageSize int) (*booking.ReservationPage, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, 5, pageSize)
			return &booking.ReservationPage{Count: 11, TotalPages: 3, Page: page, PageSize: pageSize}, nil
		},
	})
	c, rec := newBookingContext(t, http.MethodGet, "/v1/my-reservations?page=2&page_size=5", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":11`)
}

func TestGetHandler(t *testing.T) {
	h := NewBookingHandler(&stubUseCase{
		getFn: func(ctx context.Context, reservationID, userID uint64) (model.Reservation, error) {
			return model.Reservation{ID: reservationID, UserID: userID, Status: model.StatusConfirmed}, nil
		},
	})
	c, rec := newBookingContext(t, http.MethodGet, "/v1/reservations/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
