package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/allocation"
	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
)

// BookingHandler exposes the reservation lifecycle over HTTP.  All
// endpoints require an authenticated customer; the user identity comes
// from the JWT claims the auth middleware stored in the context.
type BookingHandler struct {
	Bookings booking.UseCase
}

func NewBookingHandler(uc booking.UseCase) *BookingHandler {
	return &BookingHandler{Bookings: uc}
}

type bookReq struct {
	PeopleCount int    `json:"people_count"`
	Date        string `json:"reservation_date"` // "2006-01-02"
	Time        string `json:"reservation_time"` // "15:04" or "15:04:05"
}

// Book allocates the optimal table for the party and confirms the
// reservation in one step.
func (h *BookingHandler) Book(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	res, err := h.Bookings.Book(c.Request().Context(), uid, booking.BookTableInput{
		PeopleCount: req.PeopleCount,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrInvalidPeopleCount):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "people_count must be a positive integer"})
		case errors.Is(err, booking.ErrInvalidSlot):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation date or time"})
		case errors.Is(err, booking.ErrNoTableAvailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "no table available"})
		case errors.Is(err, booking.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot was taken by a concurrent booking, please retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	return c.JSON(http.StatusCreated, res)
}

// Cancel releases a reservation's table and marks it cancelled.
// Cancelling twice reports 409 rather than silently succeeding, so
// clients can tell a no-op from a state change.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	if err := h.Bookings.Cancel(c.Request().Context(), id, uid); err != nil {
		switch {
		case errors.Is(err, booking.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, booking.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
		case errors.Is(err, booking.ErrAlreadyCancelled):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already cancelled"})
		case errors.Is(err, booking.ErrConflict):
			// An earlier cancelled reservation already occupies this
			// slot's cancelled state.
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot state conflict, cannot cancel"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}

// List returns one page of the caller's reservations, newest slot
// first.  Page and page_size come from query parameters.
func (h *BookingHandler) List(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	out, err := h.Bookings.ListReservations(c.Request().Context(), uid, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single reservation owned by the caller.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	res, err := h.Bookings.GetReservation(c.Request().Context(), id, uid)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, booking.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
	}
	return c.JSON(http.StatusOK, res)
}

// currentUser pulls the user ID stored by the JWT middleware.  Numeric
// JWT claims decode as float64.
func currentUser(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), v > 0
	case uint64:
		return v, v > 0
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, n > 0
		}
	}
	return 0, false
}
