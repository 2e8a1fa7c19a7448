package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// TableHandler serves the table inventory: a public read surface for
// browsing and a manager-only write surface for adding tables.
type TableHandler struct {
	Tables *repository.TableRepo
}

func NewTableHandler(t *repository.TableRepo) *TableHandler {
	return &TableHandler{Tables: t}
}

type createTableReq struct {
	TableNumber       uint32 `json:"table_number"`
	Seats             uint32 `json:"seats"`
	PricePerSeatCents uint32 `json:"price_per_seat_cents"`
}

// ListAvailable is the public browse endpoint.  Only bookable tables are
// shown; the response sits behind the Redis cache middleware.
func (h *TableHandler) ListAvailable(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tables, err := h.Tables.ListAvailable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tables failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": tables})
}

// ListAll returns the full inventory including booked tables.  Manager
// only.
func (h *TableHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tables, err := h.Tables.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tables failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": tables})
}

// Create adds a table to the inventory.  Manager only.  Capacity and
// table number bounds follow the restaurant's floor layout.
func (h *TableHandler) Create(c echo.Context) error {
	var req createTableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TableNumber < model.MinTableNumber || req.TableNumber > model.MaxTableNumber {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_number out of range"})
	}
	if req.Seats < model.MinSeats || req.Seats > model.MaxSeats {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats out of range"})
	}
	if req.PricePerSeatCents == 0 || req.PricePerSeatCents > model.MaxPricePerSeatCents {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_per_seat_cents out of range"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t := model.Table{
		TableNumber:       req.TableNumber,
		Seats:             req.Seats,
		PricePerSeatCents: req.PricePerSeatCents,
		IsAvailable:       true,
	}
	if err := h.Tables.Create(ctx, &t); err != nil {
		if errors.Is(err, repository.ErrTableNumberExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "table number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create table failed"})
	}
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	return c.JSON(http.StatusCreated, t)
}
