package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/logger"
	"github.com/iliyamo/cinema-booking/internal/model"
	"github.com/iliyamo/cinema-booking/internal/service"
)

// BookingLister reads a user's active bookings.
type BookingLister interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error)
}

// BookingHandler serves seat booking, cancellation and the caller's
// booking list. All routes sit behind JWTAuth.
type BookingHandler struct {
	Engine   BookingService
	Bookings BookingLister
	Log      *logger.Logger
}

func NewBookingHandler(engine BookingService, bookings BookingLister, log *logger.Logger) *BookingHandler {
	if engine == nil || bookings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	if log == nil {
		log = logger.Discard()
	}
	return &BookingHandler{Engine: engine, Bookings: bookings, Log: log}
}

// seatSelection is the body of book and cancel. An empty list is passed
// through so the engine reports it as empty_selection.
type seatSelection struct {
	SeatIDs []uint64 `json:"seatIds"`
}

// Book handles POST /screenings/:id/book.
func (h *BookingHandler) Book(c echo.Context) error {
	screeningID, ok := pathID(c, "id")
	if !ok {
		return badID(c, "screening id")
	}
	var req seatSelection
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "invalid_body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	booked, err := h.Engine.BookSeats(ctx, actorFrom(c), screeningID, req.SeatIDs)
	if err != nil {
		h.logFailure(c, "book seats", err)
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookedSeatIds": booked})
}

// Cancel handles DELETE /screenings/:id/bookings.
func (h *BookingHandler) Cancel(c echo.Context) error {
	screeningID, ok := pathID(c, "id")
	if !ok {
		return badID(c, "screening id")
	}
	var req seatSelection
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "invalid_body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	cancelled, err := h.Engine.CancelBooking(ctx, actorFrom(c), screeningID, req.SeatIDs)
	if err != nil {
		h.logFailure(c, "cancel booking", err)
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cancelledSeatIds": cancelled})
}

// ListMine handles GET /bookings.
func (h *BookingHandler) ListMine(c echo.Context) error {
	actor := actorFrom(c)
	if actor.UserID == 0 {
		return writeBookingError(c, service.ErrUnauthenticated)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.ListByUser(ctx, actor.UserID)
	if err != nil {
		h.Log.WithUserID(actor.UserID).WithError(err).ErrorContext(ctx, "list bookings failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load bookings", "code": "store_failure"})
	}
	return c.JSON(http.StatusOK, list)
}

// logFailure records store failures; the engine already logged the cause,
// this ties it to the user and request.
func (h *BookingHandler) logFailure(c echo.Context, op string, err error) {
	if !errors.Is(err, service.ErrStoreFailure) {
		return
	}
	h.Log.WithUserID(actorFrom(c).UserID).WithError(err).ErrorContext(c.Request().Context(), op+" failed",
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID))
}
