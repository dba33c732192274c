package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/middleware"
	"github.com/iliyamo/cinema-booking/internal/service"
)

// BookingService is the part of the booking engine the HTTP layer calls.
type BookingService interface {
	BookSeats(ctx context.Context, actor service.Actor, screeningID uint64, seatIDs []uint64) ([]uint64, error)
	CancelBooking(ctx context.Context, actor service.Actor, screeningID uint64, seatIDs []uint64) ([]uint64, error)
}

// RequestValidator adapts go-playground/validator to echo.Validator.
type RequestValidator struct {
	v *validator.Validate
}

var seatLabelRe = regexp.MustCompile(`^[A-Z]{1,3}[1-9][0-9]{0,2}$`)

// NewValidator returns the validator registered on the echo instance. It
// knows the extra tag "seatlabel" (row letters followed by a number, e.g.
// "B7" or "AA12").
func NewValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("seatlabel", func(fl validator.FieldLevel) bool {
		return seatLabelRe.MatchString(fl.Field().String())
	})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

// bindValid binds the body into req and validates it. On failure it has
// already written a 400 response and returns false.
func bindValid(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "invalid_body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err), "code": "validation_failed"})
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+" failed "+fe.Tag())
	}
	return strings.Join(msgs, "; ")
}

// actorFrom builds the engine actor from what JWTAuth stored.
func actorFrom(c echo.Context) service.Actor {
	id, _ := middleware.UserID(c)
	return service.Actor{UserID: id, Role: middleware.Role(c)}
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func badID(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + name, "code": "invalid_id"})
}

// indexToRowLabel converts a zero-based index to a row label: 0 -> A,
// 25 -> Z, 26 -> AA.
func indexToRowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []byte
	for {
		res = append(res, byte('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// seatGrid labels rows*perRow seats row by row: A1..A<perRow>, B1...
func seatGrid(rows, perRow int) []string {
	out := make([]string, 0, rows*perRow)
	for r := 0; r < rows; r++ {
		label := indexToRowLabel(r)
		for n := 1; n <= perRow; n++ {
			out = append(out, label+strconv.Itoa(n))
		}
	}
	return out
}

// writeBookingError maps engine errors onto HTTP responses. Each kind has
// its own status and code; seat errors also carry the seat.
func writeBookingError(c echo.Context, err error) error {
	status, code := http.StatusInternalServerError, "store_failure"
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		status, code = http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, service.ErrEmptySelection):
		status, code = http.StatusBadRequest, "empty_selection"
	case errors.Is(err, service.ErrInvalidSeat):
		status, code = http.StatusUnprocessableEntity, "invalid_seat"
	case errors.Is(err, service.ErrSeatAlreadyBooked):
		status, code = http.StatusConflict, "seat_already_booked"
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	}

	body := echo.Map{"error": err.Error(), "code": code}
	if status == http.StatusInternalServerError {
		// store details stay in the logs
		body["error"] = "could not complete the request, please retry"
	}
	var seatErr *service.SeatError
	if errors.As(err, &seatErr) {
		body["seatId"] = seatErr.SeatID
		if seatErr.SeatNumber != "" {
			body["seatNumber"] = seatErr.SeatNumber
		}
	}
	return c.JSON(status, body)
}
