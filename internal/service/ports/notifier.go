package ports

import (
	"context"

	"github.com/iliyamo/cinema-booking/internal/model"
)

// Seat event names broadcast to observers.
const (
	EventSeatsBooked    = "seatsBooked"
	EventSeatsCancelled = "seatsCancelled"
)

// SeatNotifier receives seat state changes after they are committed.
// Delivery is best effort; implementations log their own failures.
type SeatNotifier interface {
	Publish(ctx context.Context, event string, payload model.SeatsChanged)
}
