package ports

import (
	"context"

	"github.com/iliyamo/cinema-booking/internal/model"
)

// BookingStore opens transactions scoped to one booking engine operation.
// WithinTx commits when fn returns nil and rolls back otherwise, returning
// fn's error unchanged.
type BookingStore interface {
	WithinTx(ctx context.Context, fn func(tx BookingTx) error) error
}

// BookingTx is the set of seat and booking primitives available inside a
// transaction.
type BookingTx interface {
	// SeatByID returns repository.ErrSeatNotFound when no seat has the id.
	SeatByID(ctx context.Context, seatID uint64) (*model.Seat, error)
	// MarkSeatBooked flips booked to true only if it is currently false and
	// reports whether a row was changed.
	MarkSeatBooked(ctx context.Context, seatID uint64) (bool, error)
	CreateBooking(ctx context.Context, b *model.Booking) error
	OwnedBookings(ctx context.Context, userID, screeningID uint64, seatIDs []uint64) ([]model.Booking, error)
	DeleteBookings(ctx context.Context, bookingIDs []uint64) error
	ReleaseSeats(ctx context.Context, seatIDs []uint64) error
}
