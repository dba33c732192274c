package model

import "time"

// Booking links a user to one booked seat of a screening. A row exists only
// while the booking is active; cancelling deletes it.
//
// Fields:
//
//	ID          – primary key identifier.
//	UserID      – user who booked the seat.
//	ScreeningID – screening of the seat.
//	SeatID      – booked seat (unique while the booking exists).
//	CreatedAt   – creation timestamp.
type Booking struct {
	ID          uint64    `json:"id"`          // bookings.id
	UserID      uint64    `json:"userId"`      // bookings.user_id
	ScreeningID uint64    `json:"screeningId"` // bookings.screening_id
	SeatID      uint64    `json:"seatId"`      // bookings.seat_id
	CreatedAt   time.Time `json:"createdAt"`   // bookings.created_at
}

// BookingDetail is a booking joined with the screening, movie, theater and
// seat it refers to. It is what a user sees when listing their bookings.
type BookingDetail struct {
	ID          uint64    `json:"id"`
	ScreeningID uint64    `json:"screeningId"`
	StartTime   time.Time `json:"startTime"`
	MovieID     uint64    `json:"movieId"`
	MovieTitle  string    `json:"movieTitle"`
	TheaterID   uint64    `json:"theaterId"`
	TheaterName string    `json:"theaterName"`
	SeatID      uint64    `json:"seatId"`
	SeatNumber  string    `json:"seatNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SeatsChanged is the payload broadcast to observers after a booking or a
// cancellation commits.
type SeatsChanged struct {
	ScreeningID uint64   `json:"screeningId"`
	SeatIDs     []uint64 `json:"seatIds"`
}
