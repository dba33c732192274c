package model

import "time"

// Seat is a bookable position inside one screening. Seats are created in
// bulk when the screening's seat map is initialised and their Booked flag is
// only ever flipped by the booking engine.
//
// Fields:
//
//	ID          – primary key identifier.
//	ScreeningID – screening the seat belongs to.
//	SeatNumber  – human readable label (row letter + number, e.g. "B7"),
//	              unique within the screening.
//	Booked      – true while exactly one booking references the seat.
type Seat struct {
	ID          uint64    `json:"id"`          // seats.id
	ScreeningID uint64    `json:"screeningId"` // seats.screening_id
	SeatNumber  string    `json:"seatNumber"`  // seats.seat_number
	Booked      bool      `json:"isBooked"`    // seats.is_booked
	CreatedAt   time.Time `json:"-"`           // seats.created_at
	UpdatedAt   time.Time `json:"-"`           // seats.updated_at
}
