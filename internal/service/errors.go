package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrEmptySelection    = errors.New("no seats selected")
	ErrInvalidSeat       = errors.New("invalid seat")
	ErrSeatAlreadyBooked = errors.New("seat already booked")
	ErrNotFound          = errors.New("no matching bookings found")
	ErrStoreFailure      = errors.New("store failure")
)

// SeatError ties a validation failure to the seat that caused it.
type SeatError struct {
	Err        error
	SeatID     uint64
	SeatNumber string
}

func (e *SeatError) Error() string {
	if e.SeatNumber != "" {
		return fmt.Sprintf("%v: seat %s (id %d)", e.Err, e.SeatNumber, e.SeatID)
	}
	return fmt.Sprintf("%v: seat id %d", e.Err, e.SeatID)
}

func (e *SeatError) Unwrap() error { return e.Err }
