package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/iliyamo/cinema-booking/internal/logger"
	"github.com/iliyamo/cinema-booking/internal/model"
	"github.com/iliyamo/cinema-booking/internal/repository"
	"github.com/iliyamo/cinema-booking/internal/service/ports"
)

// Actor is the authenticated caller of an engine operation. It is produced
// by the JWT middleware and trusted as-is.
type Actor struct {
	UserID uint64
	Role   string
}

// BookingEngine mediates every change to seat booked flags and booking rows.
// It keeps no seat state of its own; each decision reads the store inside the
// transaction that applies it.
type BookingEngine struct {
	store    ports.BookingStore
	notifier ports.SeatNotifier
	log      *logger.Logger
}

// NewBookingEngine wires the engine to its store and notification sink.
func NewBookingEngine(store ports.BookingStore, notifier ports.SeatNotifier, log *logger.Logger) *BookingEngine {
	if store == nil || notifier == nil {
		panic("nil dependency passed to NewBookingEngine")
	}
	if log == nil {
		log = logger.Discard()
	}
	return &BookingEngine{store: store, notifier: notifier, log: log.WithComponent("booking")}
}

// BookSeats books every requested seat of a screening for the actor, or none
// of them. Seats are processed in ascending id order so that concurrent
// requests acquire row locks in the same order.
func (e *BookingEngine) BookSeats(ctx context.Context, actor Actor, screeningID uint64, seatIDs []uint64) ([]uint64, error) {
	if actor.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	ids := normalizeSeatIDs(seatIDs)
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}

	err := e.store.WithinTx(ctx, func(tx ports.BookingTx) error {
		for _, id := range ids {
			if err := bookSeat(ctx, tx, actor.UserID, screeningID, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, e.classify(ctx, "book seats", err)
	}

	e.log.LogSeatsBooked(ctx, actor.UserID, screeningID, ids)
	e.notifier.Publish(ctx, ports.EventSeatsBooked, model.SeatsChanged{ScreeningID: screeningID, SeatIDs: ids})
	return ids, nil
}

func bookSeat(ctx context.Context, tx ports.BookingTx, userID, screeningID, seatID uint64) error {
	seat, err := tx.SeatByID(ctx, seatID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return &SeatError{Err: ErrInvalidSeat, SeatID: seatID}
		}
		return err
	}
	if seat.ScreeningID != screeningID {
		return &SeatError{Err: ErrInvalidSeat, SeatID: seatID}
	}
	if seat.Booked {
		return &SeatError{Err: ErrSeatAlreadyBooked, SeatID: seatID, SeatNumber: seat.SeatNumber}
	}
	// a concurrent request may have booked the seat since the read above
	changed, err := tx.MarkSeatBooked(ctx, seatID)
	if err != nil {
		return err
	}
	if !changed {
		return &SeatError{Err: ErrSeatAlreadyBooked, SeatID: seatID, SeatNumber: seat.SeatNumber}
	}
	b := &model.Booking{UserID: userID, ScreeningID: screeningID, SeatID: seatID}
	if err := tx.CreateBooking(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return &SeatError{Err: ErrSeatAlreadyBooked, SeatID: seatID, SeatNumber: seat.SeatNumber}
		}
		return err
	}
	return nil
}

// CancelBooking removes the actor's bookings for the requested seats and
// frees exactly those seats. Requested seats that the actor does not hold a
// booking for are ignored; when none match, ErrNotFound is returned.
func (e *BookingEngine) CancelBooking(ctx context.Context, actor Actor, screeningID uint64, seatIDs []uint64) ([]uint64, error) {
	if actor.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	ids := normalizeSeatIDs(seatIDs)
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}

	var cancelled []uint64
	err := e.store.WithinTx(ctx, func(tx ports.BookingTx) error {
		owned, err := tx.OwnedBookings(ctx, actor.UserID, screeningID, ids)
		if err != nil {
			return err
		}
		if len(owned) == 0 {
			return ErrNotFound
		}
		bookingIDs := make([]uint64, 0, len(owned))
		freed := make([]uint64, 0, len(owned))
		for _, b := range owned {
			bookingIDs = append(bookingIDs, b.ID)
			freed = append(freed, b.SeatID)
		}
		slices.Sort(freed)
		if err := tx.DeleteBookings(ctx, bookingIDs); err != nil {
			return err
		}
		if err := tx.ReleaseSeats(ctx, freed); err != nil {
			return err
		}
		cancelled = freed
		return nil
	})
	if err != nil {
		return nil, e.classify(ctx, "cancel booking", err)
	}

	e.log.LogSeatsCancelled(ctx, actor.UserID, screeningID, cancelled)
	e.notifier.Publish(ctx, ports.EventSeatsCancelled, model.SeatsChanged{ScreeningID: screeningID, SeatIDs: cancelled})
	return cancelled, nil
}

// classify passes engine errors through and wraps everything else as a
// store failure.
func (e *BookingEngine) classify(ctx context.Context, op string, err error) error {
	var seatErr *SeatError
	if errors.As(err, &seatErr) || errors.Is(err, ErrNotFound) {
		return err
	}
	e.log.WithError(err).ErrorContext(ctx, op+" failed")
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err)
}

// normalizeSeatIDs drops zero ids and duplicates and sorts the rest.
func normalizeSeatIDs(seatIDs []uint64) []uint64 {
	out := make([]uint64, 0, len(seatIDs))
	for _, id := range seatIDs {
		if id != 0 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
