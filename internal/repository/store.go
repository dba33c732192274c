package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-booking/internal/model"
	"github.com/iliyamo/cinema-booking/internal/service/ports"
)

// Store runs booking engine operations against MySQL. Every WithinTx call
// gets its own READ COMMITTED transaction so that the conditional seat
// update always sees the latest committed row.
type Store struct {
	db       *sql.DB
	seats    *SeatRepo
	bookings *BookingRepo
}

// NewStore builds a Store over db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, seats: NewSeatRepo(db), bookings: NewBookingRepo(db)}
}

// WithinTx implements ports.BookingStore.
func (s *Store) WithinTx(ctx context.Context, fn func(tx ports.BookingTx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&storeTx{tx: tx, seats: s.seats, bookings: s.bookings}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

type storeTx struct {
	tx       *sql.Tx
	seats    *SeatRepo
	bookings *BookingRepo
}

var _ ports.BookingTx = (*storeTx)(nil)

func (t *storeTx) SeatByID(ctx context.Context, seatID uint64) (*model.Seat, error) {
	return t.seats.GetByIDTx(ctx, t.tx, seatID)
}

func (t *storeTx) MarkSeatBooked(ctx context.Context, seatID uint64) (bool, error) {
	return t.seats.MarkBookedTx(ctx, t.tx, seatID)
}

func (t *storeTx) CreateBooking(ctx context.Context, b *model.Booking) error {
	return t.bookings.CreateTx(ctx, t.tx, b)
}

func (t *storeTx) OwnedBookings(ctx context.Context, userID, screeningID uint64, seatIDs []uint64) ([]model.Booking, error) {
	return t.bookings.OwnedTx(ctx, t.tx, userID, screeningID, seatIDs)
}

func (t *storeTx) DeleteBookings(ctx context.Context, bookingIDs []uint64) error {
	return t.bookings.DeleteTx(ctx, t.tx, bookingIDs)
}

func (t *storeTx) ReleaseSeats(ctx context.Context, seatIDs []uint64) error {
	return t.seats.ReleaseTx(ctx, t.tx, seatIDs)
}
