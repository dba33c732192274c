package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-booking/internal/model"
)

// BookingRepo reads and writes rows of the bookings table. A booking row
// exists only while the seat it references is booked; the unique key on
// seat_id guarantees at most one.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateTx inserts b within tx and populates its ID and CreatedAt. A second
// row for the same seat yields ErrDuplicate.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, screening_id, seat_id) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.ScreeningID, b.SeatID)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return tx.QueryRowContext(ctx, `SELECT created_at FROM bookings WHERE id = ?`, b.ID).Scan(&b.CreatedAt)
}

// OwnedTx returns the user's bookings for the given seats of a screening,
// ordered by seat id. The rows are locked until tx ends so that two
// cancellations of the same booking cannot both succeed.
func (r *BookingRepo) OwnedTx(ctx context.Context, tx *sql.Tx, userID, screeningID uint64, seatIDs []uint64) ([]model.Booking, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}
	q := `SELECT id, user_id, screening_id, seat_id, created_at
	      FROM bookings
	      WHERE user_id = ? AND screening_id = ? AND seat_id IN (` + inClause(len(seatIDs)) + `)
	      ORDER BY seat_id
	      FOR UPDATE`
	args := append([]interface{}{userID, screeningID}, uint64Args(seatIDs)...)
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.ScreeningID, &b.SeatID, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// DeleteTx removes the bookings with the given ids.
func (r *BookingRepo) DeleteTx(ctx context.Context, tx *sql.Tx, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	q := `DELETE FROM bookings WHERE id IN (` + inClause(len(ids)) + `)`
	_, err := tx.ExecContext(ctx, q, uint64Args(ids)...)
	return err
}

// ListByUser returns the user's active bookings joined with their screening,
// movie, theater and seat, soonest screening first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	const q = `SELECT b.id, b.screening_id, sc.start_time, m.id, m.title, t.id, t.name, s.id, s.seat_number, b.created_at
	           FROM bookings b
	           JOIN screenings sc ON sc.id = b.screening_id
	           JOIN movies m ON m.id = sc.movie_id
	           JOIN theaters t ON t.id = sc.theater_id
	           JOIN seats s ON s.id = b.seat_id
	           WHERE b.user_id = ?
	           ORDER BY sc.start_time, s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookingDetail{}
	for rows.Next() {
		var d model.BookingDetail
		if err := rows.Scan(&d.ID, &d.ScreeningID, &d.StartTime, &d.MovieID, &d.MovieTitle,
			&d.TheaterID, &d.TheaterName, &d.SeatID, &d.SeatNumber, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
