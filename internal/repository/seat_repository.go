package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-booking/internal/model"
)

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// SeatRepo provides methods to work with the seats of a screening. Methods
// suffixed with Tx run on a caller-owned transaction.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// CreateBulk inserts one free seat per label for the screening in a single
// statement. A label repeated within the screening yields ErrDuplicate and
// an unknown screening yields ErrBadReference.
func (r *SeatRepo) CreateBulk(ctx context.Context, screeningID uint64, seatNumbers []string) error {
	if len(seatNumbers) == 0 {
		return nil
	}
	query := `INSERT INTO seats (screening_id, seat_number) VALUES `
	args := make([]interface{}, 0, len(seatNumbers)*2)
	for i, n := range seatNumbers {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, screeningID, n)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return translate(err)
}

// ListByScreening returns every seat of a screening with its booked flag,
// ordered by id.
func (r *SeatRepo) ListByScreening(ctx context.Context, screeningID uint64) ([]model.Seat, error) {
	const q = `SELECT id, screening_id, seat_number, is_booked, created_at, updated_at
	           FROM seats
	           WHERE screening_id = ?
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Seat{}
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.ScreeningID, &s.SeatNumber, &s.Booked, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByIDTx reads a seat inside tx.
func (r *SeatRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Seat, error) {
	const q = `SELECT id, screening_id, seat_number, is_booked, created_at, updated_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	err := tx.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.ScreeningID, &s.SeatNumber, &s.Booked, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// MarkBookedTx sets is_booked only when the seat is still free. The row lock
// taken by the UPDATE makes concurrent callers queue behind each other; the
// ones that lose see zero affected rows and get false.
func (r *SeatRepo) MarkBookedTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	const q = `UPDATE seats SET is_booked = TRUE, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND is_booked = FALSE`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ReleaseTx clears is_booked on the given seats.
func (r *SeatRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	q := `UPDATE seats SET is_booked = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id IN (` + inClause(len(ids)) + `)`
	_, err := tx.ExecContext(ctx, q, uint64Args(ids)...)
	return err
}
