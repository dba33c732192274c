package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-booking/internal/model"
)

// ErrScreeningNotFound is returned when a screening lookup yields no rows.
var ErrScreeningNotFound = errors.New("screening not found")

// ScreeningRepo provides access to the screenings table.
type ScreeningRepo struct {
	db *sql.DB
}

// NewScreeningRepo returns a ScreeningRepo bound to db.
func NewScreeningRepo(db *sql.DB) *ScreeningRepo { return &ScreeningRepo{db: db} }

// Create inserts s and populates ID and CreatedAt. Unknown movie or theater
// ids yield ErrBadReference.
func (r *ScreeningRepo) Create(ctx context.Context, s *model.Screening) error {
	const q = `INSERT INTO screenings (movie_id, theater_id, start_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.TheaterID, s.StartTime.UTC())
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*s = *got
	return nil
}

// GetByID fetches a screening by id.
func (r *ScreeningRepo) GetByID(ctx context.Context, id uint64) (*model.Screening, error) {
	const q = `SELECT id, movie_id, theater_id, start_time, created_at FROM screenings WHERE id = ?`
	var s model.Screening
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.MovieID, &s.TheaterID, &s.StartTime, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreeningNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByTheater returns the screenings of a theater ordered by start time.
// A non-zero movieID restricts the result to that movie.
func (r *ScreeningRepo) ListByTheater(ctx context.Context, theaterID, movieID uint64) ([]model.Screening, error) {
	q := `SELECT id, movie_id, theater_id, start_time, created_at FROM screenings WHERE theater_id = ?`
	args := []interface{}{theaterID}
	if movieID != 0 {
		q += ` AND movie_id = ?`
		args = append(args, movieID)
	}
	q += ` ORDER BY start_time, id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Screening{}
	for rows.Next() {
		var s model.Screening
		if err := rows.Scan(&s.ID, &s.MovieID, &s.TheaterID, &s.StartTime, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
