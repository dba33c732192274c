package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-booking/internal/model"
)

// MovieRepo provides access to the movies table.
type MovieRepo struct {
	db *sql.DB
}

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = `id, title, duration_min, rating, genre, description, cast_list, director, poster_url, created_at`

// Create inserts m and populates its ID and CreatedAt.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, duration_min, rating, genre, description, cast_list, director, poster_url)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.DurationMin, m.Rating, m.Genre, m.Description, m.Cast, m.Director, nullString(m.PosterURL))
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM movies WHERE id = ?`, m.ID).Scan(&m.CreatedAt)
}

// List returns all movies ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY title, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID fetches a movie by id or returns ErrNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Update overwrites every editable column of m.ID and reloads m.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies SET title = ?, duration_min = ?, rating = ?, genre = ?, description = ?,
	           cast_list = ?, director = ?, poster_url = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, m.Title, m.DurationMin, m.Rating, m.Genre, m.Description,
		m.Cast, m.Director, nullString(m.PosterURL), m.ID); err != nil {
		return translate(err)
	}
	got, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = *got
	return nil
}

// Delete removes a movie. Movies with screenings yield ErrInUse.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, "movies", id)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (model.Movie, error) {
	var (
		m      model.Movie
		poster sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Title, &m.DurationMin, &m.Rating, &m.Genre, &m.Description,
		&m.Cast, &m.Director, &poster, &m.CreatedAt); err != nil {
		return m, err
	}
	if poster.Valid {
		p := poster.String
		m.PosterURL = &p
	}
	return m, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
