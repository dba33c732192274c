package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-booking/internal/model"
)

// TheaterRepo provides CRUD operations for theaters.
type TheaterRepo struct {
	db *sql.DB
}

// NewTheaterRepo constructs a TheaterRepo with the given DB handle.
func NewTheaterRepo(db *sql.DB) *TheaterRepo { return &TheaterRepo{db: db} }

// Create inserts t and populates its ID and CreatedAt.
func (r *TheaterRepo) Create(ctx context.Context, t *model.Theater) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO theaters (name, location) VALUES (?, ?)`, t.Name, t.Location)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	// read back defaults
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM theaters WHERE id = ?`, t.ID).Scan(&t.CreatedAt)
}

// List returns all theaters ordered by id.
func (r *TheaterRepo) List(ctx context.Context) ([]model.Theater, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, location, created_at FROM theaters ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Theater{}
	for rows.Next() {
		var t model.Theater
		if err := rows.Scan(&t.ID, &t.Name, &t.Location, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByID fetches a theater by id or returns ErrNotFound.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (*model.Theater, error) {
	var t model.Theater
	err := r.db.QueryRowContext(ctx, `SELECT id, name, location, created_at FROM theaters WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Location, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update overwrites name and location of t.ID and reloads t.
func (r *TheaterRepo) Update(ctx context.Context, t *model.Theater) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE theaters SET name = ?, location = ? WHERE id = ?`, t.Name, t.Location, t.ID); err != nil {
		return translate(err)
	}
	// MySQL reports zero affected rows for unchanged values, so existence is checked by reading back
	got, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *got
	return nil
}

// Delete removes a theater. Theaters with screenings yield ErrInUse.
func (r *TheaterRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, "theaters", id)
}
