package model

import "time"

// Screening is a scheduled showing of a movie in a theater. It owns the
// seats that can be booked for it.
type Screening struct {
	ID        uint64    `json:"id"`        // screenings.id
	MovieID   uint64    `json:"movieId"`   // screenings.movie_id
	TheaterID uint64    `json:"theaterId"` // screenings.theater_id
	StartTime time.Time `json:"startTime"` // screenings.start_time (UTC)
	CreatedAt time.Time `json:"createdAt"` // screenings.created_at
}
