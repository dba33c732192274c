package model

import "time"

// Movie describes a film that can be scheduled into screenings. PosterURL
// points at an externally hosted image.
type Movie struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	DurationMin uint32    `json:"durationMin"`
	Rating      uint8     `json:"rating"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	Cast        string    `json:"cast"`
	Director    string    `json:"director"`
	PosterURL   *string   `json:"posterUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}
