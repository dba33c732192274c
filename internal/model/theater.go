package model

import "time"

// Theater is a venue where screenings take place.
type Theater struct {
	ID        uint64    `json:"id"`        // theaters.id
	Name      string    `json:"name"`      // theaters.name
	Location  string    `json:"location"`  // theaters.location
	CreatedAt time.Time `json:"createdAt"` // theaters.created_at
}
