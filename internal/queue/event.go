// Package queue defines message payloads exchanged over the message broker.
package queue

// SeatEventsQueue is the durable queue carrying committed seat changes.
const SeatEventsQueue = "seats.changed"

// SeatEvent is published after a booking or cancellation commits. It
// carries enough to audit the change without querying the database.
type SeatEvent struct {
	Event       string   `json:"event"`        // seatsBooked | seatsCancelled
	ScreeningID uint64   `json:"screening_id"` // screening whose seats changed
	SeatIDs     []uint64 `json:"seat_ids"`     // seats that changed, ascending
	OccurredAt  string   `json:"occurred_at"`  // RFC 3339, UTC
}
