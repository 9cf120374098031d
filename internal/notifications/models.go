package notifications

import (
	"encoding/json"
	"time"
)

// EventType identifies what happened to the coach
type EventType string

const (
	EventTypeSeatsReserved EventType = "SEATS_RESERVED"
)

// ReservationEvent is published after seats have been committed to the layout.
type ReservationEvent struct {
	Type          EventType `json:"type"`
	ReservationID string    `json:"reservation_id"`
	Coach         string    `json:"coach"`
	Seats         []int     `json:"seats"`
	Count         int       `json:"count"`
	Scattered     bool      `json:"scattered"`
	Available     int       `json:"available_seats"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewSeatsReservedEvent builds the event for a successful reservation
func NewSeatsReservedEvent(reservationID, coach string, seats []int, scattered bool, available int, createdAt time.Time) *ReservationEvent {
	copied := make([]int, len(seats))
	copy(copied, seats)

	return &ReservationEvent{
		Type:          EventTypeSeatsReserved,
		ReservationID: reservationID,
		Coach:         coach,
		Seats:         copied,
		Count:         len(copied),
		Scattered:     scattered,
		Available:     available,
		CreatedAt:     createdAt,
	}
}

// GetPartitionKey keeps every event of one coach on the same partition
func (e *ReservationEvent) GetPartitionKey() string {
	return e.Coach
}

func (e *ReservationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
