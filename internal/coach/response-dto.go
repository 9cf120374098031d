package coach

import "time"

type ReservationResponse struct {
	ReservationID string    `json:"reservation_id,omitempty"`
	Outcome       Outcome   `json:"outcome"`
	Count         int       `json:"count"`
	Seats         []int     `json:"seats"`
	Scattered     bool      `json:"scattered"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

type SearchResponse struct {
	Count int   `json:"count"`
	Seats []int `json:"seats"`
	Found bool  `json:"found"`
}

type LayoutResponse struct {
	Snapshot
	TotalSeats     int `json:"total_seats"`
	AvailableSeats int `json:"available_seats"`
	ReservedSeats  int `json:"reserved_seats"`
}

// Availability models
type AvailabilityResponse struct {
	TotalSeats     int   `json:"total_seats"`
	AvailableSeats int   `json:"available_seats"`
	ReservedSeats  int   `json:"reserved_seats"`
	LongestRuns    []int `json:"longest_runs"`
	MaxGroupInRow  int   `json:"max_group_in_row"`
}
