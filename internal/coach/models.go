package coach

import (
	"fmt"
	"time"
)

// Position addresses a seat by 0-indexed row and column
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// LayoutConfig describes the shape of a coach and the seats that start reserved.
type LayoutConfig struct {
	Name         string
	TotalRows    int
	SeatsPerRow  int
	LastRowSeats int
	Seeds        []Position
}

// DefaultLayoutConfig returns the 12 x 7 coach with a 3-seat final row and the
// demonstration seed reservations.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Name:         "coach-1",
		TotalRows:    12,
		SeatsPerRow:  7,
		LastRowSeats: 3,
		Seeds: []Position{
			{Row: 2, Column: 3},
			{Row: 2, Column: 4},
			{Row: 5, Column: 1},
			{Row: 8, Column: 5},
			{Row: 8, Column: 6},
		},
	}
}

// Validate checks the shape and seeds against each other
func (c LayoutConfig) Validate() error {
	if c.TotalRows < 1 {
		return fmt.Errorf("%w: total rows must be >= 1, got %d", ErrInvalidLayout, c.TotalRows)
	}
	if c.SeatsPerRow < 1 {
		return fmt.Errorf("%w: seats per row must be >= 1, got %d", ErrInvalidLayout, c.SeatsPerRow)
	}
	if c.LastRowSeats < 1 || c.LastRowSeats > c.SeatsPerRow {
		return fmt.Errorf("%w: last row seats must be between 1 and %d, got %d",
			ErrInvalidLayout, c.SeatsPerRow, c.LastRowSeats)
	}
	for _, p := range c.Seeds {
		if p.Row < 0 || p.Row >= c.TotalRows || p.Column < 0 || p.Column >= c.rowLength(p.Row) {
			return fmt.Errorf("%w: seed seat (%d,%d) is outside the coach", ErrInvalidLayout, p.Row, p.Column)
		}
	}
	return nil
}

// TotalSeats is the physical seat count of the coach
func (c LayoutConfig) TotalSeats() int {
	return (c.TotalRows-1)*c.SeatsPerRow + c.LastRowSeats
}

func (c LayoutConfig) rowLength(row int) int {
	if row == c.TotalRows-1 {
		return c.LastRowSeats
	}
	return c.SeatsPerRow
}

// Reservation records one successful allocation
type Reservation struct {
	ID        string    `json:"reservation_id"`
	Seats     []int     `json:"seats"`
	Scattered bool      `json:"scattered"`
	CreatedAt time.Time `json:"created_at"`
}

// SeatView is a read-only view of one seat for renderers
type SeatView struct {
	Number int        `json:"number"`
	Row    int        `json:"row"`
	Column int        `json:"column"`
	Status SeatStatus `json:"status"`
}

// Snapshot is a deep copy of the layout at a point in time
type Snapshot struct {
	Name         string       `json:"name"`
	TotalRows    int          `json:"total_rows"`
	SeatsPerRow  int          `json:"seats_per_row"`
	LastRowSeats int          `json:"last_row_seats"`
	Rows         [][]SeatView `json:"rows"`
}

// Counts returns the number of available and reserved seats in the snapshot
func (s Snapshot) Counts() (available, reserved int) {
	for _, row := range s.Rows {
		for _, seat := range row {
			if seat.Status == SeatAvailable {
				available++
			} else {
				reserved++
			}
		}
	}
	return available, reserved
}
