package coach

import "errors"

var (
	ErrInvalidLayout = errors.New("invalid coach layout")
	ErrNoReservation = errors.New("no reservation has been made yet")
)

const (
	msgInvalidCount = "Please enter a number between %d and %d"
	msgNoCapacity   = "Sorry, no suitable seats available"
)
