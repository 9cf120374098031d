package coach

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatReserved  SeatStatus = "RESERVED"
)

// IsValid checks if the seat status is valid
func (s SeatStatus) IsValid() bool {
	switch s {
	case SeatAvailable, SeatReserved:
		return true
	}
	return false
}

// String returns the string representation of SeatStatus
func (s SeatStatus) String() string {
	return string(s)
}

// Outcome is the result class of a reservation request as seen by callers.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeInvalidRequest Outcome = "invalid_request"
	OutcomeNoCapacity     Outcome = "no_capacity"
)

func (o Outcome) String() string {
	return string(o)
}

// IsSuccess reports whether seats were granted
func (o Outcome) IsSuccess() bool {
	return o == OutcomeSuccess
}
