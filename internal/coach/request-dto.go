package coach

// ReserveRequest asks for a number of seats. The range is checked by the
// service, not by gin binding, so out-of-range counts surface as an
// invalid_request outcome.
type ReserveRequest struct {
	Count int `json:"count"`
}
