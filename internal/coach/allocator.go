package coach

// Allocator owns a coach layout and decides which seats satisfy a request.
// It is not safe for concurrent use; Service serialises access to it.
type Allocator struct {
	cfg    LayoutConfig
	layout [][]SeatStatus
}

// NewAllocator builds the layout row by row and applies the seed reservations.
func NewAllocator(cfg LayoutConfig) (*Allocator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout := make([][]SeatStatus, cfg.TotalRows)
	for r := range layout {
		row := make([]SeatStatus, cfg.rowLength(r))
		for c := range row {
			row[c] = SeatAvailable
		}
		layout[r] = row
	}
	for _, p := range cfg.Seeds {
		layout[p.Row][p.Column] = SeatReserved
	}

	return &Allocator{cfg: cfg, layout: layout}, nil
}

// Config returns the configuration the allocator was built from
func (a *Allocator) Config() LayoutConfig {
	return a.cfg
}

// NumberOf converts a 0-indexed position into a 1-indexed seat number.
func (a *Allocator) NumberOf(row, col int) int {
	return row*a.cfg.SeatsPerRow + col + 1
}

// PositionOf is the inverse of NumberOf.
func (a *Allocator) PositionOf(seatNumber int) Position {
	return Position{
		Row:    (seatNumber - 1) / a.cfg.SeatsPerRow,
		Column: (seatNumber - 1) % a.cfg.SeatsPerRow,
	}
}

// FindSeats returns the seat numbers that would satisfy a request for count
// seats, or an empty slice when no allocation exists. The layout is not changed.
func (a *Allocator) FindSeats(count int) []int {
	seats, _ := a.find(count)
	return seats
}

// Reserve finds seats for count and marks them reserved.
func (a *Allocator) Reserve(count int) []int {
	seats, _ := a.reserve(count)
	return seats
}

// reserve also reports whether the allocation came from the scatter phase.
func (a *Allocator) reserve(count int) ([]int, bool) {
	seats, scattered := a.find(count)
	for _, n := range seats {
		p := a.PositionOf(n)
		a.layout[p.Row][p.Column] = SeatReserved
	}
	return seats, scattered
}

func (a *Allocator) find(count int) ([]int, bool) {
	if count < 1 || count > a.cfg.TotalSeats() {
		return []int{}, false
	}

	for r, row := range a.layout {
		if start := consecutiveRun(row, count); start >= 0 {
			seats := make([]int, count)
			for i := range seats {
				seats[i] = a.NumberOf(r, start+i)
			}
			return seats, false
		}
	}

	seats := make([]int, 0, count)
	for r, row := range a.layout {
		for c, status := range row {
			if status != SeatAvailable {
				continue
			}
			seats = append(seats, a.NumberOf(r, c))
			if len(seats) == count {
				return seats, true
			}
		}
	}
	return []int{}, false
}

// consecutiveRun returns the column where the leftmost run of count available
// seats starts, or -1.
func consecutiveRun(row []SeatStatus, count int) int {
	run := 0
	for c, status := range row {
		if status != SeatAvailable {
			run = 0
			continue
		}
		run++
		if run == count {
			return c - count + 1
		}
	}
	return -1
}

// longestRun returns the length of the longest run of available seats in row.
func longestRun(row []SeatStatus) int {
	longest, run := 0, 0
	for _, status := range row {
		if status != SeatAvailable {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

// Status reports the state of the seat at p. ok is false when p is outside the coach.
func (a *Allocator) Status(p Position) (status SeatStatus, ok bool) {
	if p.Row < 0 || p.Row >= len(a.layout) || p.Column < 0 || p.Column >= len(a.layout[p.Row]) {
		return "", false
	}
	return a.layout[p.Row][p.Column], true
}

// Available counts the seats that can still be reserved
func (a *Allocator) Available() int {
	n := 0
	for _, row := range a.layout {
		for _, status := range row {
			if status == SeatAvailable {
				n++
			}
		}
	}
	return n
}

// LongestRuns returns the longest consecutive available run for every row.
func (a *Allocator) LongestRuns() []int {
	runs := make([]int, len(a.layout))
	for r, row := range a.layout {
		runs[r] = longestRun(row)
	}
	return runs
}

// Snapshot returns a copy of the layout that callers may keep.
func (a *Allocator) Snapshot() Snapshot {
	rows := make([][]SeatView, len(a.layout))
	for r, row := range a.layout {
		views := make([]SeatView, len(row))
		for c, status := range row {
			views[c] = SeatView{
				Number: a.NumberOf(r, c),
				Row:    r,
				Column: c,
				Status: status,
			}
		}
		rows[r] = views
	}

	return Snapshot{
		Name:         a.cfg.Name,
		TotalRows:    a.cfg.TotalRows,
		SeatsPerRow:  a.cfg.SeatsPerRow,
		LastRowSeats: a.cfg.LastRowSeats,
		Rows:         rows,
	}
}
