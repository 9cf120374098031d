package coach

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coachseat/internal/notifications"
	"coachseat/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultMaxSeatsPerRequest is the largest group a single request may ask for.
const DefaultMaxSeatsPerRequest = 7

type Service interface {
	// Reservation (core flow)
	Reserve(ctx context.Context, req ReserveRequest) (*ReservationResult, error)
	FindSeats(ctx context.Context, count int) (*SearchResponse, error)

	// Read-only views
	GetLayout(ctx context.Context) (*LayoutResponse, error)
	GetAvailability(ctx context.Context) (*AvailabilityResponse, error)
	ListReservations(ctx context.Context) ([]Reservation, error)
	LatestReservation(ctx context.Context) (*Reservation, error)
}

// ReservationResult is what the boundary reports back for one request
type ReservationResult struct {
	Outcome     Outcome
	Message     string
	Count       int
	Reservation *Reservation
}

type service struct {
	// mu makes find-then-mark atomic with respect to other requests.
	mu        sync.Mutex
	allocator *Allocator
	history   []Reservation

	maxPerRequest int
	countRule     string
	validate      *validator.Validate

	notifier notifications.ReservationNotifier
	metrics  *Metrics
	now      func() time.Time
}

// NewService wraps allocator with request validation, locking, history,
// notifications and metrics. notifier and metrics may be nil.
func NewService(allocator *Allocator, maxPerRequest int, notifier notifications.ReservationNotifier, metrics *Metrics) Service {
	if maxPerRequest < 1 {
		maxPerRequest = DefaultMaxSeatsPerRequest
	}

	s := &service{
		allocator:     allocator,
		maxPerRequest: maxPerRequest,
		countRule:     fmt.Sprintf("min=1,max=%d", maxPerRequest),
		validate:      validator.New(),
		notifier:      notifier,
		metrics:       metrics,
		now:           func() time.Time { return time.Now().UTC() },
	}
	metrics.available(allocator.Available())
	return s
}

//  RESERVATION

func (s *service) Reserve(ctx context.Context, req ReserveRequest) (*ReservationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.validate.Var(req.Count, s.countRule); err != nil {
		s.metrics.request(OutcomeInvalidRequest)
		logger.GetDefault().LogReservationRejected(ctx, req.Count, OutcomeInvalidRequest.String())
		return &ReservationResult{
			Outcome: OutcomeInvalidRequest,
			Message: fmt.Sprintf(msgInvalidCount, 1, s.maxPerRequest),
			Count:   req.Count,
		}, nil
	}

	s.mu.Lock()
	seats, scattered := s.allocator.reserve(req.Count)
	available := s.allocator.Available()
	var reservation *Reservation
	if len(seats) > 0 {
		reservation = &Reservation{
			ID:        uuid.New().String(),
			Seats:     seats,
			Scattered: scattered,
			CreatedAt: s.now(),
		}
		s.history = append(s.history, copyReservation(*reservation))
	}
	s.metrics.available(available)
	s.mu.Unlock()

	if reservation == nil {
		s.metrics.request(OutcomeNoCapacity)
		logger.GetDefault().LogReservationRejected(ctx, req.Count, OutcomeNoCapacity.String())
		return &ReservationResult{
			Outcome: OutcomeNoCapacity,
			Message: msgNoCapacity,
			Count:   req.Count,
		}, nil
	}

	s.metrics.request(OutcomeSuccess)
	s.metrics.reserved(len(seats), scattered)
	logger.GetDefault().LogSeatsReserved(ctx, reservation.ID, seats, scattered)
	s.notify(ctx, reservation, available)

	return &ReservationResult{
		Outcome:     OutcomeSuccess,
		Message:     "Seats reserved successfully",
		Count:       req.Count,
		Reservation: reservation,
	}, nil
}

// notify never fails the reservation: the seats are already committed.
func (s *service) notify(ctx context.Context, r *Reservation, available int) {
	if s.notifier == nil {
		return
	}

	event := notifications.NewSeatsReservedEvent(r.ID, s.allocator.Config().Name, r.Seats, r.Scattered, available, r.CreatedAt)
	if err := s.notifier.NotifyReserved(ctx, event); err != nil {
		s.metrics.notificationFailed()
		logger.GetDefault().ErrorWithContext(ctx, "Failed to publish reservation event", err, map[string]interface{}{
			"reservation_id": r.ID,
		})
	}
}

func (s *service) FindSeats(ctx context.Context, count int) (*SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	seats := s.allocator.FindSeats(count)
	s.mu.Unlock()

	return &SearchResponse{
		Count: count,
		Seats: seats,
		Found: len(seats) > 0,
	}, nil
}

//  READ-ONLY VIEWS

func (s *service) GetLayout(ctx context.Context) (*LayoutResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	snapshot := s.allocator.Snapshot()
	s.mu.Unlock()

	available, reserved := snapshot.Counts()
	return &LayoutResponse{
		Snapshot:       snapshot,
		TotalSeats:     available + reserved,
		AvailableSeats: available,
		ReservedSeats:  reserved,
	}, nil
}

func (s *service) GetAvailability(ctx context.Context) (*AvailabilityResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	available := s.allocator.Available()
	runs := s.allocator.LongestRuns()
	total := s.allocator.Config().TotalSeats()
	s.mu.Unlock()

	maxGroup := 0
	for _, run := range runs {
		if run > maxGroup {
			maxGroup = run
		}
	}

	return &AvailabilityResponse{
		TotalSeats:     total,
		AvailableSeats: available,
		ReservedSeats:  total - available,
		LongestRuns:    runs,
		MaxGroupInRow:  maxGroup,
	}, nil
}

func (s *service) ListReservations(ctx context.Context) ([]Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Reservation, len(s.history))
	for i, r := range s.history {
		out[i] = copyReservation(r)
	}
	return out, nil
}

func (s *service) LatestReservation(ctx context.Context) (*Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return nil, ErrNoReservation
	}
	latest := copyReservation(s.history[len(s.history)-1])
	return &latest, nil
}

func copyReservation(r Reservation) Reservation {
	seats := make([]int, len(r.Seats))
	copy(seats, r.Seats)
	r.Seats = seats
	return r
}
