package coach

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the Prometheus collectors exported by the reservation service.
type Metrics struct {
	Requests             *prometheus.CounterVec
	SeatsReserved        prometheus.Counter
	AvailableSeats       prometheus.Gauge
	ScatterAllocations   prometheus.Counter
	NotificationFailures prometheus.Counter
}

// NewMetrics registers the collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coach",
			Name:      "reservation_requests_total",
			Help:      "Reservation requests by outcome.",
		}, []string{"outcome"}),
		SeatsReserved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "coach",
			Name:      "seats_reserved_total",
			Help:      "Seats reserved since start.",
		}),
		AvailableSeats: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "coach",
			Name:      "available_seats",
			Help:      "Seats that can still be reserved.",
		}),
		ScatterAllocations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "coach",
			Name:      "reservation_scatter_total",
			Help:      "Reservations that could not be seated in a single row.",
		}),
		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "coach",
			Name:      "notification_failures_total",
			Help:      "Reservation events the notifier failed to deliver.",
		}),
	}
}

func (m *Metrics) request(outcome Outcome) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(outcome.String()).Inc()
}

func (m *Metrics) reserved(seats int, scattered bool) {
	if m == nil {
		return
	}
	m.SeatsReserved.Add(float64(seats))
	if scattered {
		m.ScatterAllocations.Inc()
	}
}

func (m *Metrics) available(n int) {
	if m == nil {
		return
	}
	m.AvailableSeats.Set(float64(n))
}

func (m *Metrics) notificationFailed() {
	if m == nil {
		return
	}
	m.NotificationFailures.Inc()
}
