package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"coachseat/internal/coach"
	"coachseat/internal/shared/config"
	"coachseat/pkg/logger"
)

// Seeder replays a list of group sizes against a fresh coach and prints the
// seats each group receives. Nothing is persisted; the run shows how the
// configured layout fills up.
type Seeder struct {
	service coach.Service
	out     io.Writer
}

func main() {
	fmt.Println("🌱 Starting Coach Seat Seeder...")

	cfg := config.Load()
	logger.SetDefault(seedLogger())

	layout, err := cfg.CoachLayout()
	if err != nil {
		log.Fatalf("Invalid coach configuration: %v", err)
	}

	allocator, err := coach.NewAllocator(layout)
	if err != nil {
		log.Fatalf("Failed to build coach: %v", err)
	}

	counts, err := parseCounts(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid group sizes: %v", err)
	}

	seeder := &Seeder{
		service: coach.NewService(allocator, cfg.Coach.MaxSeatsPerRequest, nil, nil),
		out:     os.Stdout,
	}

	fmt.Printf("\n🚆 Coach %s: %d seats\n", layout.Name, layout.TotalSeats())
	if err := seeder.SeedAll(context.Background(), counts); err != nil {
		log.Fatalf("Failed to seed coach: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed!")
}

// seedLogger only reports errors so the replay output stays readable
func seedLogger() *logger.Logger {
	return logger.NewWithOptions("error", false)
}

// defaultCounts is used when no group sizes are passed on the command line
var defaultCounts = []int{2, 5, 7, 3, 4, 1, 6, 7, 7}

func parseCounts(args []string) ([]int, error) {
	if len(args) == 0 {
		return defaultCounts, nil
	}

	counts := make([]int, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("%q is not a number", part)
			}
			counts = append(counts, n)
		}
	}
	return counts, nil
}

// SeedAll reserves every group in order and prints the final layout
func (s *Seeder) SeedAll(ctx context.Context, counts []int) error {
	for _, count := range counts {
		result, err := s.service.Reserve(ctx, coach.ReserveRequest{Count: count})
		if err != nil {
			return fmt.Errorf("failed to reserve %d seats: %w", count, err)
		}

		if result.Outcome.IsSuccess() {
			note := ""
			if result.Reservation.Scattered {
				note = " (scattered)"
			}
			fmt.Fprintf(s.out, "  ✅ %d seat(s): %v%s\n", count, result.Reservation.Seats, note)
			continue
		}
		fmt.Fprintf(s.out, "  ❌ %d seat(s): %s\n", count, result.Message)
	}

	layout, err := s.service.GetLayout(ctx)
	if err != nil {
		return fmt.Errorf("failed to get layout: %w", err)
	}

	fmt.Fprintf(s.out, "\n📋 %d available, %d reserved\n", layout.AvailableSeats, layout.ReservedSeats)
	renderLayout(s.out, layout.Snapshot)
	return nil
}

// renderLayout prints one line per row. Reserved seats are shown as XX.
func renderLayout(w io.Writer, snapshot coach.Snapshot) {
	for r, row := range snapshot.Rows {
		cells := make([]string, len(row))
		for c, seat := range row {
			if seat.Status == coach.SeatReserved {
				cells[c] = "XX"
			} else {
				cells[c] = fmt.Sprintf("%02d", seat.Number)
			}
		}
		fmt.Fprintf(w, "  row %2d | %s\n", r+1, strings.Join(cells, " "))
	}
}
