package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"coachseat/internal/coach"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCounts(t *testing.T) {
	counts, err := parseCounts(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultCounts, counts)

	counts, err = parseCounts([]string{"2,5", "7"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 7}, counts)

	_, err = parseCounts([]string{"two"})
	assert.Error(t, err)
}

func TestSeedAll(t *testing.T) {
	allocator, err := coach.NewAllocator(coach.DefaultLayoutConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	seeder := &Seeder{
		service: coach.NewService(allocator, coach.DefaultMaxSeatsPerRequest, nil, nil),
		out:     &out,
	}
	require.NoError(t, seeder.SeedAll(context.Background(), []int{2, 5, 9}))

	text := out.String()
	assert.Contains(t, text, "2 seat(s): [1 2]")
	assert.Contains(t, text, "5 seat(s): [3 4 5 6 7]")
	assert.Contains(t, text, "9 seat(s): Please enter a number between 1 and 7")
	assert.Contains(t, text, "68 available, 12 reserved")
}

func TestRenderLayout(t *testing.T) {
	allocator, err := coach.NewAllocator(coach.DefaultLayoutConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	renderLayout(&out, allocator.Snapshot())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "  row  1 | 01 02 03 04 05 06 07", lines[0])
	assert.Equal(t, "  row  3 | 15 16 17 XX XX 20 21", lines[2])
	assert.Equal(t, "  row 12 | 78 79 80", lines[11])
}

func TestSeedLoggerIsQuiet(t *testing.T) {
	l := seedLogger()
	ctx := context.Background()

	assert.False(t, l.Enabled(ctx, slog.LevelInfo))
	assert.False(t, l.Enabled(ctx, slog.LevelWarn))
	assert.True(t, l.Enabled(ctx, slog.LevelError))
}
