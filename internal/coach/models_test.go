package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *LayoutConfig)
		wantErr bool
	}{
		{name: "default", mutate: func(c *LayoutConfig) {}},
		{name: "no seeds", mutate: func(c *LayoutConfig) { c.Seeds = nil }},
		{name: "single full row", mutate: func(c *LayoutConfig) {
			c.TotalRows, c.LastRowSeats, c.Seeds = 1, 7, nil
		}},
		{name: "zero rows", mutate: func(c *LayoutConfig) { c.TotalRows = 0 }, wantErr: true},
		{name: "zero seats per row", mutate: func(c *LayoutConfig) { c.SeatsPerRow = 0 }, wantErr: true},
		{name: "empty last row", mutate: func(c *LayoutConfig) { c.LastRowSeats = 0 }, wantErr: true},
		{name: "last row wider than others", mutate: func(c *LayoutConfig) { c.LastRowSeats = 8 }, wantErr: true},
		{name: "seed past last row", mutate: func(c *LayoutConfig) {
			c.Seeds = append(c.Seeds, Position{Row: 12, Column: 0})
		}, wantErr: true},
		{name: "seed past short last row", mutate: func(c *LayoutConfig) {
			c.Seeds = append(c.Seeds, Position{Row: 11, Column: 3})
		}, wantErr: true},
		{name: "negative seed column", mutate: func(c *LayoutConfig) {
			c.Seeds = append(c.Seeds, Position{Row: 0, Column: -1})
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultLayoutConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLayout)
				_, buildErr := NewAllocator(cfg)
				assert.ErrorIs(t, buildErr, ErrInvalidLayout)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTotalSeats(t *testing.T) {
	assert.Equal(t, 80, DefaultLayoutConfig().TotalSeats())
	assert.Equal(t, 6, LayoutConfig{TotalRows: 2, SeatsPerRow: 3, LastRowSeats: 3}.TotalSeats())
}

func TestEnums(t *testing.T) {
	assert.True(t, SeatAvailable.IsValid())
	assert.True(t, SeatReserved.IsValid())
	assert.False(t, SeatStatus("BROKEN").IsValid())

	assert.True(t, OutcomeSuccess.IsSuccess())
	assert.False(t, OutcomeNoCapacity.IsSuccess())
	assert.Equal(t, "invalid_request", OutcomeInvalidRequest.String())
}
