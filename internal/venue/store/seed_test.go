package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/venue/binding"
	"boxoffice/internal/venue/models"
)

func TestSeedVenue_BindsCompletely(t *testing.T) {
	venue := SeedVenue()
	r := binding.NewResolver(venue)

	res, err := r.Bind(venue.Drawing, binding.Defaults{Width: 800, Height: 600, Background: "#292929"})
	require.NoError(t, err)

	// Every seeded seat has exactly one node in the generated drawing.
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, len(venue.Seats), res.Seats.Len())

	// The drawing carries its own size; the defaults must not leak through.
	assert.Equal(t, float64(18*seatPitch+2*blockGap), res.Width)
	assert.Greater(t, res.Height, res.Width/2)

	// Root fill is none, so the caller's background applies.
	assert.Equal(t, "#292929", res.Background)
}

func TestSeedVenue_Pricing(t *testing.T) {
	venue := SeedVenue()
	r := binding.NewResolver(venue)

	seatByName := make(map[string]models.Seat, len(venue.Seats))
	for _, s := range venue.Seats {
		seatByName[s.FullName] = s
	}

	b7, err := r.ProjectSeat(seatByName["B7"])
	require.NoError(t, err)
	assert.Equal(t, "Middle", b7.Category.Name)
	require.Len(t, b7.Tickets, 2)
	assert.Equal(t, "VIP+ Ticket", b7.Tickets[0].Name)
	assert.Equal(t, int64(3990_00), b7.Tickets[0].Price)
	assert.Equal(t, "VIP Ticket", b7.Tickets[1].Name)
	assert.Equal(t, int64(2990_00), b7.Tickets[1].Price)

	// Side seats sell the regular ticket at the side rate, below base price.
	d3, err := r.ProjectSeat(seatByName["D3"])
	require.NoError(t, err)
	assert.Equal(t, "Side", d3.Category.Name)
	require.Len(t, d3.Tickets, 1)
	assert.Equal(t, int64(1490_00), d3.Tickets[0].Price)

	j10, err := r.ProjectSeat(seatByName["J10"])
	require.NoError(t, err)
	assert.Equal(t, "Balcony", j10.Category.Name)
	assert.Equal(t, int64(990_00), j10.Tickets[0].Price)
}

func TestSeedVenue_SoldOutSeats(t *testing.T) {
	venue := SeedVenue()

	var soldOut int
	for _, s := range venue.Seats {
		if s.SoldOut() {
			soldOut++
			assert.Equal(t, 0, s.Place%4, "only every fourth balcony place is sold out, got %s", s.FullName)
		}
	}
	// 5 balcony rows with places 4, 8, 12, 16 and 20 taken.
	assert.Equal(t, 25, soldOut)
}
