package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/platform/logger"
	"boxoffice/internal/platform/metrics"
	"boxoffice/internal/venue/models"
	"boxoffice/internal/venue/store"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
)

func newService(t *testing.T, venue *models.Venue) *Service {
	t.Helper()
	return New(store.NewMemory(venue), logger.NewNop(), metrics.NewWith(prometheus.NewRegistry()))
}

func TestVenue(t *testing.T) {
	seeded := store.SeedVenue()
	svc := newService(t, seeded)

	venue, err := svc.Venue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seeded.VenueID, venue.VenueID)
	assert.Len(t, venue.Categories, 3)
	assert.Len(t, venue.Tickets, 3)
}

func TestVenue_NotConfigured(t *testing.T) {
	svc := newService(t, nil)

	_, err := svc.Venue(context.Background())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestSeatMap(t *testing.T) {
	seeded := store.SeedVenue()
	svc := newService(t, seeded)

	res, err := svc.SeatMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(seeded.Seats), res.Seats.Len())
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "#292929", res.Background)
}

func TestSeatMap_DefaultsApply(t *testing.T) {
	venue := store.SeedVenue()
	venue.Drawing = `<svg xmlns="http://www.w3.org/2000/svg"></svg>`
	svc := newService(t, venue)

	res, err := svc.SeatMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultDrawingWidth), res.Width)
	assert.Equal(t, float64(DefaultDrawingHeight), res.Height)
	assert.Equal(t, DefaultBackground, res.Background)
	assert.Equal(t, 0, res.Seats.Len())
}

func TestSeat(t *testing.T) {
	seeded := store.SeedVenue()
	svc := newService(t, seeded)

	var target models.Seat
	for _, s := range seeded.Seats {
		if s.FullName == "B7" {
			target = s
			break
		}
	}
	require.False(t, target.SeatID.IsNil())

	seat, err := svc.Seat(context.Background(), target.SeatID)
	require.NoError(t, err)
	assert.Equal(t, "B7", seat.Seat.FullName)
	assert.Equal(t, "Middle", seat.Category.Name)
	assert.NotEmpty(t, seat.Tickets)

	_, err = svc.Seat(context.Background(), id.NewSeatID())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestResolve_CacheInvalidatedByNewVenue(t *testing.T) {
	first := store.SeedVenue()
	memory := store.NewMemory(first)
	svc := New(memory, logger.NewNop(), metrics.NewWith(prometheus.NewRegistry()))

	_, err := svc.SeatMap(context.Background())
	require.NoError(t, err)

	// A replaced venue payload must rebuild the resolver, not serve the
	// cached one.
	second := store.SeedVenue()
	memory.Replace(second)

	seat, err := svc.Seat(context.Background(), second.Seats[0].SeatID)
	require.NoError(t, err)
	assert.Equal(t, second.Seats[0].SeatID, seat.Seat.SeatID)

	_, err = svc.Seat(context.Background(), first.Seats[0].SeatID)
	require.Error(t, err, "seats of the replaced payload are gone")
}

func TestResolve_RefetchWithSameVenueIDReplacesPayload(t *testing.T) {
	first := store.SeedVenue()
	memory := store.NewMemory(first)
	svc := New(memory, logger.NewNop(), metrics.NewWith(prometheus.NewRegistry()))

	target := first.Seats[0]
	seat, err := svc.Seat(context.Background(), target.SeatID)
	require.NoError(t, err)
	require.Positive(t, seat.Seat.CapacityLeft)

	// Same venue ID, but the refetched payload says the seat sold out in
	// the meantime. The stale index must not survive the refetch.
	second := *first
	second.Seats = append([]models.Seat(nil), first.Seats...)
	second.Seats[0].CapacityLeft = 0
	memory.Replace(&second)

	seat, err = svc.Seat(context.Background(), target.SeatID)
	require.NoError(t, err)
	assert.Zero(t, seat.Seat.CapacityLeft)
	assert.True(t, seat.Seat.SoldOut())
}

func TestSeatMap_DiagnosticsDoNotFail(t *testing.T) {
	venue := store.SeedVenue()
	venue.Drawing = `<svg fill="none"><g id="seats:x"><rect id="seat:Z+99"/></g></svg>`
	svc := newService(t, venue)

	res, err := svc.SeatMap(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "seat:Z+99", res.Diagnostics[0].NodeID)
}
