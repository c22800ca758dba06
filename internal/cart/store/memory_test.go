package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/cart/models"
	id "boxoffice/pkg/domain"
)

func withReservation(t *testing.T, s *MemoryStore, session id.SessionID, until time.Time) id.ReservationID {
	t.Helper()
	reservationID := id.NewReservationID()
	err := s.Update(session, func(cart *models.Cart) error {
		cart.Reservation = &models.Reservation{ReservationID: reservationID, ReservedUntil: until}
		cart.Items = []models.CartedItem{{CartedItemID: id.NewCartedItemID()}}
		return nil
	})
	require.NoError(t, err)
	return reservationID
}

func TestUpdate_CreatesCartOnFirstUse(t *testing.T) {
	s := NewMemory()
	session := id.NewSessionID()

	err := s.Update(session, func(cart *models.Cart) error {
		assert.Empty(t, cart.Items)
		assert.Nil(t, cart.Reservation)
		return nil
	})
	require.NoError(t, err)
}

func TestView_SnapshotIsolation(t *testing.T) {
	s := NewMemory()
	session := id.NewSessionID()
	withReservation(t, s, session, time.Now().Add(time.Minute))

	var snapshot models.Cart
	s.View(session, func(cart models.Cart) { snapshot = cart })

	// Mutating the snapshot must not leak back into the store.
	snapshot.Items[0].CartedItemID = id.NewCartedItemID()
	snapshot.Reservation.ReservationID = id.NewReservationID()

	var fresh models.Cart
	s.View(session, func(cart models.Cart) { fresh = cart })
	assert.NotEqual(t, snapshot.Items[0].CartedItemID, fresh.Items[0].CartedItemID)
	assert.NotEqual(t, snapshot.Reservation.ReservationID, fresh.Reservation.ReservationID)
}

func TestExpired(t *testing.T) {
	s := NewMemory()
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

	lapsed := id.NewSessionID()
	lapsedID := withReservation(t, s, lapsed, now.Add(-time.Second))
	boundary := id.NewSessionID()
	boundaryID := withReservation(t, s, boundary, now)
	active := id.NewSessionID()
	withReservation(t, s, active, now.Add(time.Minute))

	expired := s.Expired(now)
	require.Len(t, expired, 2)

	got := map[id.SessionID]id.ReservationID{}
	for _, e := range expired {
		got[e.Session] = e.ReservationID
	}
	// A hold lapses exactly at its deadline.
	assert.Equal(t, lapsedID, got[lapsed])
	assert.Equal(t, boundaryID, got[boundary])
}

func TestClearIfReservation(t *testing.T) {
	s := NewMemory()
	session := id.NewSessionID()
	reservationID := withReservation(t, s, session, time.Now())

	// A stale reservation ID does not clear the cart.
	assert.False(t, s.ClearIfReservation(session, id.NewReservationID()))
	var cart models.Cart
	s.View(session, func(c models.Cart) { cart = c })
	assert.NotEmpty(t, cart.Items)

	assert.True(t, s.ClearIfReservation(session, reservationID))
	s.View(session, func(c models.Cart) { cart = c })
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.Reservation)

	// A second sweep with the same ID is a no-op.
	assert.False(t, s.ClearIfReservation(session, reservationID))
	assert.False(t, s.ClearIfReservation(id.NewSessionID(), reservationID))
}
