// Package store holds per-session cart state. All mutations on one session
// run under the store mutex, which is what serializes concurrent cart calls.
package store

import (
	"sync"
	"time"

	"boxoffice/internal/cart/models"
	id "boxoffice/pkg/domain"
)

// MemoryStore keeps carts in memory, keyed by session.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[id.SessionID]*models.Cart
}

// NewMemory creates an empty cart store.
func NewMemory() *MemoryStore {
	return &MemoryStore{carts: make(map[id.SessionID]*models.Cart)}
}

// Update runs fn against the session's cart under the store lock. The cart
// is created on first use. If fn returns an error the cart keeps whatever
// state fn left it in, so fn must mutate only on its success path.
func (s *MemoryStore) Update(session id.SessionID, fn func(cart *models.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[session]
	if !ok {
		cart = &models.Cart{}
		s.carts[session] = cart
	}
	return fn(cart)
}

// View runs fn against a snapshot of the session's cart.
func (s *MemoryStore) View(session id.SessionID, fn func(cart models.Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[session]
	if !ok {
		fn(models.Cart{})
		return
	}
	snapshot := models.Cart{Items: append([]models.CartedItem(nil), cart.Items...)}
	if cart.Reservation != nil {
		r := *cart.Reservation
		snapshot.Reservation = &r
	}
	fn(snapshot)
}

// ExpiredReservation identifies one lapsed hold.
type ExpiredReservation struct {
	Session       id.SessionID
	ReservationID id.ReservationID
}

// Expired lists all reservations lapsed at the given instant.
func (s *MemoryStore) Expired(now time.Time) []ExpiredReservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expired []ExpiredReservation
	for session, cart := range s.carts {
		if cart.Reservation != nil && cart.Reservation.Expired(now) {
			expired = append(expired, ExpiredReservation{
				Session:       session,
				ReservationID: cart.Reservation.ReservationID,
			})
		}
	}
	return expired
}

// ClearIfReservation empties the session's cart only while the given
// reservation is still the active one. This keeps expiry idempotent when a
// session replaced its hold between observation and sweep.
func (s *MemoryStore) ClearIfReservation(session id.SessionID, reservationID id.ReservationID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[session]
	if !ok || cart.Reservation == nil || cart.Reservation.ReservationID != reservationID {
		return false
	}
	cart.Reservation = nil
	cart.Items = nil
	return true
}
