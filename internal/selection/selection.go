// Package selection tracks the single focused seat per session and enforces
// the seat click rules: clicking the focused seat unselects it, clicking any
// other available seat moves the focus, and sold-out seats cannot take the
// focus.
package selection

import (
	"context"
	"sync"

	"boxoffice/internal/venue/models"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
)

// SeatReader resolves seats for validation.
type SeatReader interface {
	Seat(ctx context.Context, seatID id.SeatID) (models.BoundSeat, error)
}

// Service holds per-session seat focus.
type Service struct {
	seats SeatReader

	mu      sync.RWMutex
	focused map[id.SessionID]id.SeatID
}

// New creates a selection Service.
func New(seats SeatReader) *Service {
	return &Service{seats: seats, focused: make(map[id.SessionID]id.SeatID)}
}

// Toggle applies a seat click. It returns the seat and whether it ended up
// selected. Clicking the focused seat unselects it; a sold-out seat that is
// not already focused rejects the click.
func (s *Service) Toggle(ctx context.Context, session id.SessionID, seatID id.SeatID) (models.BoundSeat, bool, error) {
	seat, err := s.seats.Seat(ctx, seatID)
	if err != nil {
		return models.BoundSeat{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.focused[session]; ok && current == seatID {
		delete(s.focused, session)
		return seat, false, nil
	}

	if seat.Seat.SoldOut() {
		return models.BoundSeat{}, false, dErrors.Newf(dErrors.CodeInvalidState,
			"seat %s is sold out", seat.Seat.FullName)
	}

	s.focused[session] = seatID
	return seat, true, nil
}

// Unselect drops the session's focus. It is a no-op without one.
func (s *Service) Unselect(_ context.Context, session id.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.focused, session)
}

// Selected returns the focused seat, if any.
func (s *Service) Selected(ctx context.Context, session id.SessionID) (models.BoundSeat, bool, error) {
	s.mu.RLock()
	seatID, ok := s.focused[session]
	s.mu.RUnlock()
	if !ok {
		return models.BoundSeat{}, false, nil
	}

	seat, err := s.seats.Seat(ctx, seatID)
	if err != nil {
		return models.BoundSeat{}, false, err
	}
	return seat, true, nil
}

// FocusedSeatID returns the focused seat ID without resolving it.
func (s *Service) FocusedSeatID(session id.SessionID) (id.SeatID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seatID, ok := s.focused[session]
	return seatID, ok
}
