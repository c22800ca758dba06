package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"boxoffice/internal/platform/metrics"
	"boxoffice/internal/venue/binding"
	"boxoffice/internal/venue/models"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/platform/sentinel"
)

// Drawing defaults used when the venue drawing does not specify its own
// size or background, taken from the seating-map host.
const (
	DefaultDrawingWidth  = 800
	DefaultDrawingHeight = 600
	DefaultBackground    = "#292929"
)

// Store loads the venue payload.
type Store interface {
	Get(ctx context.Context) (*models.Venue, error)
}

// Service serves the venue, its bound seat map and single-seat projections.
type Service struct {
	store  Store
	logger *slog.Logger
	m      *metrics.Metrics

	mu       sync.Mutex
	resolved *resolved
}

// resolved caches the binding work for one venue payload.
type resolved struct {
	venue    *models.Venue
	resolver *binding.Resolver
	seatByID map[id.SeatID]models.Seat
}

// New creates a venue Service.
func New(store Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, logger: logger, m: m}
}

// Venue returns the raw venue payload.
func (s *Service) Venue(ctx context.Context) (*models.Venue, error) {
	r, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return r.venue, nil
}

// SeatMap binds the venue drawing and returns the annotated tree, the seat
// index and any recoverable diagnostics.
func (s *Service) SeatMap(ctx context.Context) (*binding.Result, error) {
	r, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}

	res, err := r.resolver.Bind(r.venue.Drawing, binding.Defaults{
		Width:      DefaultDrawingWidth,
		Height:     DefaultDrawingHeight,
		Background: DefaultBackground,
	})
	if err != nil {
		return nil, err
	}
	if n := len(res.Diagnostics); n > 0 {
		s.m.BindingDiagnostics.Add(float64(n))
		s.logger.Warn("seat map bound with diagnostics", "count", n)
	}
	return res, nil
}

// Seat returns the bound projection of a single seat.
func (s *Service) Seat(ctx context.Context, seatID id.SeatID) (models.BoundSeat, error) {
	r, err := s.resolve(ctx)
	if err != nil {
		return models.BoundSeat{}, err
	}
	seat, ok := r.seatByID[seatID]
	if !ok {
		return models.BoundSeat{}, dErrors.Newf(dErrors.CodeNotFound, "seat %s not found", seatID)
	}
	return r.resolver.ProjectSeat(seat)
}

// resolve loads the venue and reuses the indexed resolver while the store
// keeps returning the same payload instance. A refetched payload replaces
// the cached one wholesale even when the venue ID is unchanged.
func (s *Service) resolve(ctx context.Context) (*resolved, error) {
	venue, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no venue configured")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeTransient, "load venue")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolved != nil && s.resolved.venue == venue {
		return s.resolved, nil
	}

	seatByID := make(map[id.SeatID]models.Seat, len(venue.Seats))
	for _, seat := range venue.Seats {
		seatByID[seat.SeatID] = seat
	}
	s.resolved = &resolved{
		venue:    venue,
		resolver: binding.NewResolver(venue),
		seatByID: seatByID,
	}
	return s.resolved, nil
}
