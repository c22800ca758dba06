// Package watcher sweeps expired reservations. A short fixed poll is
// deliberate: it keeps expiry correct across clock adjustments and long
// scheduler pauses, where a single deferred timer would drift.
package watcher

import (
	"context"
	"log/slog"
	"time"

	"boxoffice/internal/cart/store"
	"boxoffice/internal/event"
	"boxoffice/internal/platform/metrics"
	"boxoffice/pkg/requestcontext"
)

// DefaultInterval is the sweep cadence.
const DefaultInterval = time.Second

// Watcher clears lapsed reservations and notifies the event publisher.
type Watcher struct {
	carts     *store.MemoryStore
	publisher event.Publisher
	interval  time.Duration
	logger    *slog.Logger
	m         *metrics.Metrics
}

// New creates a Watcher. A zero interval falls back to the default.
func New(carts *store.MemoryStore, publisher event.Publisher, interval time.Duration, logger *slog.Logger, m *metrics.Metrics) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{carts: carts, publisher: publisher, interval: interval, logger: logger, m: m}
}

// Run sweeps until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Sweep(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Sweep clears every reservation lapsed at the context clock. Clearing is
// guarded by the reservation ID, so a sweep racing a session that already
// replaced its hold does nothing, and each expiry is reported once.
func (w *Watcher) Sweep(ctx context.Context) {
	now := requestcontext.Now(ctx)
	for _, expired := range w.carts.Expired(now) {
		if !w.carts.ClearIfReservation(expired.Session, expired.ReservationID) {
			continue
		}
		w.m.ReservationsExpired.Inc()
		w.logger.Info("reservation expired",
			"session_id", expired.Session,
			"reservation_id", expired.ReservationID,
		)
		if err := w.publisher.ReservationExpired(ctx, expired.Session, expired.ReservationID); err != nil {
			w.logger.Error("publish reservation expiry failed",
				"reservation_id", expired.ReservationID,
				"error", err,
			)
		}
	}
}
