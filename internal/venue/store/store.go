package store

import (
	"context"

	"boxoffice/internal/venue/models"
)

// Store loads the venue payload. A deployment serves exactly one venue.
type Store interface {
	Get(ctx context.Context) (*models.Venue, error)
}
