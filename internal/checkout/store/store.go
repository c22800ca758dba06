package store

import (
	"context"

	"boxoffice/internal/checkout/models"
	id "boxoffice/pkg/domain"
)

// Store persists completed orders.
type Store interface {
	Save(ctx context.Context, session id.SessionID, order models.Order) error
	Get(ctx context.Context, orderID id.OrderID) (models.Order, error)
	ListBySession(ctx context.Context, session id.SessionID) ([]models.Order, error)
}
