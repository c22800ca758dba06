package store

import (
	"context"
	"sync"

	"boxoffice/internal/checkout/models"
	id "boxoffice/pkg/domain"
	"boxoffice/pkg/platform/sentinel"
)

// MemoryStore keeps orders in memory.
type MemoryStore struct {
	mu        sync.RWMutex
	orders    map[id.OrderID]models.Order
	bySession map[id.SessionID][]id.OrderID
}

// NewMemory creates an empty order store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		orders:    make(map[id.OrderID]models.Order),
		bySession: make(map[id.SessionID][]id.OrderID),
	}
}

func (s *MemoryStore) Save(_ context.Context, session id.SessionID, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.OrderID]; exists {
		return sentinel.ErrConflict
	}
	s.orders[order.OrderID] = order
	s.bySession[session] = append(s.bySession[session], order.OrderID)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, orderID id.OrderID) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, sentinel.ErrNotFound
	}
	return order, nil
}

func (s *MemoryStore) ListBySession(_ context.Context, session id.SessionID) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orderIDs := s.bySession[session]
	orders := make([]models.Order, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		orders = append(orders, s.orders[orderID])
	}
	return orders, nil
}
