package service

import (
	"context"
	"sync"
)

// StoreTx provides a transactional boundary for order persistence.
// Implementations may wrap a database transaction or, in-memory, a coarse
// lock. The callback receives a context that downstream stores use to join
// the transaction.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type inMemoryStoreTx struct {
	mu sync.Mutex
}

func newInMemoryStoreTx() *inMemoryStoreTx {
	return &inMemoryStoreTx{}
}

func (t *inMemoryStoreTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
