package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "boxoffice/pkg/domain"
)

func TestSessionID(t *testing.T) {
	ctx := context.Background()
	assert.True(t, SessionID(ctx).IsNil())

	session := id.NewSessionID()
	assert.Equal(t, session, SessionID(WithSessionID(ctx, session)))
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Equal(t, "req-123", RequestID(WithRequestID(ctx, "req-123")))
}

func TestNow(t *testing.T) {
	fixed := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))

	// Without an injected time the wall clock applies.
	before := time.Now()
	got := Now(context.Background())
	assert.False(t, got.Before(before))
}
