package testutil

import (
	"context"
	"net/http"
	"time"

	id "boxoffice/pkg/domain"
	"boxoffice/pkg/requestcontext"
)

// WithSessionID adds a session ID to the request context.
// This simulates what the session middleware would do for incoming requests.
// If the sessionID is not a valid UUID, it will not be added to the context.
func WithSessionID(req *http.Request, sessionID string) *http.Request {
	if parsed, err := id.ParseSessionID(sessionID); err == nil {
		return req.WithContext(requestcontext.WithSessionID(req.Context(), parsed))
	}
	return req
}

// WithRequestTime pins the request timestamp, letting tests control the clock
// seen through requestcontext.Now.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
