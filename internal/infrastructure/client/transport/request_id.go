package transport

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// HeaderRequestID carries the correlation id on partner calls.
const HeaderRequestID = "X-Request-Id"

// RequestID returns the inbound request id set by the router middleware, or
// a fresh one for calls made outside a request.
func RequestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
