package httpx

import (
	"context"
)

// visitorKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type visitorKey struct{}

// SetVisitorInContext returns a child context that carries the visitor id.
// If id is empty, the original ctx is returned unchanged.
func SetVisitorInContext(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, visitorKey{}, id)
}

// GetVisitorFromContext returns the visitor id and a boolean indicating presence.
func GetVisitorFromContext(ctx context.Context) (string, bool) {
	if id, ok := ctx.Value(visitorKey{}).(string); ok && id != "" {
		return id, true
	}
	return "", false
}

// VisitorID returns the visitor id from context or "".
func VisitorID(ctx context.Context) string {
	id, _ := GetVisitorFromContext(ctx)
	return id
}
