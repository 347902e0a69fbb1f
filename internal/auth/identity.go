package auth

import (
	"context"
)

// Identity is the acting identity resolved from a verified bearer token.
type Identity struct {
	UID   string
	Email string
	Name  string
}

type contextKey struct{}

// WithIdentity returns a context carrying the acting identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the acting identity, if any. Use-case authorization
// checks depend on this being set only by the auth middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok && id.UID != ""
}
