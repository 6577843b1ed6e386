// Package session resolves the authenticated identity for the current
// request. The sync layer treats authentication as an opaque precondition;
// the auth middleware verifies credentials and plants the uid here.
package session

import "context"

type contextKey struct{}

var userIDKey contextKey

// Resolver exposes the current identity, when one is present.
type Resolver interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// WithUserID returns a context carrying the authenticated uid.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

// FromContext reads back the uid placed by WithUserID.
func FromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userIDKey).(string)
	return uid, ok && uid != ""
}

// ContextResolver resolves identity from the request context.
type ContextResolver struct{}

func (ContextResolver) CurrentUserID(ctx context.Context) (string, bool) {
	return FromContext(ctx)
}

// Static resolves to a fixed uid. For tests and local tooling.
type Static string

func (s Static) CurrentUserID(ctx context.Context) (string, bool) {
	return string(s), s != ""
}
