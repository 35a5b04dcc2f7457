package auth

import "context"

// Identity is the authenticated caller of a request.
type Identity struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by the permission middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// Actor returns the caller email for audit records, or "system" when the
// context carries no identity.
func Actor(ctx context.Context) string {
	if id, ok := FromContext(ctx); ok && id.Email != "" {
		return id.Email
	}
	return "system"
}
