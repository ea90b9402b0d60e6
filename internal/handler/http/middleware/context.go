package middleware

import (
	"context"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
)

type principalKey struct{}

type sessionIDKey struct{}

func WithPrincipal(ctx context.Context, sessionID string, principal auth.Principal) context.Context {
	ctx = context.WithValue(ctx, sessionIDKey{}, sessionID)
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFromContext returns the caller set by SessionRequired.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(auth.Principal)
	return p, ok
}

func SessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey{}).(string)
	return sid
}
