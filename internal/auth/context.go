package auth

import (
	"context"

	"aptitude-quiz-service/internal/domain"
)

type sessionKey struct{}

// WithSession attaches an authenticated session to ctx.
func WithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session attached by WithSession.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(domain.Session)
	return session, ok
}
