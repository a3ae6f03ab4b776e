package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrSessionRequired indicates that no authenticated session was available.
var ErrSessionRequired = errors.New("session: authenticated session required")

// Session carries the identity established by an external auth layer: the
// authenticated subject, its organization, and the currently selected
// environment. Handlers receive it as explicit context rather than ambient
// framework state.
type Session struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	EnvironmentID  uuid.UUID
}

// Valid reports whether the session identifies both a user and an organization.
// The environment id may be empty for operations that do not target one.
func (s Session) Valid() bool {
	return s.UserID != uuid.Nil && s.OrganizationID != uuid.Nil
}

type contextKey struct{}

// WithSession returns a context carrying the provided session.
func WithSession(ctx context.Context, s Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext extracts the session established by the auth layer. It returns
// ErrSessionRequired when the context carries no valid session.
func FromContext(ctx context.Context) (Session, error) {
	if ctx == nil {
		return Session{}, ErrSessionRequired
	}
	s, ok := ctx.Value(contextKey{}).(Session)
	if !ok || !s.Valid() {
		return Session{}, ErrSessionRequired
	}
	return s, nil
}
