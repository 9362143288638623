package context

import (
	"context"

	"github.com/dtroode/filedrop/internal/model"
)

type sessionKey struct{}

// Manager keeps the authenticated session of an HTTP request in its context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetSessionToContext returns a copy of ctx carrying the session.
func (m *Manager) SetSessionToContext(ctx context.Context, session model.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session stored by SetSessionToContext.
// The boolean is false for anonymous requests.
func (m *Manager) GetSessionFromContext(ctx context.Context) (model.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(model.Session)
	if !ok {
		return model.Session{}, false
	}

	return session, true
}
