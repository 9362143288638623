package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/filedrop/internal/logger"
	"github.com/dtroode/filedrop/internal/model"
)

// SessionStore resolves and ends the session carried by a request.
type SessionStore interface {
	Current(r *http.Request) (model.Session, bool)
	Clear(w http.ResponseWriter, r *http.Request) error
}

// UserResolver looks up the account behind a session.
type UserResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (model.User, error)
}

// Authenticate resolves session cookies and guards protected routes.
type Authenticate struct {
	sessions       SessionStore
	users          UserResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(
	sessions SessionStore,
	users UserResolver,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		sessions:       sessions,
		users:          users,
		contextManager: contextManager,
		logger:         logger,
	}
}

// LoadSession puts a valid session into the request context. Requests
// without one pass through anonymously.
func (m *Authenticate) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := m.sessions.Current(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := m.contextManager.SetSessionToContext(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth redirects anonymous requests to the login page. Sessions of
// users that no longer exist are cleared first. It expects LoadSession
// earlier in the chain.
func (m *Authenticate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := m.contextManager.GetSessionFromContext(r.Context())
		if !ok {
			m.logger.Debug("Authenticate middleware: anonymous access to protected route",
				"path", r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		_, err := m.users.Resolve(r.Context(), session.UserID)
		if errors.Is(err, model.ErrSessionRevoked) {
			if err := m.sessions.Clear(w, r); err != nil {
				m.logger.Error("Authenticate middleware: failed to clear session",
					"user_id", session.UserID,
					"error", err.Error())
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err != nil {
			// The token itself is valid; let the handler report the outage.
			m.logger.Warn("Authenticate middleware: failed to resolve user",
				"user_id", session.UserID,
				"error", err.Error())
		}

		next.ServeHTTP(w, r)
	})
}
