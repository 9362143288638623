package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dtroode/filedrop/internal/logger"
	"github.com/dtroode/filedrop/internal/model"
)

const flashSuffix = "_flash"

// Options configures the session cookie.
type Options struct {
	CookieName string
	Secure     bool
}

// Manager keeps the authenticated identity of a browser in a signed cookie.
type Manager struct {
	tokens     model.TokenManager
	revoker    model.SessionRevoker
	cookieName string
	secure     bool
	logger     *logger.Logger
}

// NewManager creates a session manager. A nil revoker falls back to an in
// memory one.
func NewManager(
	tokens model.TokenManager,
	revoker model.SessionRevoker,
	opts Options,
	logger *logger.Logger,
) *Manager {
	if revoker == nil {
		revoker = NewMemoryRevoker()
	}
	return &Manager{
		tokens:     tokens,
		revoker:    revoker,
		cookieName: opts.CookieName,
		secure:     opts.Secure,
		logger:     logger,
	}
}

// Start marks the browser as authenticated as user.
func (m *Manager) Start(w http.ResponseWriter, user model.User) (model.Session, error) {
	token, session, err := m.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return session, nil
}

// Current returns the session of the request. It reports false for missing,
// tampered, expired and revoked cookies.
func (m *Manager) Current(r *http.Request) (model.Session, bool) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return model.Session{}, false
	}

	session, err := m.tokens.Parse(cookie.Value)
	if err != nil {
		m.logger.Debug("Session manager: rejected session cookie",
			"error", err.Error())
		return model.Session{}, false
	}

	revoked, err := m.revoker.IsRevoked(r.Context(), session.TokenID)
	if err != nil {
		m.logger.Error("Session manager: failed to check revocation",
			"token_id", session.TokenID,
			"error", err.Error())
		return model.Session{}, false
	}
	if revoked {
		return model.Session{}, false
	}

	return session, true
}

// Clear ends the session: the cookie is expired and its token revoked so a
// copy of it is no longer accepted.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	m.expire(w, m.cookieName)

	session, ok := m.Current(r)
	if !ok {
		return nil
	}

	err := m.revoker.Revoke(r.Context(), session.TokenID, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

// SetFlash stores a message shown once on the next rendered page.
func (m *Manager) SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName + flashSuffix,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash message and removes it.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.cookieName + flashSuffix)
	if err != nil {
		return "", false
	}
	m.expire(w, cookie.Name)

	message, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil || len(message) == 0 {
		return "", false
	}

	return string(message), true
}

func (m *Manager) expire(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// MemoryRevoker keeps revoked token ids in process memory. It serves single
// instance deployments that run without Redis.
type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}
	if until.After(now) {
		m.revoked[tokenID] = until
	}
	return nil
}

func (m *MemoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[tokenID]
	return ok && exp.After(m.now()), nil
}
