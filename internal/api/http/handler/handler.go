package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/filedrop/internal/api/http/view"
	"github.com/dtroode/filedrop/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Signup(ctx context.Context, params model.SignupParams) (model.User, error)
	Login(ctx context.Context, identity, password string) (model.User, error)
	Resolve(ctx context.Context, userID uuid.UUID) (model.User, error)
}

// UploadService defines file upload operations.
type UploadService interface {
	Upload(ctx context.Context, params model.UploadParams) (model.Upload, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Upload, error)
	Open(ctx context.Context, userID, uploadID uuid.UUID) (model.Upload, io.ReadCloser, error)
}

// SessionManager starts and ends browser sessions and carries flash messages
// across redirects.
type SessionManager interface {
	Start(w http.ResponseWriter, user model.User) (model.Session, error)
	Clear(w http.ResponseWriter, r *http.Request) error
	SetFlash(w http.ResponseWriter, message string)
	PopFlash(w http.ResponseWriter, r *http.Request) (string, bool)
}

// Renderer writes HTML pages.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, page view.Page)
}

// pager builds page data shared by every handler.
type pager struct {
	sessions       SessionManager
	contextManager model.ContextManager
	renderer       Renderer
}

// render fills in the session and pending flash message before rendering.
func (p pager) render(w http.ResponseWriter, r *http.Request, status int, name string, page view.Page) {
	if session, ok := p.contextManager.GetSessionFromContext(r.Context()); ok {
		page.Authenticated = true
		page.Session = session
	}
	if msg, ok := p.sessions.PopFlash(w, r); ok {
		page.Flashes = append([]string{msg}, page.Flashes...)
	}

	p.renderer.Render(w, status, name, page)
}

// redirect sends the browser to url showing message on the next page.
func (p pager) redirect(w http.ResponseWriter, r *http.Request, url, message string) {
	if message != "" {
		p.sessions.SetFlash(w, message)
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
