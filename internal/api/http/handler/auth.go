package handler

import (
	"net/http"

	"github.com/dtroode/filedrop/internal/api/http/view"
	"github.com/dtroode/filedrop/internal/logger"
	"github.com/dtroode/filedrop/internal/model"
)

// Auth handles landing, signup, login and logout pages.
type Auth struct {
	pager
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService AuthService,
	sessions SessionManager,
	contextManager model.ContextManager,
	renderer Renderer,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		pager: pager{
			sessions:       sessions,
			contextManager: contextManager,
			renderer:       renderer,
		},
		authService: authService,
		logger:      logger,
	}
}

// Index sends authenticated users to their dashboard and renders the landing
// page for everyone else.
func (h *Auth) Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.contextManager.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, view.PageIndex, view.Page{Title: "Welcome"})
}

// SignupForm renders the registration form.
func (h *Auth) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageSignup, view.Page{Title: "Sign up"})
}

// Signup creates a user and redirects to the login page.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	params := model.SignupParams{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	h.logger.Debug("Auth handler: processing signup request",
		"username", params.Username)

	_, err := h.authService.Signup(r.Context(), params)
	if err != nil {
		status, msg := handleError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Auth handler: signup failed",
				"username", params.Username,
				"error", err.Error())
		}
		h.render(w, r, status, view.PageSignup, view.Page{
			Title:   "Sign up",
			Flashes: []string{msg},
			Form:    map[string]string{"username": params.Username, "email": params.Email},
		})
		return
	}

	h.logger.Info("Auth handler: signup completed",
		"username", params.Username)

	h.redirect(w, r, "/login", msgSignupSuccess)
}

// LoginForm renders the login form.
func (h *Auth) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageLogin, view.Page{Title: "Login"})
}

// Login starts a session for valid credentials. The username field accepts
// either the username or the email address.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	identity := r.PostFormValue("username")

	user, err := h.authService.Login(r.Context(), identity, r.PostFormValue("password"))
	if err != nil {
		status, msg := handleError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Auth handler: login failed",
				"identity", identity,
				"error", err.Error())
		}
		h.render(w, r, status, view.PageLogin, view.Page{
			Title:   "Login",
			Flashes: []string{msg},
			Form:    map[string]string{"username": identity},
		})
		return
	}

	if _, err := h.sessions.Start(w, user); err != nil {
		h.logger.Error("Auth handler: failed to start session",
			"user_id", user.ID,
			"error", err.Error())
		h.render(w, r, http.StatusInternalServerError, view.PageLogin, view.Page{
			Title:   "Login",
			Flashes: []string{msgInternal},
		})
		return
	}

	h.logger.Info("Auth handler: login completed",
		"user_id", user.ID)

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout ends the session and returns to the landing page.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.logger.Error("Auth handler: failed to revoke session",
			"error", err.Error())
	}

	h.redirect(w, r, "/", msgLoggedOut)
}
