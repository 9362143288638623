package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/filedrop/internal/api/http/handler"
	"github.com/dtroode/filedrop/internal/api/http/middleware"
	"github.com/dtroode/filedrop/internal/api/http/session"
	"github.com/dtroode/filedrop/internal/logger"
	"github.com/dtroode/filedrop/internal/model"
)

// Options tunes request handling.
type Options struct {
	RequestTimeout time.Duration
	// MaxUploadBytes limits upload bodies; 0 disables the limit.
	MaxUploadBytes int64
	AllowedOrigins []string
}

// Router wires handlers and middleware into an HTTP handler.
type Router struct {
	authService    handler.AuthService
	uploadService  handler.UploadService
	pinger         model.Pinger
	sessions       *session.Manager
	renderer       handler.Renderer
	contextManager model.ContextManager
	opts           Options
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService handler.AuthService,
	uploadService handler.UploadService,
	pinger model.Pinger,
	sessions *session.Manager,
	renderer handler.Renderer,
	contextManager model.ContextManager,
	opts Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		uploadService:  uploadService,
		pinger:         pinger,
		sessions:       sessions,
		renderer:       renderer,
		contextManager: contextManager,
		opts:           opts,
		logger:         logger,
	}
}

// Register builds the route tree.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessions, r.authService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.sessions, r.contextManager, r.renderer, r.logger)
	uploadHandler := handler.NewUpload(r.uploadService, r.sessions, r.contextManager, r.renderer, r.logger)
	healthHandler := handler.NewHealth(r.pinger, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(logging.HandleHTTP)
	mux.Use(chimiddleware.Recoverer)
	if len(r.opts.AllowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	if r.opts.RequestTimeout > 0 {
		mux.Use(chimiddleware.Timeout(r.opts.RequestTimeout))
	}

	mux.Get("/healthz", healthHandler.Check)

	mux.Group(func(mux chi.Router) {
		mux.Use(authenticate.LoadSession)

		mux.Get("/", authHandler.Index)
		mux.Get("/signup", authHandler.SignupForm)
		mux.Post("/signup", authHandler.Signup)
		mux.Get("/login", authHandler.LoginForm)
		mux.Post("/login", authHandler.Login)

		mux.Group(func(mux chi.Router) {
			mux.Use(authenticate.RequireAuth)

			mux.Get("/dashboard", uploadHandler.Dashboard)
			mux.Get("/upload", uploadHandler.UploadForm)
			mux.With(r.limitBody).Post("/upload", uploadHandler.Upload)
			mux.Get("/uploads/{id}", uploadHandler.Download)
			mux.Get("/logout", authHandler.Logout)
			mux.Post("/logout", authHandler.Logout)
		})
	})

	return mux
}

func (r *Router) limitBody(next http.Handler) http.Handler {
	if r.opts.MaxUploadBytes <= 0 {
		return next
	}
	return chimiddleware.RequestSize(r.opts.MaxUploadBytes)(next)
}
