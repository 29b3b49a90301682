// Package adapthttp is the driving HTTP adapter of the exercise tracker.
package adapthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"exercisetracker/internal/app"
)

// Handler names used in log entries.
const (
	handlerListUsers   = "GET /api/users"
	handlerCreateUser  = "POST /api/users"
	handlerAddExercise = "POST /api/users/{id}/exercises"
	handlerGetLogs     = "GET /api/users/{id}/logs"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	users     *app.UserService
	exercises *app.ExerciseService
	logs      *app.LogService
	logger    *zap.SugaredLogger
	publicDir string
	viewsDir  string
	timeout   time.Duration
}

// New creates a Server wired to the given application services.
func New(us *app.UserService, es *app.ExerciseService, ls *app.LogService, logger *zap.SugaredLogger, publicDir, viewsDir string) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{
		users:     us,
		exercises: es,
		logs:      ls,
		logger:    logger,
		publicDir: publicDir,
		viewsDir:  viewsDir,
	}
}

// WithRequestTimeout bounds the time a handler may spend on one request.
func (s *Server) WithRequestTimeout(d time.Duration) *Server {
	s.timeout = d
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)
			r.Post("/{id}/exercises", s.handleAddExercise)
			r.Get("/{id}/logs", s.handleGetLogs)
		})
	})

	r.Get("/", s.handleIndex)
	r.NotFound(staticFromDisk(s.publicDir))
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
	})

	return withNoCache(r)
}
