package adapthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"exercisetracker/internal/apperror"
)

// loggingMiddleware logs one entry per request once the handler returns.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// recoverMiddleware turns a handler panic into a 500 response.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler { //nolint:errorlint
				panic(rvr)
			}
			s.logger.Errorw("panic recovered",
				"panic", rvr,
				"path", r.URL.Path,
				"request_id", middleware.GetReqID(r.Context()))
			appErr := apperror.NewInternalError("internal server error", nil)
			writeJSON(w, appErr.StatusCode(), map[string]any{"error": appErr.Message})
		}()
		next.ServeHTTP(w, r)
	})
}
