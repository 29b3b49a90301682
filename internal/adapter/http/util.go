package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"exercisetracker/internal/apperror"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as {"error": ...}. Errors outside the apperror
// taxonomy are reported as a generic internal error; server-side failures are
// logged.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("internal server error", err)
	}
	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		s.logger.Errorw("request failed",
			"error", err,
			"handler", handler,
			"request_id", middleware.GetReqID(r.Context()))
	}
	writeJSON(w, status, map[string]any{"error": appErr.Message})
}

// parseBody reads a urlencoded or JSON body into url.Values. JSON numbers and
// booleans are kept in their literal form so both encodings validate the same
// way.
func parseBody(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form: %w", err)
		}
		return r.PostForm, nil
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return url.Values{}, nil
		}
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	vals := url.Values{}
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			vals.Set(k, t)
		case json.Number:
			vals.Set(k, t.String())
		case bool:
			vals.Set(k, strconv.FormatBool(t))
		}
	}
	return vals, nil
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.viewsDir, "index.html"))
}

// staticFromDisk serves regular files below dir and answers everything else
// with a JSON 404.
func staticFromDisk(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			reqPath := path.Clean("/" + r.URL.Path)
			info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(reqPath)))
			if err == nil && !info.IsDir() {
				fileServer.ServeHTTP(w, r)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
	}
}
