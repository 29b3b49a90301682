package adapthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"exercisetracker/internal/apperror"
)

type exerciseResponse struct {
	ID          string  `json:"_id"`
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	vals, err := parseBody(w, r)
	if err != nil {
		s.writeError(w, r, handlerAddExercise, apperror.NewValidationError(err.Error(), err))
		return
	}
	req := AddExerciseRequest{
		Description: vals.Get("description"),
		Duration:    vals.Get("duration"),
		Date:        vals.Get("date"),
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, handlerAddExercise, apperror.NewValidationError(err.Error(), err))
		return
	}

	ex, err := s.exercises.AddExercise(r.Context(), chi.URLParam(r, "id"), req.ToNewExercise())
	if err != nil {
		s.writeError(w, r, handlerAddExercise, err)
		return
	}
	writeJSON(w, http.StatusOK, exerciseResponse{
		ID:          ex.UserID,
		Username:    ex.Username,
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        ex.Date,
	})
}

func (s *Server) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := LogsQuery{From: q.Get("from"), To: q.Get("to"), Limit: q.Get("limit")}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, handlerGetLogs, apperror.NewValidationError(err.Error(), err))
		return
	}

	agg, err := s.logs.GetLog(r.Context(), chi.URLParam(r, "id"), req.ToLogQuery())
	if err != nil {
		s.writeError(w, r, handlerGetLogs, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}
