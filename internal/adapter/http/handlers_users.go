package adapthttp

import (
	"net/http"

	"exercisetracker/internal/apperror"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		s.writeError(w, r, handlerListUsers, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	vals, err := parseBody(w, r)
	if err != nil {
		s.writeError(w, r, handlerCreateUser, apperror.NewValidationError(err.Error(), err))
		return
	}
	req := CreateUserRequest{Username: vals.Get("username")}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, handlerCreateUser, apperror.NewValidationError(err.Error(), err))
		return
	}

	user, err := s.users.CreateUser(r.Context(), req.Username)
	if err != nil {
		s.writeError(w, r, handlerCreateUser, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
