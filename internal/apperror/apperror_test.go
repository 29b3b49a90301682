package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"exercisetracker/internal/apperror"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *apperror.AppError
		want int
	}{
		{apperror.NewNotFoundError("user not found", nil), http.StatusNotFound},
		{apperror.NewValidationError("username is required", nil), http.StatusBadRequest},
		{apperror.NewDatabaseError("insert failed", errors.New("conn reset")), http.StatusInternalServerError},
		{apperror.NewInternalError("boom", nil), http.StatusInternalServerError},
		{apperror.New(apperror.UnknownError, "?", nil), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.err.Type.String(), func(t *testing.T) {
			if got := tc.err.StatusCode(); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestFromError_Wrapped(t *testing.T) {
	cause := errors.New("no documents")
	err := fmt.Errorf("get logs: %w", apperror.NewNotFoundError("user not found", cause))

	appErr, ok := apperror.FromError(err)
	if !ok {
		t.Fatal("expected AppError in chain")
	}
	if appErr.Message != "user not found" {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
	if !apperror.IsNotFound(err) {
		t.Fatal("expected IsNotFound")
	}
	if apperror.IsValidationError(err) || apperror.IsDatabaseError(err) {
		t.Fatal("unexpected type match")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
	if got := appErr.Error(); got != "user not found: no documents" {
		t.Fatalf("unexpected Error() %q", got)
	}
}

func TestFromError_Plain(t *testing.T) {
	if _, ok := apperror.FromError(errors.New("plain")); ok {
		t.Fatal("plain errors are not AppErrors")
	}
	if _, ok := apperror.FromError(nil); ok {
		t.Fatal("nil is not an AppError")
	}
}
