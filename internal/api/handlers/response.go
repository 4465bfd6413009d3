package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
	"github.com/urbanserve/urbanserve/internal/service"
)

// APIError represents an error response
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RenderJSON renders a JSON response
func RenderJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// RenderError renders an error response
func RenderError(w http.ResponseWriter, code int, message string) {
	RenderJSON(w, code, APIError{
		Code:    code,
		Message: message,
	})
}

// RenderServiceError maps a service error to the right status code:
// 400 for validation and illegal transitions, 404 for missing entities,
// 500 for everything else.
func RenderServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err) || errors.Is(err, service.ErrInvalidTransition):
		RenderError(w, http.StatusBadRequest, err.Error())
	case isNotFound(err):
		RenderError(w, http.StatusNotFound, err.Error())
	default:
		RenderError(w, http.StatusInternalServerError, err.Error())
	}
}

var notFoundErrors = []error{
	service.ErrUserNotFound,
	service.ErrWorkerNotFound,
	service.ErrJobNotFound,
	service.ErrTransactionNotFound,
	service.ErrSpecializationNotFound,
	service.ErrReviewNotFound,
	service.ErrNotificationNotFound,
	service.ErrLocationNotFound,
	domain.ErrNotFound,
}

func isNotFound(err error) bool {
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// PathUUID parses a uuid path segment registered as {name} in the mux
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}
