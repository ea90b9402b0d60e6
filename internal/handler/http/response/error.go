package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/validator"
)

// HandleError maps classified errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, apperror.ErrBadRequest):
		BadRequest(w, apperror.Message(err, "Bad request"), nil)
	case errors.Is(err, apperror.ErrAuthentication):
		Unauthorized(w, apperror.Message(err, "Authentication required"))
	case errors.Is(err, apperror.ErrAuthorization):
		Forbidden(w, apperror.Message(err, "Forbidden"))
	case errors.Is(err, apperror.ErrResourceNotFound):
		NotFound(w, apperror.Message(err, "Resource not found"))
	case errors.Is(err, apperror.ErrResourcePersistence), errors.Is(err, apperror.ErrResourceConflict):
		Conflict(w, apperror.Message(err, "Conflict"))
	case errors.Is(err, apperror.ErrTooManyRequests):
		TooManyRequests(w, apperror.Message(err, "Too many requests"))
	case errors.Is(err, apperror.ErrInternal):
		slog.Error("Internal error", "error", err)
		InternalServerError(w, apperror.Message(err, "An unexpected error occurred"))

	// Default
	default:
		slog.Error("Unclassified error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
