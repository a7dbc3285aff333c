package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Coveloper/internal/core/board"
	"Coveloper/internal/core/comments"
	"Coveloper/internal/core/posts"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// WriteJSON writes v with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		WriteError(w, http.StatusInternalServerError, "InternalServerError", "Failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// HandleServiceError maps board service errors onto HTTP statuses.
// Unexpected errors are logged and answered with a generic 500.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case board.IsNotFound(err):
		WriteError(w, http.StatusNotFound, "NotFound", err.Error())
	case board.IsForbidden(err):
		WriteError(w, http.StatusForbidden, "Forbidden", err.Error())
	case board.IsInvalidOperation(err):
		WriteError(w, http.StatusBadRequest, "InvalidOperation", err.Error())
	case board.IsConflict(err):
		WriteError(w, http.StatusConflict, "Conflict", err.Error())
	case posts.IsValidationError(err), comments.IsValidationError(err):
		WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	default:
		slog.Error("board service error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
