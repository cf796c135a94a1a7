package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/healthwallet/healthwallet/internal/handler/dto"
	"github.com/healthwallet/healthwallet/internal/repository"
	"github.com/healthwallet/healthwallet/internal/service"
)

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "Missing or malformed input")
	case errors.Is(err, service.ErrInvalidVitals):
		writeError(w, http.StatusBadRequest, "INVALID_VITALS", "Heart rate and sugar level must be numeric")
	case errors.Is(err, service.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "INVALID_DATE", "Date must be formatted YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidScope):
		writeError(w, http.StatusBadRequest, "INVALID_SCOPE", "Scope must be \"all\" or the id of a report you own")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You do not have access to this resource")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrReportNotFound):
		writeError(w, http.StatusNotFound, "REPORT_NOT_FOUND", "Report not found")
	case errors.Is(err, service.ErrGrantNotFound):
		writeError(w, http.StatusNotFound, "GRANT_NOT_FOUND", "Share grant not found")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
	case errors.Is(err, repository.ErrUnavailable):
		logger.Error("storage unavailable", "error", err)
		writeError(w, http.StatusInternalServerError, "STORAGE_UNAVAILABLE", "Storage is temporarily unavailable")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
