package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/healthwallet/healthwallet/internal/auth"
	"github.com/healthwallet/healthwallet/internal/service"
)

// FileHandler streams stored report files to authorized viewers.
type FileHandler struct {
	reports *service.ReportService
	files   FileStore
	logger  *slog.Logger
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(reports *service.ReportService, files FileStore, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		reports: reports,
		files:   files,
		logger:  logger,
	}
}

// Download handles GET /uploads/{filename}. The filename is resolved to
// its report record first, so the same visibility rules gate the file
// bytes as gate the report metadata.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	filename := chi.URLParam(r, "filename")

	report, err := h.reports.VisibleReportByFilename(r.Context(), userID, filename)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	obj, err := h.files.Get(r.Context(), report.Filename)
	if err != nil {
		h.logger.Error("report file read failed", "error", err, "filename", report.Filename, "request_id", requestID(r))
		writeError(w, http.StatusInternalServerError, "STORAGE_UNAVAILABLE", "Storage is temporarily unavailable")
		return
	}
	defer obj.Close()

	if report.MimeType != "" {
		w.Header().Set("Content-Type", report.MimeType)
	}

	if _, err := io.Copy(w, obj); err != nil {
		// Headers are already out; all we can do is note it.
		h.logger.Warn("report file stream interrupted", "error", err, "filename", report.Filename)
	}
}
