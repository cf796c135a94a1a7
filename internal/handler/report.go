package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/healthwallet/healthwallet/internal/auth"
	"github.com/healthwallet/healthwallet/internal/blob"
	"github.com/healthwallet/healthwallet/internal/handler/dto"
	"github.com/healthwallet/healthwallet/internal/service"
)

// FileStore persists uploaded report files.
type FileStore interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, name string) (io.ReadCloser, error)
}

// ReportHandler handles report upload and visibility-filtered reads.
type ReportHandler struct {
	reports   *service.ReportService
	insights  *service.InsightService
	files     FileStore
	maxUpload int64
	logger    *slog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *service.ReportService, insights *service.InsightService, files FileStore, maxUpload int64, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reports:   reports,
		insights:  insights,
		files:     files,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// Upload handles POST /api/reports/upload. The body is multipart form
// data: the file under "report" plus category, date and vitals fields.
// Validation runs before the file is stored, so a rejected upload
// leaves nothing behind in either store.
func (h *ReportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, header, err := r.FormFile("report")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Uploaded file exceeds the size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "MISSING_FILE", "A report file is required")
		return
	}
	defer file.Close()

	objectName := blob.ObjectName(header.Filename)
	contentType := header.Header.Get("Content-Type")

	report, err := h.reports.PrepareReport(r.Context(), userID, service.CreateReportInput{
		Filename:      objectName,
		MimeType:      contentType,
		Category:      r.FormValue("category"),
		Date:          r.FormValue("date"),
		HeartRate:     r.FormValue("heartRate"),
		SugarLevel:    r.FormValue("sugarLevel"),
		BloodPressure: r.FormValue("bloodPressure"),
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	if err := h.files.Put(r.Context(), objectName, file, header.Size, contentType); err != nil {
		h.logger.Error("report file store failed", "error", err, "request_id", requestID(r))
		writeError(w, http.StatusInternalServerError, "STORAGE_UNAVAILABLE", "Storage is temporarily unavailable")
		return
	}

	if err := h.reports.SaveReport(r.Context(), report); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.insights.InvalidateFor(r.Context(), userID)

	h.logger.Info("report_uploaded",
		"report_id", report.ID,
		"owner_id", userID,
		"request_id", requestID(r),
	)

	writeJSON(w, http.StatusCreated, dto.UploadResponse{
		ID:       report.ID,
		Filename: report.Filename,
	})
}

// List handles GET /api/reports: every report the caller owns or has
// been granted access to.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	reports, err := h.reports.ListVisibleReports(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToReportListResponse(reports))
}

// Vitals handles GET /api/vitals: the caller's visible vitals as a
// date-ordered series for trend charts.
func (h *ReportHandler) Vitals(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	series, err := h.reports.ListVitalsSeries(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToVitalsSeriesResponse(series))
}
