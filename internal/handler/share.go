package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/healthwallet/healthwallet/internal/auth"
	"github.com/healthwallet/healthwallet/internal/handler/dto"
	"github.com/healthwallet/healthwallet/internal/service"
)

// ShareHandler handles granting, listing and revoking read access.
type ShareHandler struct {
	svc    *service.ShareService
	logger *slog.Logger
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(svc *service.ShareService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		svc:    svc,
		logger: logger,
	}
}

// Share handles POST /api/share. The caller becomes the grant's owner.
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	grant, err := h.svc.GrantShare(r.Context(), userID, req.ViewerEmail, req.ReportIDOrAll)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("share_granted",
		"grant_id", grant.ID,
		"owner_id", userID,
		"scope", grant.Scope.String(),
		"request_id", requestID(r),
	)

	writeJSON(w, http.StatusCreated, dto.ShareResponse{
		Success: true,
		ID:      grant.ID,
	})
}

// List handles GET /api/shares: the caller's active grants.
func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	grants, err := h.svc.ListGrants(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToGrantListResponse(grants))
}

// Revoke handles DELETE /api/shares/{id}. Only the grant's owner may
// revoke it; a revoked grant is gone for good.
func (h *ShareHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	grantID := chi.URLParam(r, "id")
	if err := h.svc.RevokeShare(r.Context(), userID, grantID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("share_revoked",
		"grant_id", grantID,
		"owner_id", userID,
		"request_id", requestID(r),
	)

	w.WriteHeader(http.StatusNoContent)
}
