package handler

import (
	"net/http"

	"github.com/healthwallet/healthwallet/internal/auth"
	"github.com/healthwallet/healthwallet/internal/handler/dto"
	"github.com/healthwallet/healthwallet/internal/service"
)

// InsightHandler serves the dashboard health note. It always responds
// 200 with some text; generator trouble degrades to canned fallbacks
// inside the service.
type InsightHandler struct {
	svc *service.InsightService
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(svc *service.InsightService) *InsightHandler {
	return &InsightHandler{svc: svc}
}

// Get handles GET /api/insight.
func (h *InsightHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	writeJSON(w, http.StatusOK, dto.InsightResponse{
		Insight: h.svc.DashboardInsight(r.Context(), userID),
	})
}
