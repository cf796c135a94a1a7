package service

import (
	"context"
	"log/slog"

	"github.com/healthwallet/healthwallet/internal/insights"
	"github.com/healthwallet/healthwallet/internal/model"
)

// InsightCache caches generated insight text per user.
type InsightCache interface {
	GetInsight(ctx context.Context, userID string) (string, error)
	SetInsight(ctx context.Context, userID, text string) error
	InvalidateInsight(ctx context.Context, userID string) error
}

// InsightGenerator produces insight text from vitals. Implementations
// never fail; they degrade to canned text.
type InsightGenerator interface {
	Generate(ctx context.Context, vitals model.Vitals) string
}

// InsightService produces the dashboard health note. It is strictly
// best-effort: a collaborator failure yields fallback text and never an
// error, so report and share correctness are unaffected.
type InsightService struct {
	reports   *ReportService
	generator InsightGenerator
	cache     InsightCache
	logger    *slog.Logger
}

// NewInsightService creates a new InsightService. cache may be nil.
func NewInsightService(reports *ReportService, generator InsightGenerator, cache InsightCache, logger *slog.Logger) *InsightService {
	return &InsightService{
		reports:   reports,
		generator: generator,
		cache:     cache,
		logger:    logger,
	}
}

// DashboardInsight returns insight text for the viewer's latest vitals.
// The external call happens at most once per cache window.
func (s *InsightService) DashboardInsight(ctx context.Context, viewerID string) string {
	if s.cache != nil {
		if text, err := s.cache.GetInsight(ctx, viewerID); err == nil {
			return text
		}
	}

	series, err := s.reports.ListVitalsSeries(ctx, viewerID)
	if err != nil {
		s.logger.Warn("insight vitals lookup failed", "error", err, "viewer_id", viewerID)
		return insights.FallbackError
	}
	if len(series) == 0 {
		return insights.FallbackNoReports
	}

	latest := series[len(series)-1]
	text := s.generator.Generate(ctx, model.Vitals{
		HeartRate:     latest.HeartRate,
		SugarLevel:    latest.SugarLevel,
		BloodPressure: latest.BloodPressure,
	})

	if s.cache != nil {
		if err := s.cache.SetInsight(ctx, viewerID, text); err != nil {
			s.logger.Warn("insight cache write failed", "error", err)
		}
	}

	return text
}

// InvalidateFor drops the viewer's cached insight after new data arrives.
func (s *InsightService) InvalidateFor(ctx context.Context, viewerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateInsight(ctx, viewerID); err != nil {
		s.logger.Warn("insight cache invalidation failed", "error", err)
	}
}
