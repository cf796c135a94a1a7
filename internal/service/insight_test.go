package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/healthwallet/healthwallet/internal/insights"
	"github.com/healthwallet/healthwallet/internal/model"
	"github.com/healthwallet/healthwallet/internal/repository/memory"
)

type stubGenerator struct {
	text  string
	calls int
}

func (s *stubGenerator) Generate(ctx context.Context, vitals model.Vitals) string {
	s.calls++
	return s.text
}

type mapInsightCache map[string]string

func (c mapInsightCache) GetInsight(ctx context.Context, userID string) (string, error) {
	if text, ok := c[userID]; ok {
		return text, nil
	}
	return "", context.Canceled // any non-nil error means miss
}

func (c mapInsightCache) SetInsight(ctx context.Context, userID, text string) error {
	c[userID] = text
	return nil
}

func (c mapInsightCache) InvalidateInsight(ctx context.Context, userID string) error {
	delete(c, userID)
	return nil
}

func TestDashboardInsightNoReports(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := NewUserService(store, []byte("s"), 0)
	reports := NewReportService(store)
	owner := registerUser(t, users, "a", "a@x.com")

	gen := &stubGenerator{text: "generated"}
	svc := NewInsightService(reports, gen, nil, slog.Default())

	got := svc.DashboardInsight(ctx, owner.ID)
	require.Equal(t, insights.FallbackNoReports, got)
	require.Zero(t, gen.calls, "no external call without vitals")
}

func TestDashboardInsightUsesLatestVitalsAndCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := NewUserService(store, []byte("s"), 0)
	reports := NewReportService(store)
	owner := registerUser(t, users, "a", "a@x.com")

	_, err := reports.CreateReport(ctx, owner.ID, CreateReportInput{
		Filename: "r1.pdf", Date: "2024-01-01", HeartRate: "72",
	})
	require.NoError(t, err)

	gen := &stubGenerator{text: "stay hydrated"}
	cache := mapInsightCache{}
	svc := NewInsightService(reports, gen, cache, slog.Default())

	require.Equal(t, "stay hydrated", svc.DashboardInsight(ctx, owner.ID))
	require.Equal(t, 1, gen.calls)

	// Second view hits the cache, not the collaborator.
	require.Equal(t, "stay hydrated", svc.DashboardInsight(ctx, owner.ID))
	require.Equal(t, 1, gen.calls)

	// Invalidation forces a fresh generation.
	svc.InvalidateFor(ctx, owner.ID)
	require.Equal(t, "stay hydrated", svc.DashboardInsight(ctx, owner.ID))
	require.Equal(t, 2, gen.calls)
}

func TestDashboardInsightUnknownViewer(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	reports := NewReportService(store)
	svc := NewInsightService(reports, &stubGenerator{text: "x"}, nil, slog.Default())

	// Degrades to fallback text, never an error.
	require.Equal(t, insights.FallbackError, svc.DashboardInsight(ctx, "ghost"))
}
