package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/healthwallet/healthwallet/internal/access"
	"github.com/healthwallet/healthwallet/internal/model"
	"github.com/healthwallet/healthwallet/internal/repository"
)

// dateLayout is the wire format for report dates.
const dateLayout = "2006-01-02"

// ReportService handles report creation and visibility-filtered reads.
type ReportService struct {
	store Store
}

// NewReportService creates a new ReportService.
func NewReportService(store Store) *ReportService {
	return &ReportService{store: store}
}

// CreateReportInput defines input for creating a report. Vitals arrive
// as raw form strings and are parsed strictly: a non-numeric heart rate
// or sugar level is rejected, never coerced.
type CreateReportInput struct {
	Filename      string
	MimeType      string
	Category      string
	Date          string
	HeartRate     string
	SugarLevel    string
	BloodPressure string
}

// PrepareReport validates input and builds an unsaved report for
// ownerID. It touches nothing but the owner lookup, so callers can run
// all validation before committing any bytes anywhere.
func (s *ReportService) PrepareReport(ctx context.Context, ownerID string, input CreateReportInput) (*model.Report, error) {
	if _, err := s.store.GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}

	vitals, err := parseVitals(input.HeartRate, input.SugarLevel, input.BloodPressure)
	if err != nil {
		return nil, err
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if input.Date != "" {
		date, err = time.Parse(dateLayout, input.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	return &model.Report{
		ID:        ulid.Make().String(),
		OwnerID:   ownerID,
		Filename:  input.Filename,
		MimeType:  input.MimeType,
		Category:  input.Category,
		Date:      date,
		Vitals:    vitals,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SaveReport persists a prepared report. The owner is fixed at prepare
// time and immutable afterwards.
func (s *ReportService) SaveReport(ctx context.Context, report *model.Report) error {
	if err := s.store.CreateReport(ctx, report); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// CreateReport validates and persists a report for ownerID in one step.
func (s *ReportService) CreateReport(ctx context.Context, ownerID string, input CreateReportInput) (*model.Report, error) {
	report, err := s.PrepareReport(ctx, ownerID, input)
	if err != nil {
		return nil, err
	}
	if err := s.SaveReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListVisibleReports returns every report the viewer may read, in the
// store's insertion order. Callers wanting chronological order must sort
// by date themselves.
func (s *ReportService) ListVisibleReports(ctx context.Context, viewerID string) ([]*model.Report, error) {
	viewer, err := s.viewerIdentity(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	reports, err := s.store.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	grants, err := s.store.ListShares(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list share grants: %w", err)
	}

	return access.Filter(viewer, reports, grants), nil
}

// ListVitalsSeries returns the viewer's visible vitals as a time series:
// reports without any vitals are dropped, the rest sorted ascending by
// date with insertion order breaking ties.
func (s *ReportService) ListVitalsSeries(ctx context.Context, viewerID string) ([]*model.VitalsPoint, error) {
	reports, err := s.ListVisibleReports(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	withVitals := reports[:0:0]
	for _, r := range reports {
		if !r.Vitals.IsEmpty() {
			withVitals = append(withVitals, r)
		}
	}

	sort.SliceStable(withVitals, func(i, j int) bool {
		return withVitals[i].Date.Before(withVitals[j].Date)
	})

	series := make([]*model.VitalsPoint, 0, len(withVitals))
	for _, r := range withVitals {
		series = append(series, &model.VitalsPoint{
			Date:          r.Date,
			HeartRate:     r.Vitals.HeartRate,
			SugarLevel:    r.Vitals.SugarLevel,
			BloodPressure: r.Vitals.BloodPressure,
		})
	}

	return series, nil
}

// VisibleReportByFilename returns the report stored under filename if
// the viewer may read it. Used to authorize file downloads.
func (s *ReportService) VisibleReportByFilename(ctx context.Context, viewerID, filename string) (*model.Report, error) {
	viewer, err := s.viewerIdentity(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	report, err := s.store.GetReportByFilename(ctx, filename)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to look up report: %w", err)
	}

	grants, err := s.store.ListShares(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list share grants: %w", err)
	}

	if !access.CanView(viewer, report, grants) {
		return nil, ErrForbidden
	}

	return report, nil
}

func (s *ReportService) viewerIdentity(ctx context.Context, viewerID string) (access.Identity, error) {
	viewer, err := s.store.GetUserByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return access.Identity{}, ErrUserNotFound
		}
		return access.Identity{}, fmt.Errorf("failed to resolve viewer: %w", err)
	}
	return access.Identity{ID: viewer.ID, Email: viewer.Email}, nil
}

// parseVitals converts raw form strings into a typed Vitals value.
// Empty fields stay unset; anything non-numeric in the numeric fields is
// an error, and nothing is stored on failure.
func parseVitals(heartRate, sugarLevel, bloodPressure string) (model.Vitals, error) {
	var vitals model.Vitals

	if heartRate != "" {
		v, err := strconv.ParseFloat(heartRate, 64)
		if err != nil {
			return model.Vitals{}, ErrInvalidVitals
		}
		vitals.HeartRate = &v
	}

	if sugarLevel != "" {
		v, err := strconv.ParseFloat(sugarLevel, 64)
		if err != nil {
			return model.Vitals{}, ErrInvalidVitals
		}
		vitals.SugarLevel = &v
	}

	vitals.BloodPressure = bloodPressure
	return vitals, nil
}
