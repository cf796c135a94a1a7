package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/healthwallet/healthwallet/internal/model"
)

// CreateReport inserts a new report. Reports are immutable after
// creation; there is no update or delete path.
func (r *Repository) CreateReport(ctx context.Context, report *model.Report) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		INSERT INTO reports (id, owner_id, filename, mime_type, category, report_date, heart_rate, sugar_level, blood_pressure, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		report.ID,
		report.OwnerID,
		report.Filename,
		report.MimeType,
		report.Category,
		report.Date,
		report.Vitals.HeartRate,
		report.Vitals.SugarLevel,
		report.Vitals.BloodPressure,
		report.CreatedAt,
	)
	if err != nil {
		return unavailable("create report", err)
	}

	return nil
}

// GetReportByID retrieves a report by its ID.
func (r *Repository) GetReportByID(ctx context.Context, id string) (*model.Report, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := reportSelect + ` WHERE id = $1`

	report, err := scanReport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, unavailable("get report by id", err)
	}

	return report, nil
}

// GetReportByFilename retrieves a report by its stored filename.
func (r *Repository) GetReportByFilename(ctx context.Context, filename string) (*model.Report, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := reportSelect + ` WHERE filename = $1`

	report, err := scanReport(r.pool.QueryRow(ctx, query, filename))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, unavailable("get report by filename", err)
	}

	return report, nil
}

// ListReports returns every report in insertion order.
func (r *Repository) ListReports(ctx context.Context) ([]*model.Report, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := reportSelect + ` ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, unavailable("list reports", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

// ListReportsByOwner returns the owner's reports in insertion order.
func (r *Repository) ListReportsByOwner(ctx context.Context, ownerID string) ([]*model.Report, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := reportSelect + ` WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, unavailable("list reports by owner", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

const reportSelect = `
	SELECT id, owner_id, filename, mime_type, category, report_date, heart_rate, sugar_level, blood_pressure, created_at
	FROM reports`

func scanReport(row pgx.Row) (*model.Report, error) {
	var report model.Report
	err := row.Scan(
		&report.ID,
		&report.OwnerID,
		&report.Filename,
		&report.MimeType,
		&report.Category,
		&report.Date,
		&report.Vitals.HeartRate,
		&report.Vitals.SugarLevel,
		&report.Vitals.BloodPressure,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func collectReports(rows pgx.Rows) ([]*model.Report, error) {
	var reports []*model.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, unavailable("scan report", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate reports", err)
	}
	return reports, nil
}
