// Package dto defines request and response bodies for the HTTP API.
package dto

import (
	"time"

	"github.com/healthwallet/healthwallet/internal/model"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse is the body returned by register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ToAuthResponse builds an AuthResponse from a user and token.
func ToAuthResponse(user *model.User, token string) AuthResponse {
	return AuthResponse{
		User: UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
		Token: token,
	}
}

// UploadResponse is the body of POST /api/reports/upload.
type UploadResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

// ReportResponse is the public view of a report, vitals inlined.
type ReportResponse struct {
	ID       string       `json:"id"`
	OwnerID  string       `json:"owner_id"`
	Filename string       `json:"filename"`
	MimeType string       `json:"mime_type"`
	Category string       `json:"category"`
	Date     string       `json:"date"`
	Vitals   model.Vitals `json:"vitals"`
}

// ToReportResponse converts a report.
func ToReportResponse(r *model.Report) ReportResponse {
	return ReportResponse{
		ID:       r.ID,
		OwnerID:  r.OwnerID,
		Filename: r.Filename,
		MimeType: r.MimeType,
		Category: r.Category,
		Date:     r.Date.Format("2006-01-02"),
		Vitals:   r.Vitals,
	}
}

// ToReportListResponse converts a slice of reports.
func ToReportListResponse(reports []*model.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, ToReportResponse(r))
	}
	return out
}

// VitalsPointResponse is one entry of GET /api/vitals.
type VitalsPointResponse struct {
	Date          string   `json:"date"`
	HeartRate     *float64 `json:"heartRate,omitempty"`
	SugarLevel    *float64 `json:"sugarLevel,omitempty"`
	BloodPressure string   `json:"bloodPressure,omitempty"`
}

// ToVitalsSeriesResponse converts a vitals series.
func ToVitalsSeriesResponse(series []*model.VitalsPoint) []VitalsPointResponse {
	out := make([]VitalsPointResponse, 0, len(series))
	for _, p := range series {
		out = append(out, VitalsPointResponse{
			Date:          p.Date.Format("2006-01-02"),
			HeartRate:     p.HeartRate,
			SugarLevel:    p.SugarLevel,
			BloodPressure: p.BloodPressure,
		})
	}
	return out
}

// ShareRequest is the body of POST /api/share. Field names keep the
// legacy wire contract.
type ShareRequest struct {
	ViewerEmail   string `json:"viewer_email"`
	ReportIDOrAll string `json:"report_id_or_all"`
}

// ShareResponse is the body returned by POST /api/share.
type ShareResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// GrantResponse is the public view of a share grant.
type GrantResponse struct {
	ID          string    `json:"id"`
	ViewerEmail string    `json:"viewer_email"`
	Scope       string    `json:"scope"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToGrantListResponse converts a slice of grants.
func ToGrantListResponse(grants []*model.ShareGrant) []GrantResponse {
	out := make([]GrantResponse, 0, len(grants))
	for _, g := range grants {
		out = append(out, GrantResponse{
			ID:          g.ID,
			ViewerEmail: g.ViewerEmail,
			Scope:       g.Scope.String(),
			CreatedAt:   g.CreatedAt,
		})
	}
	return out
}

// InsightResponse is the body of GET /api/insight.
type InsightResponse struct {
	Insight string `json:"insight"`
}
