package model

import (
	"encoding/json"
	"time"
)

// ScopeAll is the wire encoding of a grant covering every report the
// owner has, now and in the future.
const ScopeAll = "all"

// ShareScope is the breadth of a grant: all of the owner's reports or a
// single one. The zero value is invalid; build it with ScopeAllReports
// or ScopeReport.
type ShareScope struct {
	all      bool
	reportID string
}

// ScopeAllReports returns the scope covering every report of the owner.
func ScopeAllReports() ShareScope {
	return ShareScope{all: true}
}

// ScopeReport returns the scope covering a single report.
func ScopeReport(reportID string) ShareScope {
	return ShareScope{reportID: reportID}
}

// ParseScope decodes the legacy wire encoding: the literal "all" or a
// report id.
func ParseScope(s string) ShareScope {
	if s == ScopeAll {
		return ScopeAllReports()
	}
	return ShareScope{reportID: s}
}

// IsAll reports whether the scope covers all of the owner's reports.
func (s ShareScope) IsAll() bool { return s.all }

// ReportID returns the covered report id and whether the scope targets a
// single report.
func (s ShareScope) ReportID() (string, bool) {
	if s.all {
		return "", false
	}
	return s.reportID, s.reportID != ""
}

// Covers reports whether the scope includes the given report id.
func (s ShareScope) Covers(reportID string) bool {
	return s.all || s.reportID == reportID
}

// String returns the legacy wire encoding.
func (s ShareScope) String() string {
	if s.all {
		return ScopeAll
	}
	return s.reportID
}

// MarshalJSON keeps the legacy string encoding on the wire.
func (s ShareScope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the legacy string encoding.
func (s *ShareScope) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ParseScope(raw)
	return nil
}

// ShareGrant gives read-only access to an owner's reports. ViewerEmail
// is an opaque, case-sensitively compared string; it is deliberately not
// resolved against registered accounts, so an owner can share with
// someone who has not signed up yet. A grant has two states: active and
// revoked. Revocation deletes the grant; re-sharing creates a new,
// independent grant.
type ShareGrant struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	ViewerEmail string     `json:"viewer_email"`
	Scope       ShareScope `json:"scope"`
	CreatedAt   time.Time  `json:"created_at"`
}
