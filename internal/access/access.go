// Package access decides who may read which report.
//
// The rule: a report is visible to an identity V iff V owns it, or some
// active grant by the report's owner names V's email and covers the
// report. Sharing is read-only by construction; nothing in this package
// ever grants write or delete capability.
package access

import "github.com/healthwallet/healthwallet/internal/model"

// Identity is the viewer as seen by the evaluator: a user id and the
// email it registered with.
type Identity struct {
	ID    string
	Email string
}

// CanView reports whether viewer may read report given the active
// grants. It is pure: no side effects, no errors. Absence of matching
// data is an ordinary false.
//
// Email comparison is exact and case-sensitive; grants target an opaque
// email string that may not belong to any registered account yet.
func CanView(viewer Identity, report *model.Report, grants []*model.ShareGrant) bool {
	if report == nil {
		return false
	}

	if viewer.ID == report.OwnerID {
		return true
	}

	for _, g := range grants {
		if g == nil {
			continue
		}
		if g.OwnerID != report.OwnerID {
			// An owner cannot grant access to another owner's report.
			continue
		}
		if g.ViewerEmail != viewer.Email {
			continue
		}
		if g.Scope.Covers(report.ID) {
			return true
		}
	}

	return false
}

// Filter returns the subset of reports viewer may read, preserving input
// order.
func Filter(viewer Identity, reports []*model.Report, grants []*model.ShareGrant) []*model.Report {
	visible := make([]*model.Report, 0, len(reports))
	for _, r := range reports {
		if CanView(viewer, r, grants) {
			visible = append(visible, r)
		}
	}
	return visible
}
