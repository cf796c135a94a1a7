package access

import (
	"testing"

	"github.com/healthwallet/healthwallet/internal/model"
)

func report(id, ownerID string) *model.Report {
	return &model.Report{ID: id, OwnerID: ownerID}
}

func grant(ownerID, viewerEmail, scope string) *model.ShareGrant {
	return &model.ShareGrant{
		ID:          "g-" + ownerID + "-" + scope,
		OwnerID:     ownerID,
		ViewerEmail: viewerEmail,
		Scope:       model.ParseScope(scope),
	}
}

func TestCanView(t *testing.T) {
	owner := Identity{ID: "u1", Email: "a@x.com"}
	viewer := Identity{ID: "u2", Email: "b@x.com"}
	r1 := report("r1", "u1")
	r2 := report("r2", "u1")

	tests := []struct {
		name   string
		viewer Identity
		report *model.Report
		grants []*model.ShareGrant
		want   bool
	}{
		{
			name:   "owner always sees own report",
			viewer: owner,
			report: r1,
			want:   true,
		},
		{
			name:   "no grants means no access",
			viewer: viewer,
			report: r1,
			want:   false,
		},
		{
			name:   "all-scoped grant covers every report",
			viewer: viewer,
			report: r2,
			grants: []*model.ShareGrant{grant("u1", "b@x.com", "all")},
			want:   true,
		},
		{
			name:   "report-scoped grant covers only that report",
			viewer: viewer,
			report: r2,
			grants: []*model.ShareGrant{grant("u1", "b@x.com", "r1")},
			want:   false,
		},
		{
			name:   "report-scoped grant matches its report",
			viewer: viewer,
			report: r1,
			grants: []*model.ShareGrant{grant("u1", "b@x.com", "r1")},
			want:   true,
		},
		{
			name:   "grant for another email does not match",
			viewer: viewer,
			report: r1,
			grants: []*model.ShareGrant{grant("u1", "c@x.com", "all")},
			want:   false,
		},
		{
			name:   "email comparison is case sensitive",
			viewer: viewer,
			report: r1,
			grants: []*model.ShareGrant{grant("u1", "B@X.COM", "all")},
			want:   false,
		},
		{
			name:   "grant by a different owner never applies",
			viewer: viewer,
			report: r1,
			grants: []*model.ShareGrant{grant("u3", "b@x.com", "all")},
			want:   false,
		},
		{
			name:   "first matching grant wins among many",
			viewer: viewer,
			report: r2,
			grants: []*model.ShareGrant{
				grant("u1", "c@x.com", "all"),
				grant("u1", "b@x.com", "r1"),
				grant("u1", "b@x.com", "all"),
			},
			want: true,
		},
		{
			name:   "nil report is not visible",
			viewer: owner,
			report: nil,
			grants: []*model.ShareGrant{grant("u1", "a@x.com", "all")},
			want:   false,
		},
		{
			name:   "nil grant entries are skipped",
			viewer: viewer,
			report: r1,
			grants: []*model.ShareGrant{nil, grant("u1", "b@x.com", "all")},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanView(tt.viewer, tt.report, tt.grants); got != tt.want {
				t.Errorf("CanView() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewRevocation(t *testing.T) {
	viewer := Identity{ID: "u2", Email: "b@x.com"}
	r1 := report("r1", "u1")

	grants := []*model.ShareGrant{grant("u1", "b@x.com", "all")}
	if !CanView(viewer, r1, grants) {
		t.Fatal("expected access while grant is active")
	}

	// Revocation removes the grant; the evaluator sees only active grants.
	grants = grants[:0]
	if CanView(viewer, r1, grants) {
		t.Fatal("expected no access after revocation")
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	viewer := Identity{ID: "u2", Email: "b@x.com"}
	reports := []*model.Report{
		report("r1", "u1"),
		report("r2", "u3"),
		report("r3", "u1"),
	}
	grants := []*model.ShareGrant{grant("u1", "b@x.com", "all")}

	got := Filter(viewer, reports, grants)
	if len(got) != 2 {
		t.Fatalf("expected 2 visible reports, got %d", len(got))
	}
	if got[0].ID != "r1" || got[1].ID != "r3" {
		t.Errorf("expected input order preserved, got [%s %s]", got[0].ID, got[1].ID)
	}
}
