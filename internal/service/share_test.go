package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrantShareValidatesScope(t *testing.T) {
	ctx := context.Background()
	users, reports, shares := newTestServices(t)
	a := registerUser(t, users, "a", "a@x.com")
	c := registerUser(t, users, "c", "c@x.com")

	r1, err := reports.CreateReport(ctx, a.ID, CreateReportInput{
		Filename: "r1.pdf", Date: "2024-01-01",
	})
	require.NoError(t, err)

	// "all" and an owned report id are valid scopes.
	_, err = shares.GrantShare(ctx, a.ID, "b@x.com", "all")
	require.NoError(t, err)
	_, err = shares.GrantShare(ctx, a.ID, "b@x.com", r1.ID)
	require.NoError(t, err)

	// A nonexistent report id is not.
	_, err = shares.GrantShare(ctx, a.ID, "b@x.com", "no-such-report")
	require.ErrorIs(t, err, ErrInvalidScope)

	// Another owner cannot share a's report.
	_, err = shares.GrantShare(ctx, c.ID, "b@x.com", r1.ID)
	require.ErrorIs(t, err, ErrInvalidScope)

	// The viewer email is required but never resolved to an account.
	_, err = shares.GrantShare(ctx, a.ID, "", "all")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = shares.GrantShare(ctx, a.ID, "not-registered-yet@x.com", "all")
	require.NoError(t, err)
}

func TestRevokeShareIsImmediateAndTerminal(t *testing.T) {
	ctx := context.Background()
	users, reports, shares := newTestServices(t)
	a := registerUser(t, users, "a", "a@x.com")
	b := registerUser(t, users, "b", "b@x.com")

	_, err := reports.CreateReport(ctx, a.ID, CreateReportInput{
		Filename: "r1.pdf", Date: "2024-01-01", HeartRate: "72",
	})
	require.NoError(t, err)

	grant, err := shares.GrantShare(ctx, a.ID, "b@x.com", "all")
	require.NoError(t, err)

	visible, err := reports.ListVisibleReports(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)

	require.NoError(t, shares.RevokeShare(ctx, a.ID, grant.ID))

	visible, err = reports.ListVisibleReports(ctx, b.ID)
	require.NoError(t, err)
	require.Empty(t, visible)

	// Revoking again is NotFound: the transition is terminal.
	require.ErrorIs(t, shares.RevokeShare(ctx, a.ID, grant.ID), ErrGrantNotFound)

	// Re-granting creates a new, independent grant.
	regrant, err := shares.GrantShare(ctx, a.ID, "b@x.com", "all")
	require.NoError(t, err)
	require.NotEqual(t, grant.ID, regrant.ID)

	visible, err = reports.ListVisibleReports(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
}

func TestRevokeShareOwnership(t *testing.T) {
	ctx := context.Background()
	users, _, shares := newTestServices(t)
	a := registerUser(t, users, "a", "a@x.com")
	c := registerUser(t, users, "c", "c@x.com")

	grant, err := shares.GrantShare(ctx, a.ID, "b@x.com", "all")
	require.NoError(t, err)

	// Only the grant's owner can revoke it.
	require.ErrorIs(t, shares.RevokeShare(ctx, c.ID, grant.ID), ErrGrantNotFound)
	require.NoError(t, shares.RevokeShare(ctx, a.ID, grant.ID))
}

func TestListGrants(t *testing.T) {
	ctx := context.Background()
	users, _, shares := newTestServices(t)
	a := registerUser(t, users, "a", "a@x.com")
	c := registerUser(t, users, "c", "c@x.com")

	g1, err := shares.GrantShare(ctx, a.ID, "b@x.com", "all")
	require.NoError(t, err)
	_, err = shares.GrantShare(ctx, c.ID, "d@x.com", "all")
	require.NoError(t, err)

	grants, err := shares.ListGrants(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	require.Equal(t, g1.ID, grants[0].ID)
	require.Equal(t, "all", grants[0].Scope.String())
}
