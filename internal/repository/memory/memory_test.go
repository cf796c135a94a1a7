package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/healthwallet/healthwallet/internal/model"
	"github.com/healthwallet/healthwallet/internal/repository"
)

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := &model.User{ID: "u1", Username: "alice", Email: "a@x.com", CreatedAt: time.Now()}
	require.NoError(t, store.CreateUser(ctx, first))

	dup := &model.User{ID: "u2", Username: "imposter", Email: "a@x.com"}
	err := store.CreateUser(ctx, dup)
	require.ErrorIs(t, err, repository.ErrEmailExists)

	// The first user must be unaffected.
	got, err := store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
	require.Equal(t, "alice", got.Username)
}

func TestConcurrentRegistrationSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.CreateUser(ctx, &model.User{
				ID:    string(rune('a' + i)),
				Email: "race@x.com",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, repository.ErrEmailExists)
		}
	}
	require.Equal(t, 1, winners)
}

func TestReportsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, store.CreateReport(ctx, &model.Report{ID: id, OwnerID: "u1"}))
	}

	reports, err := store.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	require.Equal(t, "r1", reports[0].ID)
	require.Equal(t, "r3", reports[2].ID)
}

func TestDeleteShareScopedToOwner(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	grant := &model.ShareGrant{ID: "g1", OwnerID: "u1", ViewerEmail: "b@x.com", Scope: model.ScopeAllReports()}
	require.NoError(t, store.CreateShare(ctx, grant))

	// Another owner cannot revoke a grant they do not own.
	err := store.DeleteShare(ctx, "u2", "g1")
	require.ErrorIs(t, err, repository.ErrShareNotFound)

	require.NoError(t, store.DeleteShare(ctx, "u1", "g1"))

	err = store.DeleteShare(ctx, "u1", "g1")
	require.ErrorIs(t, err, repository.ErrShareNotFound)

	shares, err := store.ListShares(ctx)
	require.NoError(t, err)
	require.Empty(t, shares)
}

func TestStoredRecordsAreIsolatedFromCallers(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	report := &model.Report{ID: "r1", OwnerID: "u1", Category: "Blood Test"}
	require.NoError(t, store.CreateReport(ctx, report))

	// Mutating the caller's struct must not change the stored record.
	report.Category = "changed"

	got, err := store.GetReportByID(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "Blood Test", got.Category)
}
