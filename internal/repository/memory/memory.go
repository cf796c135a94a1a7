// Package memory provides an embedded, mutex-guarded record store with
// the same contract as the PostgreSQL repository. It backs unit tests
// and local runs without external services. Instances are explicitly
// constructed and passed to the services; there is no shared global.
package memory

import (
	"context"
	"sync"

	"github.com/healthwallet/healthwallet/internal/model"
	"github.com/healthwallet/healthwallet/internal/repository"
)

// Store is an in-memory record store. All operations are atomic per
// record: the mutex makes each read-then-write sequence indivisible.
type Store struct {
	mu      sync.RWMutex
	users   []*model.User
	reports []*model.Report
	shares  []*model.ShareGrant
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Ping always succeeds; the store has no backing I/O.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// CreateUser inserts a user, enforcing email uniqueness.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}

	clone := *user
	s.users = append(s.users, &clone)
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// GetUserByEmail retrieves a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// CreateReport inserts a report.
func (s *Store) CreateReport(ctx context.Context, report *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *report
	s.reports = append(s.reports, &clone)
	return nil
}

// GetReportByID retrieves a report by ID.
func (s *Store) GetReportByID(ctx context.Context, id string) (*model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reports {
		if r.ID == id {
			clone := *r
			return &clone, nil
		}
	}
	return nil, repository.ErrReportNotFound
}

// GetReportByFilename retrieves a report by its stored filename.
func (s *Store) GetReportByFilename(ctx context.Context, filename string) (*model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reports {
		if r.Filename == filename {
			clone := *r
			return &clone, nil
		}
	}
	return nil, repository.ErrReportNotFound
}

// ListReports returns every report in insertion order.
func (s *Store) ListReports(ctx context.Context) ([]*model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneReports(s.reports), nil
}

// ListReportsByOwner returns the owner's reports in insertion order.
func (s *Store) ListReportsByOwner(ctx context.Context, ownerID string) ([]*model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Report
	for _, r := range s.reports {
		if r.OwnerID == ownerID {
			clone := *r
			out = append(out, &clone)
		}
	}
	return out, nil
}

// CreateShare inserts a share grant.
func (s *Store) CreateShare(ctx context.Context, grant *model.ShareGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *grant
	s.shares = append(s.shares, &clone)
	return nil
}

// DeleteShare removes a grant owned by ownerID. Check and removal happen
// under one lock, so a concurrent revoke cannot double-delete.
func (s *Store) DeleteShare(ctx context.Context, ownerID, grantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.shares {
		if g.ID == grantID && g.OwnerID == ownerID {
			s.shares = append(s.shares[:i], s.shares[i+1:]...)
			return nil
		}
	}
	return repository.ErrShareNotFound
}

// ListShares returns every active grant in insertion order.
func (s *Store) ListShares(ctx context.Context) ([]*model.ShareGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneShares(s.shares), nil
}

// ListSharesByOwner returns the owner's active grants in insertion order.
func (s *Store) ListSharesByOwner(ctx context.Context, ownerID string) ([]*model.ShareGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.ShareGrant
	for _, g := range s.shares {
		if g.OwnerID == ownerID {
			clone := *g
			out = append(out, &clone)
		}
	}
	return out, nil
}

func cloneReports(in []*model.Report) []*model.Report {
	out := make([]*model.Report, len(in))
	for i, r := range in {
		clone := *r
		out[i] = &clone
	}
	return out
}

func cloneShares(in []*model.ShareGrant) []*model.ShareGrant {
	out := make([]*model.ShareGrant, len(in))
	for i, g := range in {
		clone := *g
		out[i] = &clone
	}
	return out
}
