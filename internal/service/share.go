package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/healthwallet/healthwallet/internal/model"
	"github.com/healthwallet/healthwallet/internal/repository"
)

// ShareService handles granting and revoking read access to reports.
type ShareService struct {
	store Store
}

// NewShareService creates a new ShareService.
func NewShareService(store Store) *ShareService {
	return &ShareService{store: store}
}

// GrantShare creates a read-only grant from ownerID to viewerEmail.
// scope is the legacy wire encoding: "all" or a report id. A report
// scope must name a report the owner actually owns; reports are
// immutable and never deleted, so the validated report cannot vanish
// between the check and the insert.
//
// viewerEmail is stored as an opaque string and compared exactly at
// evaluation time. It is intentionally not resolved to an account: the
// viewer may not have registered yet.
func (s *ShareService) GrantShare(ctx context.Context, ownerID, viewerEmail, scope string) (*model.ShareGrant, error) {
	viewerEmail = strings.TrimSpace(viewerEmail)
	if viewerEmail == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.store.GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}

	parsed := model.ParseScope(scope)
	if reportID, ok := parsed.ReportID(); ok {
		report, err := s.store.GetReportByID(ctx, reportID)
		if err != nil {
			if errors.Is(err, repository.ErrReportNotFound) {
				return nil, ErrInvalidScope
			}
			return nil, fmt.Errorf("failed to look up report: %w", err)
		}
		if report.OwnerID != ownerID {
			// An owner cannot share another owner's report.
			return nil, ErrInvalidScope
		}
	} else if !parsed.IsAll() {
		return nil, ErrInvalidScope
	}

	grant := &model.ShareGrant{
		ID:          ulid.Make().String(),
		OwnerID:     ownerID,
		ViewerEmail: viewerEmail,
		Scope:       parsed,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.CreateShare(ctx, grant); err != nil {
		return nil, fmt.Errorf("failed to create share grant: %w", err)
	}

	return grant, nil
}

// RevokeShare removes a grant owned by ownerID. Revocation is the
// grant's only transition and is terminal: subsequent visibility checks
// reflect it immediately, and re-sharing creates a new grant rather
// than resurrecting this one.
func (s *ShareService) RevokeShare(ctx context.Context, ownerID, grantID string) error {
	if err := s.store.DeleteShare(ctx, ownerID, grantID); err != nil {
		if errors.Is(err, repository.ErrShareNotFound) {
			return ErrGrantNotFound
		}
		return fmt.Errorf("failed to revoke share grant: %w", err)
	}
	return nil
}

// ListGrants returns the owner's active grants in insertion order.
func (s *ShareService) ListGrants(ctx context.Context, ownerID string) ([]*model.ShareGrant, error) {
	grants, err := s.store.ListSharesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list share grants: %w", err)
	}
	return grants, nil
}
