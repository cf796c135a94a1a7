package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/healthwallet/healthwallet/internal/model"
)

// CreateShare inserts a new share grant.
func (r *Repository) CreateShare(ctx context.Context, grant *model.ShareGrant) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		INSERT INTO shares (id, owner_id, viewer_email, scope, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		grant.ID,
		grant.OwnerID,
		grant.ViewerEmail,
		grant.Scope.String(),
		grant.CreatedAt,
	)
	if err != nil {
		return unavailable("create share", err)
	}

	return nil
}

// DeleteShare removes a grant owned by ownerID. The delete is the only
// transition a grant has: active to revoked, no way back. The WHERE
// clause scopes the delete to the owner, so existence check and removal
// are one atomic statement.
func (r *Repository) DeleteShare(ctx context.Context, ownerID, grantID string) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `DELETE FROM shares WHERE id = $1 AND owner_id = $2`

	result, err := r.pool.Exec(ctx, query, grantID, ownerID)
	if err != nil {
		return unavailable("delete share", err)
	}
	if result.RowsAffected() == 0 {
		return ErrShareNotFound
	}

	return nil
}

// ListShares returns every active grant in insertion order.
func (r *Repository) ListShares(ctx context.Context) ([]*model.ShareGrant, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := shareSelect + ` ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, unavailable("list shares", err)
	}
	defer rows.Close()

	return collectShares(rows)
}

// ListSharesByOwner returns the owner's active grants in insertion order.
func (r *Repository) ListSharesByOwner(ctx context.Context, ownerID string) ([]*model.ShareGrant, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := shareSelect + ` WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, unavailable("list shares by owner", err)
	}
	defer rows.Close()

	return collectShares(rows)
}

const shareSelect = `
	SELECT id, owner_id, viewer_email, scope, created_at
	FROM shares`

func scanShare(row pgx.Row) (*model.ShareGrant, error) {
	var (
		grant model.ShareGrant
		scope string
	)
	err := row.Scan(
		&grant.ID,
		&grant.OwnerID,
		&grant.ViewerEmail,
		&scope,
		&grant.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	grant.Scope = model.ParseScope(scope)
	return &grant, nil
}

func collectShares(rows pgx.Rows) ([]*model.ShareGrant, error) {
	var grants []*model.ShareGrant
	for rows.Next() {
		grant, err := scanShare(rows)
		if err != nil {
			return nil, unavailable("scan share", err)
		}
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate shares", err)
	}
	return grants, nil
}
