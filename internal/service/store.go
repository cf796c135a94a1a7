// Package service provides business logic for the application.
package service

import (
	"context"

	"github.com/healthwallet/healthwallet/internal/model"
)

// UserStore is the slice of the record store the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// ReportStore is the slice of the record store the report service needs.
type ReportStore interface {
	CreateReport(ctx context.Context, report *model.Report) error
	GetReportByID(ctx context.Context, id string) (*model.Report, error)
	GetReportByFilename(ctx context.Context, filename string) (*model.Report, error)
	ListReports(ctx context.Context) ([]*model.Report, error)
	ListReportsByOwner(ctx context.Context, ownerID string) ([]*model.Report, error)
}

// ShareStore is the slice of the record store the share service needs.
type ShareStore interface {
	CreateShare(ctx context.Context, grant *model.ShareGrant) error
	DeleteShare(ctx context.Context, ownerID, grantID string) error
	ListShares(ctx context.Context) ([]*model.ShareGrant, error)
	ListSharesByOwner(ctx context.Context, ownerID string) ([]*model.ShareGrant, error)
}

// Store is the full record store contract. Both the PostgreSQL
// repository and the in-memory store satisfy it.
type Store interface {
	UserStore
	ReportStore
	ShareStore
}
