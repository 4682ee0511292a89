package ports

import (
	"context"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// DatasetRepository persists datasets together with their records.
type DatasetRepository interface {
	Create(ctx context.Context, ds *domain.Dataset) error
	// FindByID loads the dataset and its records. Returns (nil, nil) when absent.
	FindByID(ctx context.Context, id string) (*domain.Dataset, error)
	// ListByUser returns datasets newest first, with RecordCount filled and Records empty.
	ListByUser(ctx context.Context, userID string) ([]domain.Dataset, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
