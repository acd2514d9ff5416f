package contract

import (
	"context"

	"livelabs-be/internal/entity"
)

type SiteRepository interface {
	Create(ctx context.Context, site *entity.Site) error
	FindByID(ctx context.Context, id string) (*entity.Site, error)
	FindByApiKey(ctx context.Context, key string) (*entity.Site, error)
	FindAll(ctx context.Context) ([]*entity.Site, error)
}
