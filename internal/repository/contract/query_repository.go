package contract

import (
	"context"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/specification"
)

type QueryRepository interface {
	Create(ctx context.Context, query *entity.Query) error
	Update(ctx context.Context, query *entity.Query) error
	// SoftDeleteBySite flags all queries of a site deleted; they stay in the
	// store and keep their id.
	SoftDeleteBySite(ctx context.Context, siteId string) error
	FindByID(ctx context.Context, id string) (*entity.Query, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Query, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Query, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
