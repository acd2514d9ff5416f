package contract

import (
	"context"
	"time"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RunRepository interface {
	Create(ctx context.Context, run *entity.Run) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByPair removes every run of a (query, participant) pair; the
	// binder calls it right before inserting a replacement.
	DeleteByPair(ctx context.Context, queryId string, participantId uuid.UUID) error
	// SetNotificationTime stamps the only mutable run field.
	SetNotificationTime(ctx context.Context, id uuid.UUID, t time.Time) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Run, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Run, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
