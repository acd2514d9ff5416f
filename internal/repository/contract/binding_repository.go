package contract

import (
	"context"
	"time"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BindingRepository interface {
	// Upsert atomically replaces the (query, participant) entry in a single
	// store call, never read-then-write.
	Upsert(ctx context.Context, binding *entity.Binding) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Binding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Binding, error)
	// DeleteMatching removes the entry only if it still carries the observed
	// run label and bound-at; returns false when a newer submission already
	// replaced it.
	DeleteMatching(ctx context.Context, binding *entity.Binding) (bool, error)
	// Rebind re-stamps bound-at to reactivate an outdated run; returns false
	// when no binding exists for the pair.
	Rebind(ctx context.Context, queryId string, participantId uuid.UUID, boundAt time.Time) (bool, error)
}
