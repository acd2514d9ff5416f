package contract

import (
	"context"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant *entity.Participant) error
	Update(ctx context.Context, participant *entity.Participant) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error)
	FindByApiKey(ctx context.Context, key string) (*entity.Participant, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Participant, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
