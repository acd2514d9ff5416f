package implementation

import (
	"context"
	"errors"
	"time"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/mapper"
	"livelabs-be/internal/model"
	"livelabs-be/internal/repository/contract"
	"livelabs-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BindingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BindingMapper
}

func NewBindingRepository(db *gorm.DB) contract.BindingRepository {
	return &BindingRepositoryImpl{
		db:     db,
		mapper: mapper.NewBindingMapper(),
	}
}

func (r *BindingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert replaces the (query, participant) entry in one statement; the
// composite primary key makes this the compare-and-swap entry replacement
// the bindings map requires.
func (r *BindingRepositoryImpl) Upsert(ctx context.Context, binding *entity.Binding) error {
	m := r.mapper.ToModel(binding)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "query_id"}, {Name: "participant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"run_label", "bound_at"}),
	}).Create(m).Error
}

func (r *BindingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Binding, error) {
	var m model.Binding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BindingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Binding, error) {
	var models []*model.Binding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BindingRepositoryImpl) DeleteMatching(ctx context.Context, binding *entity.Binding) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("query_id = ? AND participant_id = ? AND run_label = ? AND bound_at = ?",
			binding.QueryId, binding.ParticipantId, binding.RunLabel, binding.BoundAt).
		Delete(&model.Binding{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *BindingRepositoryImpl) Rebind(ctx context.Context, queryId string, participantId uuid.UUID, boundAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Binding{}).
		Where("query_id = ? AND participant_id = ?", queryId, participantId).
		Update("bound_at", boundAt)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
