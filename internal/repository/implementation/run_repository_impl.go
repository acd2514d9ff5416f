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
)

type RunRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RunMapper
}

func NewRunRepository(db *gorm.DB) contract.RunRepository {
	return &RunRepositoryImpl{
		db:     db,
		mapper: mapper.NewRunMapper(),
	}
}

func (r *RunRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RunRepositoryImpl) Create(ctx context.Context, run *entity.Run) error {
	m := r.mapper.ToModel(run)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*run = *r.mapper.ToEntity(m)
	return nil
}

func (r *RunRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Run{}, id).Error
}

func (r *RunRepositoryImpl) DeleteByPair(ctx context.Context, queryId string, participantId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("query_id = ? AND participant_id = ?", queryId, participantId).
		Delete(&model.Run{}).Error
}

func (r *RunRepositoryImpl) SetNotificationTime(ctx context.Context, id uuid.UUID, t time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Run{}).
		Where("id = ?", id).
		Update("notification_sent_time", t).Error
}

func (r *RunRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Run, error) {
	var m model.Run
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RunRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Run, error) {
	var models []*model.Run
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RunRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Run{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
