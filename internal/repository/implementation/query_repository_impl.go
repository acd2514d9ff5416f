package implementation

import (
	"context"
	"errors"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/mapper"
	"livelabs-be/internal/model"
	"livelabs-be/internal/repository/contract"
	"livelabs-be/internal/repository/specification"

	"gorm.io/gorm"
)

type QueryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QueryMapper
}

func NewQueryRepository(db *gorm.DB) contract.QueryRepository {
	return &QueryRepositoryImpl{
		db:     db,
		mapper: mapper.NewQueryMapper(),
	}
}

func (r *QueryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QueryRepositoryImpl) Create(ctx context.Context, query *entity.Query) error {
	m := r.mapper.ToModel(query)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*query = *r.mapper.ToEntity(m)
	return nil
}

func (r *QueryRepositoryImpl) Update(ctx context.Context, query *entity.Query) error {
	m := r.mapper.ToModel(query)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*query = *r.mapper.ToEntity(m)
	return nil
}

func (r *QueryRepositoryImpl) SoftDeleteBySite(ctx context.Context, siteId string) error {
	return r.db.WithContext(ctx).Where("site_id = ?", siteId).Delete(&model.Query{}).Error
}

func (r *QueryRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Query, error) {
	var m model.Query
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QueryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Query, error) {
	var m model.Query
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QueryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Query, error) {
	var models []*model.Query
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QueryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Query{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
