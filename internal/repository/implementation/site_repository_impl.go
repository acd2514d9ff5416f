package implementation

import (
	"context"
	"errors"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/mapper"
	"livelabs-be/internal/model"
	"livelabs-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SiteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SiteMapper
}

func NewSiteRepository(db *gorm.DB) contract.SiteRepository {
	return &SiteRepositoryImpl{
		db:     db,
		mapper: mapper.NewSiteMapper(),
	}
}

func (r *SiteRepositoryImpl) Create(ctx context.Context, site *entity.Site) error {
	m := r.mapper.ToModel(site)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*site = *r.mapper.ToEntity(m)
	return nil
}

func (r *SiteRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Site, error) {
	var m model.Site
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SiteRepositoryImpl) FindByApiKey(ctx context.Context, key string) (*entity.Site, error) {
	var m model.Site
	if err := r.db.WithContext(ctx).Where("api_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SiteRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Site, error) {
	var models []*model.Site
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
