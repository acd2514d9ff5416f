package mapper

import (
	"livelabs-be/internal/entity"
	"livelabs-be/internal/model"
)

type SiteMapper struct{}

func NewSiteMapper() *SiteMapper {
	return &SiteMapper{}
}

func (m *SiteMapper) ToEntity(s *model.Site) *entity.Site {
	if s == nil {
		return nil
	}
	return &entity.Site{
		Id:        s.Id,
		Name:      s.Name,
		ApiKey:    s.ApiKey,
		Enabled:   s.Enabled,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SiteMapper) ToModel(s *entity.Site) *model.Site {
	if s == nil {
		return nil
	}
	return &model.Site{
		Id:        s.Id,
		Name:      s.Name,
		ApiKey:    s.ApiKey,
		Enabled:   s.Enabled,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SiteMapper) ToEntities(models []*model.Site) []*entity.Site {
	entities := make([]*entity.Site, 0, len(models))
	for _, s := range models {
		entities = append(entities, m.ToEntity(s))
	}
	return entities
}
