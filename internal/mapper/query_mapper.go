package mapper

import (
	"time"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/model"

	"gorm.io/gorm"
)

type QueryMapper struct{}

func NewQueryMapper() *QueryMapper {
	return &QueryMapper{}
}

func (m *QueryMapper) ToEntity(q *model.Query) *entity.Query {
	if q == nil {
		return nil
	}

	var deletedAt *time.Time
	if q.DeletedAt.Valid {
		t := q.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.Query{
		Id:                q.Id,
		SiteId:            q.SiteId,
		SiteQid:           q.SiteQid,
		QStr:              q.QStr,
		Type:              q.Type,
		DoclistModifiedAt: q.DoclistModifiedAt,
		CreatedAt:         q.CreatedAt,
		DeletedAt:         deletedAt,
		IsDeleted:         q.DeletedAt.Valid,
	}
}

func (m *QueryMapper) ToModel(q *entity.Query) *model.Query {
	if q == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if q.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *q.DeletedAt, Valid: true}
	} else if q.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.Query{
		Id:                q.Id,
		SiteId:            q.SiteId,
		SiteQid:           q.SiteQid,
		QStr:              q.QStr,
		Type:              q.Type,
		DoclistModifiedAt: q.DoclistModifiedAt,
		CreatedAt:         q.CreatedAt,
		DeletedAt:         deletedAt,
	}
}

func (m *QueryMapper) ToEntities(models []*model.Query) []*entity.Query {
	entities := make([]*entity.Query, 0, len(models))
	for _, q := range models {
		entities = append(entities, m.ToEntity(q))
	}
	return entities
}
