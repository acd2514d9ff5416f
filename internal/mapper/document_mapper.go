package mapper

import (
	"encoding/json"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var content map[string]interface{}
	if len(d.Content) > 0 {
		_ = json.Unmarshal(d.Content, &content)
	}

	return &entity.Document{
		Id:        d.Id,
		SiteId:    d.SiteId,
		SiteDocId: d.SiteDocId,
		Title:     d.Title,
		Content:   content,
		CreatedAt: d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var content datatypes.JSON
	if d.Content != nil {
		if raw, err := json.Marshal(d.Content); err == nil {
			content = raw
		}
	}

	return &model.Document{
		Id:        d.Id,
		SiteId:    d.SiteId,
		SiteDocId: d.SiteDocId,
		Title:     d.Title,
		Content:   content,
		CreatedAt: d.CreatedAt,
	}
}

func (m *DocumentMapper) ToEntities(models []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, 0, len(models))
	for _, d := range models {
		entities = append(entities, m.ToEntity(d))
	}
	return entities
}
