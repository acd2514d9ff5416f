package mapper

import (
	"livelabs-be/internal/entity"
	"livelabs-be/internal/model"
)

type BindingMapper struct{}

func NewBindingMapper() *BindingMapper {
	return &BindingMapper{}
}

func (m *BindingMapper) ToEntity(b *model.Binding) *entity.Binding {
	if b == nil {
		return nil
	}
	return &entity.Binding{
		QueryId:       b.QueryId,
		ParticipantId: b.ParticipantId,
		RunLabel:      b.RunLabel,
		BoundAt:       b.BoundAt,
	}
}

func (m *BindingMapper) ToModel(b *entity.Binding) *model.Binding {
	if b == nil {
		return nil
	}
	return &model.Binding{
		QueryId:       b.QueryId,
		ParticipantId: b.ParticipantId,
		RunLabel:      b.RunLabel,
		BoundAt:       b.BoundAt,
	}
}

func (m *BindingMapper) ToEntities(models []*model.Binding) []*entity.Binding {
	entities := make([]*entity.Binding, 0, len(models))
	for _, b := range models {
		entities = append(entities, m.ToEntity(b))
	}
	return entities
}
