package mapper

import (
	"encoding/json"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/model"

	"gorm.io/datatypes"
)

type ParticipantMapper struct{}

func NewParticipantMapper() *ParticipantMapper {
	return &ParticipantMapper{}
}

func (m *ParticipantMapper) ToEntity(p *model.Participant) *entity.Participant {
	if p == nil {
		return nil
	}

	var siteIds []string
	if len(p.SiteIds) > 0 {
		// A corrupt column only loses the registration list, not the record.
		_ = json.Unmarshal(p.SiteIds, &siteIds)
	}

	return &entity.Participant{
		Id:         p.Id,
		TeamName:   p.TeamName,
		Email:      p.Email,
		ApiKey:     p.ApiKey,
		IsVerified: p.IsVerified,
		SiteIds:    siteIds,
		CreatedAt:  p.CreatedAt,
	}
}

func (m *ParticipantMapper) ToModel(p *entity.Participant) *model.Participant {
	if p == nil {
		return nil
	}

	var siteIds datatypes.JSON
	if raw, err := json.Marshal(p.SiteIds); err == nil {
		siteIds = raw
	}

	return &model.Participant{
		Id:         p.Id,
		TeamName:   p.TeamName,
		Email:      p.Email,
		ApiKey:     p.ApiKey,
		IsVerified: p.IsVerified,
		SiteIds:    siteIds,
		CreatedAt:  p.CreatedAt,
	}
}

func (m *ParticipantMapper) ToEntities(models []*model.Participant) []*entity.Participant {
	entities := make([]*entity.Participant, 0, len(models))
	for _, p := range models {
		entities = append(entities, m.ToEntity(p))
	}
	return entities
}
