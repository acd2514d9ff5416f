package mapper

import (
	"encoding/json"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/model"

	"gorm.io/datatypes"
)

type RunMapper struct{}

func NewRunMapper() *RunMapper {
	return &RunMapper{}
}

func (m *RunMapper) ToEntity(r *model.Run) *entity.Run {
	if r == nil {
		return nil
	}

	var doclist []entity.RunDocument
	if len(r.Doclist) > 0 {
		_ = json.Unmarshal(r.Doclist, &doclist)
	}

	return &entity.Run{
		Id:                   r.Id,
		ParticipantId:        r.ParticipantId,
		QueryId:              r.QueryId,
		SiteQid:              r.SiteQid,
		RunLabel:             r.RunLabel,
		Doclist:              doclist,
		CreationTime:         r.CreationTime,
		NotificationSentTime: r.NotificationSentTime,
		Seq:                  r.Seq,
	}
}

func (m *RunMapper) ToModel(r *entity.Run) *model.Run {
	if r == nil {
		return nil
	}

	var doclist datatypes.JSON
	if raw, err := json.Marshal(r.Doclist); err == nil {
		doclist = raw
	}

	return &model.Run{
		Id:                   r.Id,
		ParticipantId:        r.ParticipantId,
		QueryId:              r.QueryId,
		SiteQid:              r.SiteQid,
		RunLabel:             r.RunLabel,
		Doclist:              doclist,
		CreationTime:         r.CreationTime,
		NotificationSentTime: r.NotificationSentTime,
		Seq:                  r.Seq,
	}
}

func (m *RunMapper) ToEntities(models []*model.Run) []*entity.Run {
	entities := make([]*entity.Run, 0, len(models))
	for _, r := range models {
		entities = append(entities, m.ToEntity(r))
	}
	return entities
}
