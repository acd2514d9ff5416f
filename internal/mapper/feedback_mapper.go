package mapper

import (
	"encoding/json"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/model"

	"gorm.io/datatypes"
)

type FeedbackMapper struct{}

func NewFeedbackMapper() *FeedbackMapper {
	return &FeedbackMapper{}
}

func (m *FeedbackMapper) ToEntity(f *model.Feedback) *entity.Feedback {
	if f == nil {
		return nil
	}

	var doclist []entity.FeedbackDocument
	if len(f.Doclist) > 0 {
		_ = json.Unmarshal(f.Doclist, &doclist)
	}

	return &entity.Feedback{
		Sid:           f.Sid,
		SiteId:        f.SiteId,
		SiteQid:       f.SiteQid,
		QueryId:       f.QueryId,
		RunId:         f.RunId,
		RunLabel:      f.RunLabel,
		ParticipantId: f.ParticipantId,
		Doclist:       doclist,
		CreationTime:  f.CreationTime,
		ModifiedTime:  f.ModifiedTime,
	}
}

func (m *FeedbackMapper) ToModel(f *entity.Feedback) *model.Feedback {
	if f == nil {
		return nil
	}

	var doclist datatypes.JSON
	if f.Doclist != nil {
		if raw, err := json.Marshal(f.Doclist); err == nil {
			doclist = raw
		}
	}

	return &model.Feedback{
		Sid:           f.Sid,
		SiteId:        f.SiteId,
		SiteQid:       f.SiteQid,
		QueryId:       f.QueryId,
		RunId:         f.RunId,
		RunLabel:      f.RunLabel,
		ParticipantId: f.ParticipantId,
		Doclist:       doclist,
		CreationTime:  f.CreationTime,
		ModifiedTime:  f.ModifiedTime,
	}
}

func (m *FeedbackMapper) ToEntities(models []*model.Feedback) []*entity.Feedback {
	entities := make([]*entity.Feedback, 0, len(models))
	for _, f := range models {
		entities = append(entities, m.ToEntity(f))
	}
	return entities
}
