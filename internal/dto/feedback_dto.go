package dto

import "time"

type InteractionPayload struct {
	Type string    `json:"type" validate:"required"`
	At   time.Time `json:"at,omitempty"`
}

type FeedbackDocPayload struct {
	SiteDocId    string               `json:"site_docid" validate:"required"`
	Clicked      *bool                `json:"clicked,omitempty"`
	Interactions []InteractionPayload `json:"interactions,omitempty"`
}

type AddFeedbackRequest struct {
	SiteId  string               `json:"-"`
	Sid     string               `json:"-"`
	Doclist []FeedbackDocPayload `json:"doclist" validate:"required,dive"`
}

type AddFeedbackResponse struct {
	Sid string `json:"sid"`
}

type FeedbackView struct {
	Sid          string               `json:"sid"`
	Qid          string               `json:"qid"`
	SiteQid      string               `json:"site_qid"`
	RunLabel     string               `json:"runid"`
	Doclist      []FeedbackDocPayload `json:"doclist"`
	CreationTime time.Time            `json:"creation_time"`
	ModifiedTime *time.Time           `json:"modified_time,omitempty"`
}

type ListFeedbackResponse struct {
	Feedback []FeedbackView `json:"feedback"`
}
