package dto

import "time"

type QueryPayload struct {
	SiteQid string `json:"site_qid" validate:"required"`
	QStr    string `json:"qstr" validate:"required"`
	Type    string `json:"type" validate:"omitempty,oneof=train test"`
}

type UploadQueriesRequest struct {
	SiteId  string         `json:"-"`
	Queries []QueryPayload `json:"queries" validate:"required,min=1,dive"`
}

type UploadQueriesResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

type QueryView struct {
	Qid               string     `json:"qid"`
	SiteQid           string     `json:"site_qid"`
	QStr              string     `json:"qstr"`
	Type              string     `json:"type"`
	DoclistModifiedAt *time.Time `json:"doclist_modified_at,omitempty"`
}

type ListQueriesResponse struct {
	Queries []QueryView `json:"queries"`
}

type DoclistDocPayload struct {
	SiteDocId string                 `json:"site_docid" validate:"required"`
	Title     string                 `json:"title"`
	Content   map[string]interface{} `json:"content"`
}

type UploadDoclistRequest struct {
	SiteId  string              `json:"-"`
	QueryId string              `json:"-"`
	Doclist []DoclistDocPayload `json:"doclist" validate:"required,dive"`
}

type UploadDoclistResponse struct {
	Qid      string `json:"qid"`
	DocCount int    `json:"doc_count"`
}
