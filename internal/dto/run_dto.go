package dto

import (
	"time"

	"github.com/google/uuid"
)

type RunDocumentPayload struct {
	DocId     string `json:"docid" validate:"required"`
	SiteDocId string `json:"site_docid,omitempty"`
}

type SubmitRunRequest struct {
	QueryId       string               `json:"-"`
	ParticipantId uuid.UUID            `json:"-"`
	RunLabel      string               `json:"runid" validate:"required"`
	Doclist       []RunDocumentPayload `json:"doclist" validate:"required,dive"`
}

type SubmitRunResponse struct {
	RunId    uuid.UUID `json:"run_id"`
	QueryId  string    `json:"qid"`
	RunLabel string    `json:"runid"`
}

type ShowRunResponse struct {
	RunId        uuid.UUID            `json:"run_id"`
	QueryId      string               `json:"qid"`
	RunLabel     string               `json:"runid"`
	Doclist      []RunDocumentPayload `json:"doclist"`
	CreationTime time.Time            `json:"creation_time"`
}

type BoundRunView struct {
	Qid          string    `json:"qid"`
	SiteQid      string    `json:"site_qid"`
	RunLabel     string    `json:"runid"`
	BoundAt      time.Time `json:"bound_at"`
	CreationTime time.Time `json:"creation_time"`
	State        string    `json:"state"`
	Reason       string    `json:"reason,omitempty"`
}

type ListBoundRunsResponse struct {
	Runs []BoundRunView `json:"runs"`
}

type ReactivateRunRequest struct {
	QueryId       string    `json:"-"`
	ParticipantId uuid.UUID `json:"-"`
}

type ReactivateRunResponse struct {
	QueryId string    `json:"qid"`
	BoundAt time.Time `json:"bound_at"`
}
