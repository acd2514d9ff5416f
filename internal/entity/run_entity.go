package entity

import (
	"time"

	"github.com/google/uuid"
)

// RunDocument is one entry of a submitted ranking, enriched with the
// site-local document id at submission time.
type RunDocument struct {
	DocId     string `json:"docid"`
	SiteDocId string `json:"site_docid,omitempty"`
}

// Run is an immutable submitted ranking, except for the notification
// timestamp the lifecycle sweep stamps when it mails an outdated warning.
// Seq is a monotonically increasing insertion sequence used to break
// creation-time ties (latest write wins).
type Run struct {
	Id                   uuid.UUID
	ParticipantId        uuid.UUID
	QueryId              string
	SiteQid              string
	RunLabel             string
	Doclist              []RunDocument
	CreationTime         time.Time
	NotificationSentTime *time.Time
	Seq                  int64
}
