package entity

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackDocument is one entry of a served ranking with the click signal
// the site reported back. A document counts as clicked when the marker is
// boolean-true or the interaction list is non-empty.
type FeedbackDocument struct {
	DocId        string        `json:"docid"`
	SiteDocId    string        `json:"site_docid,omitempty"`
	Clicked      *bool         `json:"clicked,omitempty"`
	Interactions []Interaction `json:"interactions,omitempty"`
}

type Interaction struct {
	Type string    `json:"type"`
	At   time.Time `json:"at,omitempty"`
}

func (d FeedbackDocument) IsClicked() bool {
	if d.Clicked != nil && *d.Clicked {
		return true
	}
	return len(d.Interactions) > 0
}

// Feedback is a serving session: the run selected for presentation plus the
// interaction doclist the site fills in later.
type Feedback struct {
	Sid           string
	SiteId        string
	SiteQid       string
	QueryId       string
	RunId         uuid.UUID
	RunLabel      string
	ParticipantId uuid.UUID
	Doclist       []FeedbackDocument
	CreationTime  time.Time
	ModifiedTime  *time.Time
}
