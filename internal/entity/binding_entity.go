package entity

import (
	"time"

	"github.com/google/uuid"
)

// Binding records which submitted run currently represents a participant for
// a query. At most one exists per (query, participant) pair; replacement is
// an atomic upsert and removal is conditional on the observed
// (run label, bound-at) so a racing fresh submission wins.
type Binding struct {
	QueryId       string
	ParticipantId uuid.UUID
	RunLabel      string
	BoundAt       time.Time
}
