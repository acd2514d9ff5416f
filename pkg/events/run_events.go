package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventRunSubmitted = "run.submitted"
	EventRunOutdated  = "run.outdated"
	EventRunDeleted   = "run.deleted"
)

func NewRunSubmittedEvent(runId uuid.UUID, queryId, runLabel string, participantId uuid.UUID) Event {
	return BaseEvent{
		Type: EventRunSubmitted,
		Data: map[string]interface{}{
			"run_id":         runId.String(),
			"qid":            queryId,
			"runid":          runLabel,
			"participant_id": participantId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewRunOutdatedEvent(runId uuid.UUID, queryId, runLabel string, participantId uuid.UUID, reason string) Event {
	return BaseEvent{
		Type: EventRunOutdated,
		Data: map[string]interface{}{
			"run_id":         runId.String(),
			"qid":            queryId,
			"runid":          runLabel,
			"participant_id": participantId.String(),
			"reason":         reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewRunDeletedEvent(runId uuid.UUID, queryId, runLabel string, participantId uuid.UUID, reason string) Event {
	return BaseEvent{
		Type: EventRunDeleted,
		Data: map[string]interface{}{
			"run_id":         runId.String(),
			"qid":            queryId,
			"runid":          runLabel,
			"participant_id": participantId.String(),
			"reason":         reason,
		},
		OccurredAt: time.Now(),
	}
}
