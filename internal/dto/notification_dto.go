package dto

import "github.com/google/uuid"

const (
	NotifyKindOutdated = "outdated"
	NotifyKindDeleted  = "deleted"
)

// NotifyRunMessage travels over the in-process pubsub from the lifecycle
// sweep to the mail consumer.
type NotifyRunMessage struct {
	Kind          string    `json:"kind"`
	RunId         uuid.UUID `json:"run_id"`
	QueryId       string    `json:"qid"`
	RunLabel      string    `json:"runid"`
	ParticipantId uuid.UUID `json:"participant_id"`
	Reason        string    `json:"reason"`
}
