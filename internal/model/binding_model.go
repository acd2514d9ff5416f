package model

import (
	"time"

	"github.com/google/uuid"
)

// Binding uses a composite primary key so the store guarantees at most one
// bound run per (query, participant) pair.
type Binding struct {
	QueryId       string    `gorm:"type:varchar(128);primaryKey"`
	ParticipantId uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunLabel      string    `gorm:"type:varchar(128);not null"`
	BoundAt       time.Time `gorm:"not null"`
}

func (Binding) TableName() string {
	return "bindings"
}
