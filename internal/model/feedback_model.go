package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Feedback struct {
	Sid           string         `gorm:"type:varchar(128);primaryKey"`
	SiteId        string         `gorm:"type:varchar(64);not null;index"`
	SiteQid       string         `gorm:"type:varchar(128);not null"`
	QueryId       string         `gorm:"type:varchar(128);not null;index"`
	RunId         uuid.UUID      `gorm:"type:uuid;not null"`
	RunLabel      string         `gorm:"type:varchar(128);not null"`
	ParticipantId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Doclist       datatypes.JSON `gorm:"type:jsonb"`
	CreationTime  time.Time      `gorm:"not null;index"`
	ModifiedTime  *time.Time     `gorm:""`
}

func (Feedback) TableName() string {
	return "feedback"
}
