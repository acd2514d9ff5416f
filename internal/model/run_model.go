package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Run struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParticipantId        uuid.UUID      `gorm:"type:uuid;not null;index:idx_runs_pair"`
	QueryId              string         `gorm:"type:varchar(128);not null;index:idx_runs_pair"`
	SiteQid              string         `gorm:"type:varchar(128);not null"`
	RunLabel             string         `gorm:"type:varchar(128);not null"`
	Doclist              datatypes.JSON `gorm:"type:jsonb;not null"`
	CreationTime         time.Time      `gorm:"not null;index"`
	NotificationSentTime *time.Time     `gorm:""`
	Seq                  int64          `gorm:"autoIncrement;uniqueIndex"`
}

func (Run) TableName() string {
	return "runs"
}
