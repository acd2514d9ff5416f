package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Participant struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeamName   string         `gorm:"type:varchar(255);not null"`
	Email      string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	ApiKey     string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	IsVerified bool           `gorm:"not null;default:false"`
	SiteIds    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (Participant) TableName() string {
	return "participants"
}
