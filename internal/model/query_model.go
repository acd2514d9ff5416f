package model

import (
	"time"

	"gorm.io/gorm"
)

type Query struct {
	Id                string         `gorm:"type:varchar(128);primaryKey"`
	SiteId            string         `gorm:"type:varchar(64);not null;index"`
	SiteQid           string         `gorm:"type:varchar(128);not null;index"`
	QStr              string         `gorm:"type:text;not null"`
	Type              string         `gorm:"type:varchar(16);not null;default:train"`
	DoclistModifiedAt *time.Time     `gorm:""`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Query) TableName() string {
	return "queries"
}
