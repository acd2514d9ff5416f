package model

import "time"

type Site struct {
	Id        string    `gorm:"type:varchar(64);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	ApiKey    string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Enabled   bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Site) TableName() string {
	return "sites"
}
