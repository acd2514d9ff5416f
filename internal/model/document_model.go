package model

import (
	"time"

	"gorm.io/datatypes"
)

type Document struct {
	Id        string         `gorm:"type:varchar(128);primaryKey"`
	SiteId    string         `gorm:"type:varchar(64);not null;index:idx_documents_site_doc"`
	SiteDocId string         `gorm:"type:varchar(128);not null;index:idx_documents_site_doc"`
	Title     string         `gorm:"type:text"`
	Content   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
