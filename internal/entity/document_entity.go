package entity

import "time"

type Document struct {
	Id        string
	SiteId    string
	SiteDocId string
	Title     string
	Content   map[string]interface{}
	CreatedAt time.Time
}
