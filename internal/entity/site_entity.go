package entity

import "time"

type Site struct {
	Id        string
	Name      string
	ApiKey    string
	Enabled   bool
	CreatedAt time.Time
}
