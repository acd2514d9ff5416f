package entity

import (
	"time"

	"github.com/google/uuid"
)

// Participant is the slice of the user record this engine needs: identity,
// contact details for notifications and the sites the team registered for.
type Participant struct {
	Id         uuid.UUID
	TeamName   string
	Email      string
	ApiKey     string
	IsVerified bool
	SiteIds    []string
	CreatedAt  time.Time
}

func (p *Participant) RegisteredFor(siteId string) bool {
	for _, id := range p.SiteIds {
		if id == siteId {
			return true
		}
	}
	return false
}
