package entity

import "time"

const (
	QueryTypeTrain = "train"
	QueryTypeTest  = "test"
)

// Query is a standing query owned by a site. The participant bindings that
// point at submitted runs live in their own Binding records, one per
// (query, participant) pair.
type Query struct {
	Id                string
	SiteId            string
	SiteQid           string
	QStr              string
	Type              string
	DoclistModifiedAt *time.Time
	CreatedAt         time.Time
	DeletedAt         *time.Time
	IsDeleted         bool
}
