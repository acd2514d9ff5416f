package specification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by primary key id.
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByQueryID filters by owning query.
type ByQueryID struct {
	QueryID string
}

func (s ByQueryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("query_id = ?", s.QueryID)
}

// ByParticipantID filters by owning participant.
type ByParticipantID struct {
	ParticipantID uuid.UUID
}

func (s ByParticipantID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("participant_id = ?", s.ParticipantID)
}

// BySiteID filters by owning site.
type BySiteID struct {
	SiteID string
}

func (s BySiteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("site_id = ?", s.SiteID)
}

// BySiteQID filters by the site-local query id.
type BySiteQID struct {
	SiteQID string
}

func (s BySiteQID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("site_qid = ?", s.SiteQID)
}

// BySiteDocID filters documents by the site-local document id.
type BySiteDocID struct {
	SiteDocID string
}

func (s BySiteDocID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("site_doc_id = ?", s.SiteDocID)
}

// ByRunLabel filters by the caller-supplied run label.
type ByRunLabel struct {
	RunLabel string
}

func (s ByRunLabel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("run_label = ?", s.RunLabel)
}

// ByQueryType filters queries by train/test type.
type ByQueryType struct {
	Type string
}

func (s ByQueryType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

// Verified filters participants on the verified flag.
type Verified struct{}

func (s Verified) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_verified = ?", true)
}

// CreationBefore filters on creation_time < Before.
type CreationBefore struct {
	Before time.Time
}

func (s CreationBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("creation_time < ?", s.Before)
}

// CreationBetween filters on Start <= creation_time < End.
type CreationBetween struct {
	Start time.Time
	End   time.Time
}

func (s CreationBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("creation_time >= ? AND creation_time < ?", s.Start, s.End)
}

// OrderBy applies ordering.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}
