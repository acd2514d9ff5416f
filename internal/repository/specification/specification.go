package specification

import "gorm.io/gorm"

// Specification defines the interface for query specifications.
//
// Implementations are plain structs with exported fields so the in-memory
// repositories can interpret the same specifications by type switch instead
// of building SQL.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
