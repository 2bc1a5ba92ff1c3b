package scope

import "gorm.io/gorm"

// Scope defines the interface for composable query refinements.
type Scope interface {
	Apply(db *gorm.DB) *gorm.DB
}
