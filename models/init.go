package models

import (
	"gorm.io/gorm"
)

// Migrate runs the schema migration for all entities
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Lead{},
		&LeadAttachment{},
		&LeadActivity{},
		&SuggestedPartner{},
		&Partner{},
		&Proposal{},
		&CompanyProfile{},
		&Portal{},
		&Event{},
	)
}
