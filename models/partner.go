package models

import (
	"gorm.io/gorm"
)

// Partner status values
const (
	PartnerStatusActive      = "Active"
	PartnerStatusVetted      = "Vetted"
	PartnerStatusBlacklisted = "Blacklisted"
	PartnerStatusProspective = "Prospective"
)

// Partner represents a candidate teaming/subcontracting organization
type Partner struct {
	gorm.Model
	UserID uint `gorm:"index" json:"user_id"`

	Name         string `gorm:"not null" json:"name"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Website      string `json:"website"`
	Status       string `gorm:"default:'Prospective'" json:"status"`

	// 1-100 quality baseline used by the scorer
	PerformanceRating int `gorm:"default:50" json:"performance_rating"`

	// Capability tags; merged additively by the capability extractor
	Skills     []string `gorm:"serializer:json" json:"skills"`
	Agencies   []string `gorm:"serializer:json" json:"agencies"`
	NAICSCodes []string `gorm:"serializer:json" json:"naics_codes"`

	Capabilities string `gorm:"type:text" json:"capabilities"`
	Notes        string `gorm:"type:text" json:"notes"`
}
