package models

import (
	"gorm.io/gorm"
)

// CompanyProfile is the operating company's own profile. A single row; its
// capability statement is the scorer's company-side text, re-read on every
// scoring call.
type CompanyProfile struct {
	gorm.Model

	Name     string `json:"name"`
	UEI      string `json:"uei"`
	CageCode string `json:"cage_code"`
	Website  string `json:"website"`
	Address  string `json:"address"`

	NAICSCodes     []string `gorm:"serializer:json" json:"naics_codes"`
	Certifications []string `gorm:"serializer:json" json:"certifications"`

	CapabilityStatement string `gorm:"type:text" json:"capability_statement"`
}
