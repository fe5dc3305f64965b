package models

import (
	"gorm.io/gorm"
)

// User represents a user account in the system
type User struct {
	gorm.Model

	// Authentication fields
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Profile information
	Name     *string `json:"name,omitempty"`
	Role     string  `gorm:"default:'capture_manager'" json:"role"` // capture_manager, bd_lead, admin
	Timezone string  `gorm:"default:'UTC'" json:"timezone"`

	// Account status
	IsActive bool `gorm:"default:true" json:"is_active"`
	IsAdmin  bool `gorm:"default:false" json:"is_admin"`

	// Incremented on password change to invalidate outstanding tokens
	TokenVersion int `gorm:"default:0" json:"-"`

	// Relations
	Leads     []Lead     `gorm:"foreignKey:UserID" json:"leads,omitempty"`
	Partners  []Partner  `gorm:"foreignKey:UserID" json:"partners,omitempty"`
	Proposals []Proposal `gorm:"foreignKey:UserID" json:"proposals,omitempty"`
}
