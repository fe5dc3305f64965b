package models

import (
	"time"

	"gorm.io/gorm"
)

// Portal is a registered procurement portal (SAM.gov, eBuy, state portals)
type Portal struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`

	Name     string `gorm:"not null" json:"name"`
	URL      string `json:"url"`
	Username string `json:"username"`
	// AES-encrypted at rest, never serialized
	PasswordEncrypted string `json:"-"`

	Notes         string     `gorm:"type:text" json:"notes"`
	LastCheckedAt *time.Time `json:"last_checked_at"`
}
