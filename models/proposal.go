package models

import (
	"time"

	"gorm.io/gorm"
)

// Proposal represents a proposal effort, usually linked to a lead
type Proposal struct {
	gorm.Model
	UserID uint  `gorm:"not null;index" json:"user_id"`
	LeadID *uint `gorm:"index" json:"lead_id,omitempty"`

	Title       string     `gorm:"not null" json:"title"`
	Status      string     `gorm:"default:'Draft'" json:"status"` // Draft, In Review, Submitted, Won, Lost
	DueDate     *time.Time `json:"due_date"`
	SubmittedAt *time.Time `json:"submitted_at"`
	Amount      float64    `json:"amount"`
	Notes       string     `gorm:"type:text" json:"notes"`
}
