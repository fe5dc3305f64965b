package models

import (
	"time"

	"gorm.io/gorm"
)

// Event is an industry day, conference, or other dated BD event
type Event struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`

	Name      string     `gorm:"not null" json:"name"`
	Location  string     `json:"location"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Notes     string     `gorm:"type:text" json:"notes"`
}
