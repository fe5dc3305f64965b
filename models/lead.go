package models

import (
	"time"

	"gorm.io/gorm"
)

// Lead represents a tracked government-contracting opportunity
type Lead struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`

	Title             string `gorm:"not null" json:"title"`
	Agency            string `json:"agency"`
	Description       string `gorm:"type:text" json:"description"`
	DealType          string `json:"deal_type"` // Prime, Sub, Teaming, IDIQ
	Sector            string `json:"sector"`
	Department        string `json:"department"`
	OpportunityStatus string `gorm:"default:'Identified'" json:"opportunity_status"` // Identified, Pursuing, Capture, Proposal, Won, Lost
	SolicitationNo    string `json:"solicitation_no"`
	EstimatedValue    float64 `json:"estimated_value"`

	// Key dates
	EstimatedRFPDate *time.Time `json:"estimated_rfp_date"`
	AwardDate        *time.Time `json:"award_date"`
	CloseDate        *time.Time `json:"close_date"`

	// Scoring output, written only by the opportunity scorer
	AIScore          int    `gorm:"default:0" json:"ai_score"`
	AIRecommendation string `json:"ai_recommendation"` // Go, Conditional Go, No-Go
	TeamScore        int    `gorm:"default:0" json:"team_score"`
	LastScoredAt     *time.Time `json:"last_scored_at"`

	// Relations
	Attachments       []LeadAttachment   `gorm:"foreignKey:LeadID" json:"attachments,omitempty"`
	Activities        []LeadActivity     `gorm:"foreignKey:LeadID" json:"activities,omitempty"`
	SuggestedPartners []SuggestedPartner `gorm:"foreignKey:LeadID" json:"suggested_partners,omitempty"`
}

// LeadAttachment is an uploaded document stored on local disk
type LeadAttachment struct {
	gorm.Model
	LeadID uint `gorm:"not null;index" json:"lead_id"`

	Name        string `gorm:"not null" json:"name"`
	StoragePath string `gorm:"not null" json:"storage_path"`
	SizeBytes   int64  `json:"size_bytes"`
}

// LeadActivity is a dated follow-up task attached to a lead
type LeadActivity struct {
	gorm.Model
	LeadID uint `gorm:"not null;index" json:"lead_id"`

	Type    string     `gorm:"default:'Call'" json:"type"` // Call, Email, Meeting, Task
	Note    string     `gorm:"type:text" json:"note"`
	DueDate *time.Time `json:"due_date"`
	Status  string     `gorm:"default:'Pending'" json:"status"` // Pending, Done

	// Reminder tracking; flags only ever move false -> true.
	// Invariant: OneHourReminderSent implies FiveHourReminderSent.
	FiveHourReminderSent bool `gorm:"default:false" json:"five_hour_reminder_sent"`
	OneHourReminderSent  bool `gorm:"default:false" json:"one_hour_reminder_sent"`
}

// SuggestedPartner is one row of the scorer's ranked teaming recommendation
type SuggestedPartner struct {
	gorm.Model
	LeadID    uint `gorm:"not null;index" json:"lead_id"`
	PartnerID uint `gorm:"not null" json:"partner_id"`

	Name        string `json:"name"`
	Score       int    `json:"score"`       // team-score contribution, 0-30
	Probability int    `json:"probability"` // 5-100
	Reason      string `json:"reason"`
	Position    int    `gorm:"not null" json:"position"` // rank order, 0 = best
}
