package controller

import (
	"log"
	"time"

	"capturehub/models"
	"capturehub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

type PipelineStats struct {
	TotalLeads          int64            `json:"total_leads"`
	LeadsByStatus       map[string]int64 `json:"leads_by_status"`
	TotalPipelineValue  float64          `json:"total_pipeline_value"`
	AverageScore        float64          `json:"average_score"`
	ProposalsSubmitted  int64            `json:"proposals_submitted"`
	ProposalsWon        int64            `json:"proposals_won"`
	ProposalsLost       int64            `json:"proposals_lost"`
	WinRate             float64          `json:"win_rate"`
	PendingActivities   int64            `json:"pending_activities"`
	OverdueActivities   int64            `json:"overdue_activities"`
	ActivePartnerCount  int64            `json:"active_partner_count"`
	UpcomingEventsCount int64            `json:"upcoming_events_count"`
}

// GetPipelineStats returns summary numbers for the pipeline dashboard cards
func (dc *DashboardController) GetPipelineStats(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	now := time.Now()

	var stats PipelineStats
	stats.LeadsByStatus = make(map[string]int64)

	if err := dc.DB.Model(&models.Lead{}).
		Where("user_id = ?", user.ID).
		Count(&stats.TotalLeads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count leads", err)
	}

	type statusCount struct {
		OpportunityStatus string
		Count             int64
	}
	var byStatus []statusCount
	if err := dc.DB.Model(&models.Lead{}).
		Select("opportunity_status, count(*) as count").
		Where("user_id = ?", user.ID).
		Group("opportunity_status").
		Scan(&byStatus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to group leads", err)
	}
	for _, row := range byStatus {
		stats.LeadsByStatus[row.OpportunityStatus] = row.Count
	}

	dc.DB.Model(&models.Lead{}).
		Where("user_id = ?", user.ID).
		Select("COALESCE(SUM(estimated_value), 0)").
		Scan(&stats.TotalPipelineValue)

	dc.DB.Model(&models.Lead{}).
		Where("user_id = ? AND last_scored_at IS NOT NULL", user.ID).
		Select("COALESCE(AVG(ai_score), 0)").
		Scan(&stats.AverageScore)

	dc.DB.Model(&models.Proposal{}).
		Where("user_id = ? AND status IN ?", user.ID, []string{"Submitted", "Won", "Lost"}).
		Count(&stats.ProposalsSubmitted)
	dc.DB.Model(&models.Proposal{}).
		Where("user_id = ? AND status = ?", user.ID, "Won").
		Count(&stats.ProposalsWon)
	dc.DB.Model(&models.Proposal{}).
		Where("user_id = ? AND status = ?", user.ID, "Lost").
		Count(&stats.ProposalsLost)
	if decided := stats.ProposalsWon + stats.ProposalsLost; decided > 0 {
		stats.WinRate = float64(stats.ProposalsWon) / float64(decided) * 100
	}

	leadIDs := dc.DB.Model(&models.Lead{}).Select("id").Where("user_id = ?", user.ID)
	dc.DB.Model(&models.LeadActivity{}).
		Where("lead_id IN (?) AND status = ?", leadIDs, "Pending").
		Count(&stats.PendingActivities)
	dc.DB.Model(&models.LeadActivity{}).
		Where("lead_id IN (?) AND status = ? AND due_date IS NOT NULL AND due_date < ?", leadIDs, "Pending", now).
		Count(&stats.OverdueActivities)

	dc.DB.Model(&models.Partner{}).
		Where("user_id = ? AND status IN ?", user.ID, []string{
			models.PartnerStatusActive,
			models.PartnerStatusVetted,
		}).
		Count(&stats.ActivePartnerCount)

	dc.DB.Model(&models.Event{}).
		Where("user_id = ? AND start_date >= ?", user.ID, now).
		Count(&stats.UpcomingEventsCount)

	return c.JSON(utils.SuccessResponse(stats))
}
