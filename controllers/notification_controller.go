package controller

import (
	"log"
	"time"

	"capturehub/models"
	"capturehub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	upcomingWindowDays  = 7
	overdueLookbackDays = 30
)

type NotificationController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewNotificationController(db *gorm.DB, logger *log.Logger) *NotificationController {
	return &NotificationController{
		DB:     db,
		Logger: logger,
	}
}

// NotificationItem is one row of the overdue/upcoming digest
type NotificationItem struct {
	Kind      string    `json:"kind"` // Activity, RFP Date, Award Date, Close Date, Event
	LeadID    uint      `json:"lead_id,omitempty"`
	Title     string    `json:"title"`
	DueDate   time.Time `json:"due_date"`
	IsOverdue bool      `json:"is_overdue"`
}

// GetNotifications computes the overdue/upcoming projection directly from
// pending activities and key dates: a 7-day forward window and a 30-day
// overdue lookback. Read-only; independent of the reminder scheduler's
// sent-flags.
func (nc *NotificationController) GetNotifications(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	now := time.Now()
	horizon := now.AddDate(0, 0, upcomingWindowDays)
	lookback := now.AddDate(0, 0, -overdueLookbackDays)

	var overdue, upcoming []NotificationItem

	var leads []models.Lead
	if err := nc.DB.Where("user_id = ?", user.ID).Find(&leads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch leads", err)
	}
	leadTitles := make(map[uint]string, len(leads))
	leadIDs := make([]uint, 0, len(leads))
	for _, lead := range leads {
		leadTitles[lead.ID] = lead.Title
		leadIDs = append(leadIDs, lead.ID)
	}

	// Pending activities in the window
	if len(leadIDs) > 0 {
		var activities []models.LeadActivity
		if err := nc.DB.
			Where("lead_id IN ? AND status = ? AND due_date IS NOT NULL AND due_date BETWEEN ? AND ?",
				leadIDs, "Pending", lookback, horizon).
			Order("due_date asc").
			Find(&activities).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch activities", err)
		}
		for _, activity := range activities {
			item := NotificationItem{
				Kind:      "Activity",
				LeadID:    activity.LeadID,
				Title:     activity.Type + ": " + leadTitles[activity.LeadID],
				DueDate:   *activity.DueDate,
				IsOverdue: activity.DueDate.Before(now),
			}
			if item.IsOverdue {
				overdue = append(overdue, item)
			} else {
				upcoming = append(upcoming, item)
			}
		}
	}

	// Lead key dates in the forward window
	for _, lead := range leads {
		for _, key := range []struct {
			kind string
			date *time.Time
		}{
			{"RFP Date", lead.EstimatedRFPDate},
			{"Award Date", lead.AwardDate},
			{"Close Date", lead.CloseDate},
		} {
			if key.date == nil {
				continue
			}
			if key.date.After(now) && !key.date.After(horizon) {
				upcoming = append(upcoming, NotificationItem{
					Kind:    key.kind,
					LeadID:  lead.ID,
					Title:   lead.Title,
					DueDate: *key.date,
				})
			}
		}
	}

	// Events in the forward window
	var events []models.Event
	if err := nc.DB.
		Where("user_id = ? AND start_date IS NOT NULL AND start_date BETWEEN ? AND ?", user.ID, now, horizon).
		Order("start_date asc").
		Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch events", err)
	}
	for _, event := range events {
		upcoming = append(upcoming, NotificationItem{
			Kind:    "Event",
			Title:   event.Name,
			DueDate: *event.StartDate,
		})
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"overdue":  overdue,
		"upcoming": upcoming,
	}))
}
