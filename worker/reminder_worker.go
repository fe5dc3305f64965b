package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"capturehub/models"
	"capturehub/utils"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderMailer is the slice of the mailer the reminder sweep needs
type ReminderMailer interface {
	SendActivityReminder(to string, data utils.ReminderEmailData) error
	SendUrgentReminder(to string, data utils.ReminderEmailData) error
}

type reminderKind int

const (
	reminderNone reminderKind = iota
	reminderFiveHour
	reminderOneHour
)

// ReminderWorker sweeps pending activities on a short interval and sends
// the 5-hour and 1-hour pre-deadline reminders. Flags only move
// false -> true, so overlapping sweeps coalesce safely; the worst case is a
// rare duplicate email, never corrupted state.
type ReminderWorker struct {
	DB       *gorm.DB
	Mailer   ReminderMailer
	Logger   *log.Logger
	Interval time.Duration
	Now      func() time.Time
	Notify   func(payload interface{})
}

func NewReminderWorker(db *gorm.DB, mailer ReminderMailer, logger *log.Logger) *ReminderWorker {
	return &ReminderWorker{
		DB:       db,
		Mailer:   mailer,
		Logger:   logger,
		Interval: 10 * time.Minute,
		Now:      time.Now,
	}
}

func (rw *ReminderWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(10 * time.Second)

	rw.Logger.Println("Reminder worker started")

	ticker := time.NewTicker(rw.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rw.Logger.Println("Reminder worker shutting down...")
			return
		case <-ticker.C:
			rw.processDueActivities()
		}
	}
}

func (rw *ReminderWorker) processDueActivities() {
	now := rw.Now()

	var activities []models.LeadActivity
	if err := rw.DB.
		Where("status = ? AND due_date IS NOT NULL AND due_date > ? AND one_hour_reminder_sent = ?",
			"Pending", now, false).
		Order("due_date asc").
		Find(&activities).Error; err != nil {
		rw.Logger.Printf("Error fetching pending activities: %v", err)
		return
	}

	for _, activity := range activities {
		if err := rw.processActivity(now, activity); err != nil {
			rw.Logger.Printf("Error processing reminder for activity %d: %v", activity.ID, err)
			sentry.CaptureException(err)
		}
	}
}

func (rw *ReminderWorker) processActivity(now time.Time, activity models.LeadActivity) error {
	kind := reminderAction(now, activity)
	if kind == reminderNone {
		return nil
	}

	var lead models.Lead
	if err := rw.DB.First(&lead, activity.LeadID).Error; err != nil {
		return fmt.Errorf("failed to load lead %d: %w", activity.LeadID, err)
	}

	var owner models.User
	if err := rw.DB.First(&owner, lead.UserID).Error; err != nil {
		return fmt.Errorf("failed to load owner of lead %d: %w", lead.ID, err)
	}

	data := utils.ReminderEmailData{
		LeadTitle:    lead.Title,
		ActivityType: activity.Type,
		Note:         activity.Note,
		DueDate:      *activity.DueDate,
	}

	var sendErr error
	switch kind {
	case reminderOneHour:
		sendErr = rw.Mailer.SendUrgentReminder(owner.Email, data)
	case reminderFiveHour:
		sendErr = rw.Mailer.SendActivityReminder(owner.Email, data)
	}
	if sendErr != nil {
		// Flags stay unset so the next tick retries
		return fmt.Errorf("failed to send reminder for activity %d: %w", activity.ID, sendErr)
	}

	if err := rw.DB.Model(&models.LeadActivity{}).
		Where("id = ?", activity.ID).
		Updates(reminderFlagUpdates(kind)).Error; err != nil {
		return fmt.Errorf("failed to persist reminder flags for activity %d: %w", activity.ID, err)
	}

	logrus.WithFields(logrus.Fields{
		"activity_id": activity.ID,
		"lead_id":     lead.ID,
		"kind":        reminderKindLabel(kind),
		"due_date":    activity.DueDate,
	}).Info("reminder sent")

	if rw.Notify != nil {
		rw.Notify(map[string]interface{}{
			"type":        "reminder",
			"kind":        reminderKindLabel(kind),
			"lead_id":     lead.ID,
			"lead_title":  lead.Title,
			"activity_id": activity.ID,
			"due_date":    activity.DueDate,
		})
	}

	return nil
}

// reminderAction decides what, if anything, is due for an activity at the
// given instant. Done activities and overdue activities never get
// reminders; reminders are strictly pre-deadline.
func reminderAction(now time.Time, a models.LeadActivity) reminderKind {
	if a.Status != "Pending" || a.DueDate == nil {
		return reminderNone
	}

	hoursLeft := a.DueDate.Sub(now).Hours()
	if hoursLeft <= 0 {
		return reminderNone
	}
	if hoursLeft <= 1 && !a.OneHourReminderSent {
		return reminderOneHour
	}
	if hoursLeft <= 5 && !a.FiveHourReminderSent {
		return reminderFiveHour
	}
	return reminderNone
}

// reminderFlagUpdates maps an action to the flag writes it implies. The
// urgent reminder also consumes the five-hour slot so a stale 5h reminder
// can never fire after the 1h threshold has passed.
func reminderFlagUpdates(kind reminderKind) map[string]interface{} {
	switch kind {
	case reminderOneHour:
		return map[string]interface{}{
			"five_hour_reminder_sent": true,
			"one_hour_reminder_sent":  true,
		}
	case reminderFiveHour:
		return map[string]interface{}{
			"five_hour_reminder_sent": true,
		}
	}
	return nil
}

func reminderKindLabel(kind reminderKind) string {
	switch kind {
	case reminderOneHour:
		return "urgent"
	case reminderFiveHour:
		return "reminder"
	}
	return "none"
}
