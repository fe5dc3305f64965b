package worker

import (
	"context"
	"log"
	"time"

	"capturehub/models"
	"capturehub/utils"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

// DigestMailer is the slice of the mailer the daily digest needs
type DigestMailer interface {
	SendDailyDigest(to string, data utils.DigestEmailData) error
}

// DigestWorker sends each user one aggregated agenda email per day at a
// fixed wall-clock hour: activities due by end of today plus lead key dates
// and events landing today or tomorrow.
type DigestWorker struct {
	DB     *gorm.DB
	Mailer DigestMailer
	Logger *log.Logger
	Hour   int
	Now    func() time.Time
}

func NewDigestWorker(db *gorm.DB, mailer DigestMailer, logger *log.Logger, hour int) *DigestWorker {
	return &DigestWorker{
		DB:     db,
		Mailer: mailer,
		Logger: logger,
		Hour:   hour,
		Now:    time.Now,
	}
}

func (dw *DigestWorker) Start(ctx context.Context) {
	dw.Logger.Printf("Digest worker started (daily at %02d:00)", dw.Hour)

	for {
		now := dw.Now()
		next := nextDigestRun(now, dw.Hour)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			dw.Logger.Println("Digest worker shutting down...")
			return
		case <-timer.C:
			dw.runDigest()
		}
	}
}

func (dw *DigestWorker) runDigest() {
	now := dw.Now()
	endOfToday, endOfTomorrow := digestBounds(now)

	var users []models.User
	if err := dw.DB.Where("is_active = ?", true).Find(&users).Error; err != nil {
		dw.Logger.Printf("Error fetching users for digest: %v", err)
		return
	}

	for _, user := range users {
		items, err := dw.collectDigestItems(user.ID, endOfToday, endOfTomorrow)
		if err != nil {
			dw.Logger.Printf("Error collecting digest for user %d: %v", user.ID, err)
			sentry.CaptureException(err)
			continue
		}
		if len(items) == 0 {
			continue
		}

		data := utils.DigestEmailData{
			Date:  now.Format("Monday, January 2"),
			Items: items,
		}
		if err := dw.Mailer.SendDailyDigest(user.Email, data); err != nil {
			// One user's delivery failure never blocks the rest
			dw.Logger.Printf("Error sending digest to user %d: %v", user.ID, err)
			sentry.CaptureException(err)
			continue
		}
		dw.Logger.Printf("Digest sent to user %d (%d items)", user.ID, len(items))
	}
}

func (dw *DigestWorker) collectDigestItems(userID uint, endOfToday, endOfTomorrow time.Time) ([]utils.DigestItem, error) {
	var items []utils.DigestItem

	var leads []models.Lead
	if err := dw.DB.Where("user_id = ?", userID).Find(&leads).Error; err != nil {
		return nil, err
	}
	leadTitles := make(map[uint]string, len(leads))
	leadIDs := make([]uint, 0, len(leads))
	for _, lead := range leads {
		leadTitles[lead.ID] = lead.Title
		leadIDs = append(leadIDs, lead.ID)
	}

	// Pending activities due by end of today, overdue ones included
	if len(leadIDs) > 0 {
		var activities []models.LeadActivity
		if err := dw.DB.
			Where("lead_id IN ? AND status = ? AND due_date IS NOT NULL AND due_date <= ?",
				leadIDs, "Pending", endOfToday).
			Order("due_date asc").
			Find(&activities).Error; err != nil {
			return nil, err
		}
		for _, activity := range activities {
			items = append(items, utils.DigestItem{
				Kind:  "Activity",
				Title: activity.Type + ": " + leadTitles[activity.LeadID],
				When:  *activity.DueDate,
			})
		}
	}

	// Lead key dates landing today or tomorrow
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
			if keyDateInWindow(*key.date, endOfToday, endOfTomorrow) {
				items = append(items, utils.DigestItem{
					Kind:  key.kind,
					Title: lead.Title,
					When:  *key.date,
				})
			}
		}
	}

	// Events starting today or tomorrow
	var events []models.Event
	if err := dw.DB.
		Where("user_id = ? AND start_date IS NOT NULL AND start_date > ? AND start_date <= ?",
			userID, endOfToday.AddDate(0, 0, -1), endOfTomorrow).
		Order("start_date asc").
		Find(&events).Error; err != nil {
		return nil, err
	}
	for _, event := range events {
		items = append(items, utils.DigestItem{
			Kind:  "Event",
			Title: event.Name,
			When:  *event.StartDate,
		})
	}

	return items, nil
}

// nextDigestRun returns the next wall-clock occurrence of hour after now
func nextDigestRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// digestBounds returns end of today and end of tomorrow in now's location
func digestBounds(now time.Time) (time.Time, time.Time) {
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	return endOfToday, endOfToday.AddDate(0, 0, 1)
}

// keyDateInWindow reports whether d lands today or tomorrow relative to the
// digest bounds
func keyDateInWindow(d, endOfToday, endOfTomorrow time.Time) bool {
	startOfToday := endOfToday.AddDate(0, 0, -1).Add(time.Second)
	return !d.Before(startOfToday) && !d.After(endOfTomorrow)
}
