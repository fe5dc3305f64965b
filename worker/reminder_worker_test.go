package worker

import (
	"testing"
	"time"

	"capturehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingActivity(due time.Time) models.LeadActivity {
	return models.LeadActivity{
		Type:    "Call",
		Status:  "Pending",
		DueDate: &due,
	}
}

func TestReminderAction(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		setup func() models.LeadActivity
		want  reminderKind
	}{
		{
			name:  "far future does nothing",
			setup: func() models.LeadActivity { return pendingActivity(now.Add(6 * time.Hour)) },
			want:  reminderNone,
		},
		{
			name:  "four hours out fires the five hour reminder",
			setup: func() models.LeadActivity { return pendingActivity(now.Add(4 * time.Hour)) },
			want:  reminderFiveHour,
		},
		{
			name:  "exactly five hours out fires the five hour reminder",
			setup: func() models.LeadActivity { return pendingActivity(now.Add(5 * time.Hour)) },
			want:  reminderFiveHour,
		},
		{
			name:  "thirty minutes out fires the urgent reminder",
			setup: func() models.LeadActivity { return pendingActivity(now.Add(30 * time.Minute)) },
			want:  reminderOneHour,
		},
		{
			name:  "exactly one hour out fires the urgent reminder",
			setup: func() models.LeadActivity { return pendingActivity(now.Add(time.Hour)) },
			want:  reminderOneHour,
		},
		{
			name: "urgent window skips five hour when already inside one hour",
			setup: func() models.LeadActivity {
				a := pendingActivity(now.Add(30 * time.Minute))
				a.FiveHourReminderSent = true
				return a
			},
			want: reminderOneHour,
		},
		{
			name: "five hour already sent does not repeat",
			setup: func() models.LeadActivity {
				a := pendingActivity(now.Add(4 * time.Hour))
				a.FiveHourReminderSent = true
				return a
			},
			want: reminderNone,
		},
		{
			name: "urgent already sent does not repeat",
			setup: func() models.LeadActivity {
				a := pendingActivity(now.Add(30 * time.Minute))
				a.FiveHourReminderSent = true
				a.OneHourReminderSent = true
				return a
			},
			want: reminderNone,
		},
		{
			name:  "due right now is overdue",
			setup: func() models.LeadActivity { return pendingActivity(now) },
			want:  reminderNone,
		},
		{
			name:  "overdue never gets a reminder",
			setup: func() models.LeadActivity { return pendingActivity(now.Add(-time.Hour)) },
			want:  reminderNone,
		},
		{
			name: "done activities are ignored",
			setup: func() models.LeadActivity {
				a := pendingActivity(now.Add(30 * time.Minute))
				a.Status = "Done"
				return a
			},
			want: reminderNone,
		},
		{
			name: "missing due date is ignored",
			setup: func() models.LeadActivity {
				return models.LeadActivity{Type: "Call", Status: "Pending"}
			},
			want: reminderNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reminderAction(now, tt.setup()))
		})
	}
}

func TestReminderFlagUpdates(t *testing.T) {
	urgent := reminderFlagUpdates(reminderOneHour)
	assert.Equal(t, true, urgent["five_hour_reminder_sent"])
	assert.Equal(t, true, urgent["one_hour_reminder_sent"])

	fiveHour := reminderFlagUpdates(reminderFiveHour)
	assert.Equal(t, true, fiveHour["five_hour_reminder_sent"])
	assert.NotContains(t, fiveHour, "one_hour_reminder_sent")

	assert.Nil(t, reminderFlagUpdates(reminderNone))
}

// Walks an activity through a normal lifecycle and checks that the urgent
// flag is never set without the five-hour flag.
func TestReminderFlagInvariantOverLifecycle(t *testing.T) {
	due := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	activity := pendingActivity(due)

	apply := func(kind reminderKind) {
		for field, v := range reminderFlagUpdates(kind) {
			set := v.(bool)
			switch field {
			case "five_hour_reminder_sent":
				activity.FiveHourReminderSent = set
			case "one_hour_reminder_sent":
				activity.OneHourReminderSent = set
			}
		}
	}
	checkInvariant := func() {
		if activity.OneHourReminderSent {
			require.True(t, activity.FiveHourReminderSent,
				"urgent flag set without the five hour flag")
		}
	}

	// Sweep at 4 hours out
	kind := reminderAction(due.Add(-4*time.Hour), activity)
	assert.Equal(t, reminderFiveHour, kind)
	apply(kind)
	checkInvariant()

	// Sweep again shortly after: no duplicate
	assert.Equal(t, reminderNone, reminderAction(due.Add(-3*time.Hour), activity))

	// Sweep at 30 minutes out
	kind = reminderAction(due.Add(-30*time.Minute), activity)
	assert.Equal(t, reminderOneHour, kind)
	apply(kind)
	checkInvariant()

	// Nothing more fires, before or after the deadline
	assert.Equal(t, reminderNone, reminderAction(due.Add(-10*time.Minute), activity))
	assert.Equal(t, reminderNone, reminderAction(due.Add(time.Hour), activity))
}

// An activity first seen inside the one-hour window gets only the urgent
// reminder, with both flags consumed in one step.
func TestReminderSkipsStraightToUrgent(t *testing.T) {
	due := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	activity := pendingActivity(due)

	kind := reminderAction(due.Add(-45*time.Minute), activity)
	require.Equal(t, reminderOneHour, kind)

	updates := reminderFlagUpdates(kind)
	assert.Equal(t, true, updates["five_hour_reminder_sent"])
	assert.Equal(t, true, updates["one_hour_reminder_sent"])
}

func TestReminderKindLabel(t *testing.T) {
	assert.Equal(t, "urgent", reminderKindLabel(reminderOneHour))
	assert.Equal(t, "reminder", reminderKindLabel(reminderFiveHour))
	assert.Equal(t, "none", reminderKindLabel(reminderNone))
}
