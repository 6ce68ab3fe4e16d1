// Package schedule fires due reminders on a poll loop.
package schedule

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/rathodv/maya"
)

// DefaultPollInterval is how often the scheduler checks for due
// reminders when no interval is configured.
const DefaultPollInterval = 30 * time.Second

// Scheduler polls for pending reminders past their due time, marks
// them fired, advances recurring ones, and optionally notifies the
// user by email.
type Scheduler struct {
	reminders maya.ReminderService
	users     maya.UserService
	mailer    maya.Mailer // optional
	poll      time.Duration
	logger    *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewScheduler creates a Scheduler. A nil mailer disables email
// notification; firing still happens. If pollInterval is <= 0, it
// defaults to DefaultPollInterval.
func NewScheduler(reminders maya.ReminderService, users maya.UserService, mailer maya.Mailer, pollInterval time.Duration) *Scheduler {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Scheduler{
		reminders: reminders,
		users:     users,
		mailer:    mailer,
		poll:      pollInterval,
		logger:    slog.Default(),
		now:       time.Now,
	}
}

// Run polls for due reminders until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		if fired, err := s.RunOnce(ctx); err != nil {
			s.logger.Error("scheduler iteration failed", "error", err)
		} else if fired > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.poll):
		}
	}
}

// RunOnce fires every reminder currently due and returns how many were
// fired. A failure on one reminder does not block the rest.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	now := s.now()
	status := maya.ReminderPending
	due, err := s.reminders.FindReminders(ctx, maya.ReminderFilter{
		Status:    &status,
		DueBefore: &now,
	})
	if err != nil {
		return 0, fmt.Errorf("finding due reminders: %w", err)
	}

	fired := 0
	for _, reminder := range due {
		if err := s.fire(ctx, reminder, now); err != nil {
			s.logger.Error("firing reminder failed", "id", reminder.ID, "error", err)
			continue
		}
		fired++
	}
	return fired, nil
}

// fire marks the reminder fired, reschedules it when recurring, and
// sends the notification email.
func (s *Scheduler) fire(ctx context.Context, reminder *maya.Reminder, now time.Time) error {
	if next := reminder.NextOccurrence(reminder.DueAt); !next.IsZero() {
		// Recurring reminders roll forward instead of terminating. The
		// loop catches up after downtime without refiring each missed
		// occurrence.
		for !next.After(now) {
			next = reminder.NextOccurrence(next)
		}
		if _, err := s.reminders.UpdateReminder(ctx, reminder.ID, maya.ReminderUpdate{DueAt: &next}); err != nil {
			return fmt.Errorf("rescheduling: %w", err)
		}
	} else {
		status := maya.ReminderFired
		if _, err := s.reminders.UpdateReminder(ctx, reminder.ID, maya.ReminderUpdate{Status: &status}); err != nil {
			return fmt.Errorf("marking fired: %w", err)
		}
	}

	s.logger.Info("reminder fired",
		"id", reminder.ID,
		"user", reminder.UserID,
		"recurrence", reminder.Recurrence,
	)

	if s.mailer == nil {
		return nil
	}
	user, err := s.users.FindUserByID(ctx, reminder.UserID)
	if err != nil {
		return fmt.Errorf("finding user: %w", err)
	}
	subject := "Reminder: " + reminder.Description
	// The description is user input going into an HTML body.
	body := fmt.Sprintf("<p>This is your reminder to <strong>%s</strong>, due %s.</p>",
		html.EscapeString(reminder.Description), maya.PrettyTime(reminder.DueAt))
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		// Delivery failure must not resurrect the reminder.
		s.logger.Warn("reminder email failed", "id", reminder.ID, "error", err)
	}
	return nil
}
