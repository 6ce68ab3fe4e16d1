package mock

import (
	"context"

	"github.com/rathodv/maya"
)

var _ maya.ReminderService = (*ReminderService)(nil)

// ReminderService is a mock implementation of maya.ReminderService.
type ReminderService struct {
	CreateReminderFn   func(ctx context.Context, reminder *maya.Reminder) error
	FindReminderByIDFn func(ctx context.Context, id string) (*maya.Reminder, error)
	FindRemindersFn    func(ctx context.Context, filter maya.ReminderFilter) ([]*maya.Reminder, error)
	UpdateReminderFn   func(ctx context.Context, id string, upd maya.ReminderUpdate) (*maya.Reminder, error)
}

func (s *ReminderService) CreateReminder(ctx context.Context, reminder *maya.Reminder) error {
	return s.CreateReminderFn(ctx, reminder)
}

func (s *ReminderService) FindReminderByID(ctx context.Context, id string) (*maya.Reminder, error) {
	return s.FindReminderByIDFn(ctx, id)
}

func (s *ReminderService) FindReminders(ctx context.Context, filter maya.ReminderFilter) ([]*maya.Reminder, error) {
	return s.FindRemindersFn(ctx, filter)
}

func (s *ReminderService) UpdateReminder(ctx context.Context, id string, upd maya.ReminderUpdate) (*maya.Reminder, error) {
	return s.UpdateReminderFn(ctx, id, upd)
}
