package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rathodv/maya"
)

// Compile-time interface verification.
var _ maya.ReminderService = (*ReminderService)(nil)

// ReminderService implements maya.ReminderService using SQLite.
type ReminderService struct {
	db *DB
}

// NewReminderService creates a new ReminderService.
func NewReminderService(db *DB) *ReminderService {
	return &ReminderService{db: db}
}

// CreateReminder creates a new reminder.
func (s *ReminderService) CreateReminder(ctx context.Context, reminder *maya.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}

	reminder.ID = uuid.New().String()
	if reminder.Status == "" {
		reminder.Status = maya.ReminderPending
	}
	now := time.Now().UTC()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, user_id, description, due_at, recurrence, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, reminder.ID, reminder.UserID, reminder.Description,
		reminder.DueAt.UTC().Format(time.RFC3339), reminder.Recurrence, reminder.Status,
		reminder.CreatedAt.Format(time.RFC3339), reminder.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindReminderByID retrieves a reminder by ID.
func (s *ReminderService) FindReminderByID(ctx context.Context, id string) (*maya.Reminder, error) {
	var reminder maya.Reminder
	var dueAt, createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, description, due_at, recurrence, status, created_at, updated_at
		FROM reminders
		WHERE id = ?
	`, id).Scan(&reminder.ID, &reminder.UserID, &reminder.Description, &dueAt,
		&reminder.Recurrence, &reminder.Status, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, maya.Errorf(maya.ENOTFOUND, "reminder not found")
	}
	if err != nil {
		return nil, err
	}

	return &reminder, scanTimes(&reminder, dueAt, createdAt, updatedAt)
}

// FindReminders retrieves reminders matching the filter, ordered by due
// time ascending.
func (s *ReminderService) FindReminders(ctx context.Context, filter maya.ReminderFilter) ([]*maya.Reminder, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, user_id, description, due_at, recurrence, status, created_at, updated_at
		FROM reminders WHERE 1=1`)

	if filter.UserID != nil {
		query.WriteString(" AND user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}
	if filter.DueBefore != nil {
		query.WriteString(" AND due_at <= ?")
		args = append(args, filter.DueBefore.UTC().Format(time.RFC3339))
	}

	query.WriteString(" ORDER BY due_at ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*maya.Reminder
	for rows.Next() {
		var reminder maya.Reminder
		var dueAt, createdAt, updatedAt string

		if err := rows.Scan(&reminder.ID, &reminder.UserID, &reminder.Description, &dueAt,
			&reminder.Recurrence, &reminder.Status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if err := scanTimes(&reminder, dueAt, createdAt, updatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, &reminder)
	}

	return reminders, rows.Err()
}

// UpdateReminder updates an existing reminder.
func (s *ReminderService) UpdateReminder(ctx context.Context, id string, upd maya.ReminderUpdate) (*maya.Reminder, error) {
	reminder, err := s.FindReminderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Description != nil {
		reminder.Description = *upd.Description
	}
	if upd.DueAt != nil {
		reminder.DueAt = *upd.DueAt
	}
	if upd.Status != nil {
		switch *upd.Status {
		case maya.ReminderPending, maya.ReminderFired, maya.ReminderCancelled:
			reminder.Status = *upd.Status
		default:
			return nil, maya.Errorf(maya.EINVALID, "invalid reminder status %q", *upd.Status)
		}
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	reminder.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE reminders
		SET description = ?, due_at = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, reminder.Description, reminder.DueAt.UTC().Format(time.RFC3339), reminder.Status,
		reminder.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return reminder, nil
}

func scanTimes(reminder *maya.Reminder, dueAt, createdAt, updatedAt string) error {
	var err error
	if reminder.DueAt, err = parseRFC3339(dueAt, "due_at"); err != nil {
		return err
	}
	if reminder.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return err
	}
	if reminder.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return err
	}
	return nil
}
