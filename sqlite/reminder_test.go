package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rathodv/maya"
	"github.com/rathodv/maya/sqlite"
)

func TestReminderService_CreateReminder(t *testing.T) {
	t.Parallel()

	t.Run("creates pending reminder", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		svc := sqlite.NewReminderService(db)
		ctx := context.Background()
		userID := createTestUser(t, db, "priya@example.com")

		reminder := &maya.Reminder{
			UserID:      userID,
			Description: "call mom",
			DueAt:       time.Now().Add(time.Hour),
		}
		require.NoError(t, svc.CreateReminder(ctx, reminder))
		assert.NotEmpty(t, reminder.ID)
		assert.Equal(t, maya.ReminderPending, reminder.Status)

		found, err := svc.FindReminderByID(ctx, reminder.ID)
		require.NoError(t, err)
		assert.Equal(t, "call mom", found.Description)
		assert.WithinDuration(t, reminder.DueAt, found.DueAt, time.Second)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		svc := sqlite.NewReminderService(db)

		err := svc.CreateReminder(context.Background(), &maya.Reminder{
			UserID: "u1",
			DueAt:  time.Now().Add(time.Hour),
		})
		assert.Equal(t, maya.EINVALID, maya.ErrorCode(err))
	})
}

func TestReminderService_FindReminders(t *testing.T) {
	t.Parallel()

	t.Run("filters by user and due time", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		svc := sqlite.NewReminderService(db)
		ctx := context.Background()
		alice := createTestUser(t, db, "alice@example.com")
		bob := createTestUser(t, db, "bob@example.com")

		now := time.Now().UTC()
		for _, r := range []*maya.Reminder{
			{UserID: alice, Description: "due soon", DueAt: now.Add(time.Minute)},
			{UserID: alice, Description: "due later", DueAt: now.Add(time.Hour)},
			{UserID: bob, Description: "someone else", DueAt: now.Add(time.Minute)},
		} {
			require.NoError(t, svc.CreateReminder(ctx, r))
		}

		cutoff := now.Add(30 * time.Minute)
		found, err := svc.FindReminders(ctx, maya.ReminderFilter{UserID: &alice, DueBefore: &cutoff})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "due soon", found[0].Description)
	})

	t.Run("orders by due time ascending", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		svc := sqlite.NewReminderService(db)
		ctx := context.Background()
		userID := createTestUser(t, db, "priya@example.com")

		now := time.Now().UTC()
		require.NoError(t, svc.CreateReminder(ctx, &maya.Reminder{UserID: userID, Description: "second", DueAt: now.Add(2 * time.Hour)}))
		require.NoError(t, svc.CreateReminder(ctx, &maya.Reminder{UserID: userID, Description: "first", DueAt: now.Add(time.Hour)}))

		found, err := svc.FindReminders(ctx, maya.ReminderFilter{UserID: &userID})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "first", found[0].Description)
		assert.Equal(t, "second", found[1].Description)
	})

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		svc := sqlite.NewReminderService(db)
		ctx := context.Background()
		userID := createTestUser(t, db, "priya@example.com")

		r := &maya.Reminder{UserID: userID, Description: "to cancel", DueAt: time.Now().Add(time.Hour)}
		require.NoError(t, svc.CreateReminder(ctx, r))

		cancelled := maya.ReminderCancelled
		_, err := svc.UpdateReminder(ctx, r.ID, maya.ReminderUpdate{Status: &cancelled})
		require.NoError(t, err)

		pending := maya.ReminderPending
		found, err := svc.FindReminders(ctx, maya.ReminderFilter{UserID: &userID, Status: &pending})
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestReminderService_UpdateReminder(t *testing.T) {
	t.Parallel()

	t.Run("updates fields", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		svc := sqlite.NewReminderService(db)
		ctx := context.Background()
		userID := createTestUser(t, db, "priya@example.com")

		r := &maya.Reminder{UserID: userID, Description: "old", DueAt: time.Now().Add(time.Hour)}
		require.NoError(t, svc.CreateReminder(ctx, r))

		newDesc := "new description"
		newDue := time.Now().Add(3 * time.Hour).UTC()
		updated, err := svc.UpdateReminder(ctx, r.ID, maya.ReminderUpdate{Description: &newDesc, DueAt: &newDue})
		require.NoError(t, err)
		assert.Equal(t, "new description", updated.Description)
		assert.WithinDuration(t, newDue, updated.DueAt, time.Second)
	})

	t.Run("missing reminder is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReminderService(mustOpenDB(t))

		desc := "x"
		_, err := svc.UpdateReminder(context.Background(), "no-such-id", maya.ReminderUpdate{Description: &desc})
		assert.Equal(t, maya.ENOTFOUND, maya.ErrorCode(err))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		svc := sqlite.NewReminderService(db)
		ctx := context.Background()
		userID := createTestUser(t, db, "priya@example.com")

		r := &maya.Reminder{UserID: userID, Description: "x", DueAt: time.Now().Add(time.Hour)}
		require.NoError(t, svc.CreateReminder(ctx, r))

		bad := "snoozed"
		_, err := svc.UpdateReminder(ctx, r.ID, maya.ReminderUpdate{Status: &bad})
		assert.Equal(t, maya.EINVALID, maya.ErrorCode(err))
	})
}
