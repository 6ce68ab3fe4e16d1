package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/rathodv/maya"
)

// Compile-time interface verification.
var _ maya.SettingsService = (*SettingsService)(nil)

// SettingsService implements maya.SettingsService using SQLite.
type SettingsService struct {
	db *DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *DB) *SettingsService {
	return &SettingsService{db: db}
}

// FindSettings retrieves the settings for a user. Users without a
// stored row get DefaultSettings.
func (s *SettingsService) FindSettings(ctx context.Context, userID string) (*maya.Settings, error) {
	if userID == "" {
		return nil, maya.Errorf(maya.EINVALID, "user ID required")
	}

	var settings maya.Settings
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, theme, font_size, language, personality,
		       email_notifications, product_updates, display_name, timezone
		FROM settings
		WHERE user_id = ?
	`, userID).Scan(&settings.UserID, &settings.Theme, &settings.FontSize, &settings.Language,
		&settings.Personality, &settings.EmailNotifications, &settings.ProductUpdates,
		&settings.DisplayName, &settings.Timezone)

	if err == sql.ErrNoRows {
		return maya.DefaultSettings(userID), nil
	}
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// UpdateSettings stores the settings for a user, replacing any previous
// value. Last write wins.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings *maya.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (user_id, theme, font_size, language, personality,
		                      email_notifications, product_updates, display_name, timezone, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			theme = excluded.theme,
			font_size = excluded.font_size,
			language = excluded.language,
			personality = excluded.personality,
			email_notifications = excluded.email_notifications,
			product_updates = excluded.product_updates,
			display_name = excluded.display_name,
			timezone = excluded.timezone,
			updated_at = excluded.updated_at
	`, settings.UserID, settings.Theme, settings.FontSize, settings.Language, settings.Personality,
		settings.EmailNotifications, settings.ProductUpdates, settings.DisplayName, settings.Timezone,
		time.Now().UTC().Format(time.RFC3339))

	return err
}
