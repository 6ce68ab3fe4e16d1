package maya

import "context"

// Settings theme values.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Settings font size values.
const (
	FontSmall  = "small"
	FontMedium = "medium"
	FontLarge  = "large"
)

// Settings holds per-user preferences. Writes follow last-write-wins
// semantics; there is no merge.
type Settings struct {
	UserID             string `json:"userId"`
	Theme              string `json:"theme"`
	FontSize           string `json:"fontSize"`
	Language           string `json:"language"`
	Personality        string `json:"personality"`
	EmailNotifications bool   `json:"emailNotifications"`
	ProductUpdates     bool   `json:"productUpdates"`
	DisplayName        string `json:"displayName"`
	Timezone           string `json:"timezone"`
}

// DefaultSettings returns the settings a user has before their first save.
func DefaultSettings(userID string) *Settings {
	return &Settings{
		UserID:             userID,
		Theme:              ThemeSystem,
		FontSize:           FontMedium,
		Language:           "en",
		Personality:        "friendly",
		EmailNotifications: true,
		ProductUpdates:     false,
	}
}

// Validate returns an error if the settings contain invalid fields.
func (s *Settings) Validate() error {
	if s.UserID == "" {
		return Errorf(EINVALID, "settings user ID required")
	}
	switch s.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		return Errorf(EINVALID, "invalid theme %q", s.Theme)
	}
	switch s.FontSize {
	case FontSmall, FontMedium, FontLarge:
	default:
		return Errorf(EINVALID, "invalid font size %q", s.FontSize)
	}
	return nil
}

// SettingsService persists per-user settings.
type SettingsService interface {
	// FindSettings retrieves the settings for a user.
	// Users without a stored row get DefaultSettings.
	FindSettings(ctx context.Context, userID string) (*Settings, error)

	// UpdateSettings stores the settings for a user, replacing any
	// previous value.
	UpdateSettings(ctx context.Context, settings *Settings) error
}
