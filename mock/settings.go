package mock

import (
	"context"

	"github.com/rathodv/maya"
)

var _ maya.SettingsService = (*SettingsService)(nil)

// SettingsService is a mock implementation of maya.SettingsService.
type SettingsService struct {
	FindSettingsFn   func(ctx context.Context, userID string) (*maya.Settings, error)
	UpdateSettingsFn func(ctx context.Context, settings *maya.Settings) error
}

func (s *SettingsService) FindSettings(ctx context.Context, userID string) (*maya.Settings, error) {
	return s.FindSettingsFn(ctx, userID)
}

func (s *SettingsService) UpdateSettings(ctx context.Context, settings *maya.Settings) error {
	return s.UpdateSettingsFn(ctx, settings)
}
