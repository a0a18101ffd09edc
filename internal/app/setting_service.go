package app

import (
	"context"

	"tpcell/internal/domain/setting"
)

type SettingService struct {
	settings setting.Repository
}

func NewSettingService(settings setting.Repository) *SettingService {
	return &SettingService{settings: settings}
}

func (s *SettingService) Get(ctx context.Context) (*setting.Policy, error) {
	return s.settings.Get(ctx)
}

func (s *SettingService) Update(ctx context.Context, policy setting.Policy) (*setting.Policy, error) {
	return s.settings.Update(ctx, policy)
}
