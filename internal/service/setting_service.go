package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"routeview/backend/internal/model"
	"routeview/backend/internal/repository"
)

type SettingService interface {
	List(ctx context.Context) ([]model.Setting, error)
	Get(ctx context.Context, key string) (*model.Setting, error)
	Set(ctx context.Context, key, value string) (*model.Setting, error)
	// SetAll writes every given key-value pair in one atomic upsert and
	// returns the resulting full settings list.
	SetAll(ctx context.Context, values map[string]string) ([]model.Setting, error)
	// Seed inserts default settings when absent; safe to run on every boot.
	Seed(ctx context.Context) error
}

type settingService struct {
	settingRepo repository.SettingRepository
}

func NewSettingService(settingRepo repository.SettingRepository) SettingService {
	return &settingService{settingRepo: settingRepo}
}

func (s *settingService) List(ctx context.Context) ([]model.Setting, error) {
	return s.settingRepo.List(ctx)
}

func (s *settingService) Get(ctx context.Context, key string) (*model.Setting, error) {
	setting, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup setting: %w", err)
	}
	return setting, nil
}

func (s *settingService) Set(ctx context.Context, key, value string) (*model.Setting, error) {
	if err := s.settingRepo.Set(ctx, key, value); err != nil {
		return nil, fmt.Errorf("set setting: %w", err)
	}
	return s.Get(ctx, key)
}

func (s *settingService) SetAll(ctx context.Context, values map[string]string) ([]model.Setting, error) {
	if err := s.settingRepo.SetMany(ctx, values); err != nil {
		return nil, fmt.Errorf("set settings: %w", err)
	}
	return s.settingRepo.List(ctx)
}

func (s *settingService) Seed(ctx context.Context) error {
	defaults := map[string]string{
		model.SettingServiceStatusThresholds: `{"green_days":7,"orange_days":14}`,
		model.SettingMapStyle:                `"streets"`,
	}
	for key, value := range defaults {
		if err := s.settingRepo.SetIfAbsent(ctx, key, value); err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	return nil
}
