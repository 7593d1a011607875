package service

import (
	"context"
	"fmt"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

type SettingsRepository interface {
	Get(ctx context.Context) (domain.PaymentSettings, error)
	Save(ctx context.Context, settings domain.PaymentSettings) (domain.PaymentSettings, error)
}

type SettingsService struct {
	repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{
		repo: repo,
	}
}

func (s *SettingsService) Get(ctx context.Context, actor domain.Actor) (domain.PaymentSettings, error) {
	if err := domain.Authorize(domain.OpViewSettings, actor.Role); err != nil {
		return domain.PaymentSettings{}, err
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return domain.PaymentSettings{}, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return settings, nil
}

func (s *SettingsService) Save(ctx context.Context, actor domain.Actor, settings domain.PaymentSettings) (domain.PaymentSettings, error) {
	if err := domain.Authorize(domain.OpManageSettings, actor.Role); err != nil {
		return domain.PaymentSettings{}, err
	}

	saved, err := s.repo.Save(ctx, settings)
	if err != nil {
		return domain.PaymentSettings{}, fmt.Errorf("s.repo.Save -> %w", err)
	}

	return saved, nil
}
