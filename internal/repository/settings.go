package repository

import (
	"context"
	"fmt"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/repository/dao"
)

type SettingsDAO interface {
	Get(ctx context.Context) (dao.PaymentSettings, error)
	Upsert(ctx context.Context, settings dao.PaymentSettings) (dao.PaymentSettings, error)
}

type SettingsRepository struct {
	dao SettingsDAO
}

func NewSettingsRepository(dao SettingsDAO) *SettingsRepository {
	return &SettingsRepository{
		dao: dao,
	}
}

func (r *SettingsRepository) Get(ctx context.Context) (domain.PaymentSettings, error) {
	found, err := r.dao.Get(ctx)
	if err != nil {
		return domain.PaymentSettings{}, fmt.Errorf("r.dao.Get -> %w", err)
	}

	return settingsToDomain(found), nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings domain.PaymentSettings) (domain.PaymentSettings, error) {
	saved, err := r.dao.Upsert(ctx, dao.PaymentSettings{
		MobileMoneyAccount:      settings.MobileMoney.Account,
		MobileMoneyOwner:        settings.MobileMoney.Owner,
		MobileMoneyInstructions: settings.MobileMoney.Instructions,
		CryptoAccount:           settings.Crypto.Account,
		CryptoOwner:             settings.Crypto.Owner,
		CryptoInstructions:      settings.Crypto.Instructions,
	})
	if err != nil {
		return domain.PaymentSettings{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return settingsToDomain(saved), nil
}

func settingsToDomain(s dao.PaymentSettings) domain.PaymentSettings {
	return domain.PaymentSettings{
		MobileMoney: domain.PaymentChannel{
			Account:      s.MobileMoneyAccount,
			Owner:        s.MobileMoneyOwner,
			Instructions: s.MobileMoneyInstructions,
		},
		Crypto: domain.PaymentChannel{
			Account:      s.CryptoAccount,
			Owner:        s.CryptoOwner,
			Instructions: s.CryptoInstructions,
		},
	}
}
