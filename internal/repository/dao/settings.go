package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsID is the primary key of the only PaymentSettings row.
const settingsID = 1

type PaymentSettings struct {
	ID uint `gorm:"primaryKey"`

	MobileMoneyAccount      string `gorm:"not null;default:''"`
	MobileMoneyOwner        string `gorm:"not null;default:''"`
	MobileMoneyInstructions string `gorm:"not null;default:''"`

	CryptoAccount      string `gorm:"not null;default:''"`
	CryptoOwner        string `gorm:"not null;default:''"`
	CryptoInstructions string `gorm:"not null;default:''"`

	UpdatedAt time.Time `gorm:"not null"`
}

type SettingsDAO struct {
	db *gorm.DB
}

func NewSettingsDAO(db *gorm.DB) *SettingsDAO {
	return &SettingsDAO{
		db: db,
	}
}

// Get returns the stored settings, or a zero row when none were saved yet.
func (d *SettingsDAO) Get(ctx context.Context) (PaymentSettings, error) {
	var settings PaymentSettings

	result := d.db.WithContext(ctx).First(&settings, settingsID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PaymentSettings{ID: settingsID}, nil
		}

		return PaymentSettings{}, result.Error
	}

	return settings, nil
}

func (d *SettingsDAO) Upsert(ctx context.Context, settings PaymentSettings) (PaymentSettings, error) {
	settings.ID = settingsID

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&settings)
	if result.Error != nil {
		return PaymentSettings{}, result.Error
	}

	return settings, nil
}
