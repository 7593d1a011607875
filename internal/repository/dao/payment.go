package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

const statusPending = "PENDING"

var (
	ErrPaymentNotFound       = domain.ErrPaymentNotFound
	ErrKitPurchaseNotFound   = domain.ErrKitPurchaseNotFound
	ErrPaymentAlreadyDecided = domain.ErrPaymentAlreadyDecided
)

type Payment struct {
	ID uint `gorm:"primaryKey"`

	UserID  uint `gorm:"not null;index"`
	User    User `gorm:"constraint:OnDelete:CASCADE"`
	VideoID uint `gorm:"not null;index"`
	Video   Video

	ProofURL string `gorm:"not null"`
	Status   string `gorm:"not null;default:PENDING;index"` // "PENDING", "APPROVED" or "REJECTED"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type KitPurchase struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"constraint:OnDelete:CASCADE"`
	KitID  uint `gorm:"not null;index"`
	Kit    Kit

	ProofURL string `gorm:"not null"`
	Status   string `gorm:"not null;default:PENDING;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{
		db: db,
	}
}

func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

func byStatus(db *gorm.DB, status string) *gorm.DB {
	if status == "" {
		return db
	}

	return db.Where("status = ?", status)
}

// decide moves a PENDING row of model to status. A missing row and an
// already decided row are told apart after the conditional update.
func decide(ctx context.Context, db *gorm.DB, model any, id uint, status string, notFound error) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(model).
			Where("id = ? AND status = ?", id, statusPending).
			Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 1 {
			return nil
		}

		var n int64
		if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return notFound
		}

		return ErrPaymentAlreadyDecided
	})
}

func (d *PaymentDAO) InsertPayment(ctx context.Context, payment Payment) (Payment, error) {
	payment.Status = statusPending

	result := d.db.WithContext(ctx).Omit("User", "Video").Create(&payment)
	if result.Error != nil {
		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindPaymentByID(ctx context.Context, id uint) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("Video", unscoped).
		First(&payment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

// FindPayments lists every user's payments, newest first. An empty status
// means no filter.
func (d *PaymentDAO) FindPayments(ctx context.Context, status string) ([]Payment, error) {
	var payments []Payment

	result := byStatus(d.db.WithContext(ctx), status).
		Preload("User").
		Preload("Video", unscoped).
		Order("created_at DESC, id DESC").
		Find(&payments)
	if result.Error != nil {
		return nil, result.Error
	}

	return payments, nil
}

func (d *PaymentDAO) FindPaymentsByUser(ctx context.Context, userID uint) ([]Payment, error) {
	var payments []Payment

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Video", unscoped).
		Order("created_at DESC, id DESC").
		Find(&payments)
	if result.Error != nil {
		return nil, result.Error
	}

	return payments, nil
}

func (d *PaymentDAO) FindPaymentsByUserAndVideo(ctx context.Context, userID, videoID uint) ([]Payment, error) {
	var payments []Payment

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Order("created_at DESC, id DESC").
		Find(&payments)
	if result.Error != nil {
		return nil, result.Error
	}

	return payments, nil
}

func (d *PaymentDAO) DecidePayment(ctx context.Context, id uint, status string) (Payment, error) {
	if err := decide(ctx, d.db, &Payment{}, id, status, ErrPaymentNotFound); err != nil {
		return Payment{}, err
	}

	return d.FindPaymentByID(ctx, id)
}

func (d *PaymentDAO) InsertKitPurchase(ctx context.Context, purchase KitPurchase) (KitPurchase, error) {
	purchase.Status = statusPending

	result := d.db.WithContext(ctx).Omit("User", "Kit").Create(&purchase)
	if result.Error != nil {
		return KitPurchase{}, result.Error
	}

	return purchase, nil
}

func (d *PaymentDAO) FindKitPurchaseByID(ctx context.Context, id uint) (KitPurchase, error) {
	var purchase KitPurchase

	result := preloadVideos(d.db.WithContext(ctx).Preload("User").Preload("Kit", unscoped), "Kit.").
		First(&purchase, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return KitPurchase{}, ErrKitPurchaseNotFound
		}

		return KitPurchase{}, result.Error
	}

	return purchase, nil
}

func (d *PaymentDAO) FindKitPurchases(ctx context.Context, status string) ([]KitPurchase, error) {
	var purchases []KitPurchase

	result := preloadVideos(byStatus(d.db.WithContext(ctx), status).Preload("User").Preload("Kit", unscoped), "Kit.").
		Order("created_at DESC, id DESC").
		Find(&purchases)
	if result.Error != nil {
		return nil, result.Error
	}

	return purchases, nil
}

func (d *PaymentDAO) FindKitPurchasesByUser(ctx context.Context, userID uint) ([]KitPurchase, error) {
	var purchases []KitPurchase

	result := preloadVideos(d.db.WithContext(ctx).Where("user_id = ?", userID).Preload("Kit", unscoped), "Kit.").
		Order("created_at DESC, id DESC").
		Find(&purchases)
	if result.Error != nil {
		return nil, result.Error
	}

	return purchases, nil
}

func (d *PaymentDAO) FindKitPurchasesByUserAndKit(ctx context.Context, userID, kitID uint) ([]KitPurchase, error) {
	var purchases []KitPurchase

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND kit_id = ?", userID, kitID).
		Order("created_at DESC, id DESC").
		Find(&purchases)
	if result.Error != nil {
		return nil, result.Error
	}

	return purchases, nil
}

func (d *PaymentDAO) DecideKitPurchase(ctx context.Context, id uint, status string) (KitPurchase, error) {
	if err := decide(ctx, d.db, &KitPurchase{}, id, status, ErrKitPurchaseNotFound); err != nil {
		return KitPurchase{}, err
	}

	return d.FindKitPurchaseByID(ctx, id)
}

// CountPending returns the number of undecided payments and kit purchases.
func (d *PaymentDAO) CountPending(ctx context.Context) (payments, purchases int64, err error) {
	db := d.db.WithContext(ctx)

	if err = db.Model(&Payment{}).Where("status = ?", statusPending).Count(&payments).Error; err != nil {
		return 0, 0, err
	}
	if err = db.Model(&KitPurchase{}).Where("status = ?", statusPending).Count(&purchases).Error; err != nil {
		return 0, 0, err
	}

	return payments, purchases, nil
}
