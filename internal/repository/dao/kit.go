package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

var ErrKitNotFound = domain.ErrKitNotFound

type Kit struct {
	ID uint `gorm:"primaryKey"`

	Name      string  `gorm:"not null"`
	Price     float64 `gorm:"not null"`
	Thumbnail string  `gorm:"not null"`

	CreatedBy uint `gorm:"not null;index"`
	Creator   User `gorm:"foreignKey:CreatedBy"`

	KitVideos []KitVideo `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// KitVideo is a membership pair. Removing one never touches the video.
type KitVideo struct {
	KitID   uint  `gorm:"primaryKey"`
	VideoID uint  `gorm:"primaryKey"`
	Video   Video `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
}

type KitDAO struct {
	db *gorm.DB
}

func NewKitDAO(db *gorm.DB) *KitDAO {
	return &KitDAO{
		db: db,
	}
}

// preloadVideos loads memberships in insertion order with their live videos.
// prefix names the kit association when the kit itself is preloaded.
func preloadVideos(db *gorm.DB, prefix string) *gorm.DB {
	return db.Preload(prefix+"KitVideos", func(db *gorm.DB) *gorm.DB {
		return db.Select("kit_videos.*").
			Joins("JOIN videos ON videos.id = kit_videos.video_id AND videos.deleted_at IS NULL").
			Order("kit_videos.created_at, kit_videos.video_id")
	}).Preload(prefix + "KitVideos.Video")
}

// Insert creates the kit and its memberships in one transaction.
func (d *KitDAO) Insert(ctx context.Context, kit Kit, videoIDs []uint) (Kit, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("KitVideos", "Creator").Create(&kit).Error; err != nil {
			return err
		}

		return insertMembers(tx, kit.ID, videoIDs)
	})
	if err != nil {
		return Kit{}, err
	}

	return d.FindByID(ctx, kit.ID)
}

func insertMembers(tx *gorm.DB, kitID uint, videoIDs []uint) error {
	if len(videoIDs) == 0 {
		return nil
	}

	rows := make([]KitVideo, 0, len(videoIDs))
	for _, id := range videoIDs {
		rows = append(rows, KitVideo{KitID: kitID, VideoID: id})
	}

	return tx.Omit("Video").Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (d *KitDAO) FindByID(ctx context.Context, id uint) (Kit, error) {
	var kit Kit

	result := preloadVideos(d.db.WithContext(ctx), "").First(&kit, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Kit{}, ErrKitNotFound
		}

		return Kit{}, result.Error
	}

	return kit, nil
}

func (d *KitDAO) FindAll(ctx context.Context) ([]Kit, error) {
	var kits []Kit

	result := preloadVideos(d.db.WithContext(ctx), "").Order("created_at DESC, id DESC").Find(&kits)
	if result.Error != nil {
		return nil, result.Error
	}

	return kits, nil
}

func (d *KitDAO) Update(ctx context.Context, id uint, name *string, price *float64) (Kit, error) {
	changes := map[string]any{}
	if name != nil {
		changes["name"] = *name
	}
	if price != nil {
		changes["price"] = *price
	}

	if len(changes) > 0 {
		result := d.db.WithContext(ctx).Model(&Kit{ID: id}).Updates(changes)
		if result.Error != nil {
			return Kit{}, result.Error
		}
		if result.RowsAffected == 0 {
			return Kit{}, ErrKitNotFound
		}
	}

	return d.FindByID(ctx, id)
}

// Delete soft-deletes the kit and drops its memberships.
func (d *KitDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Kit{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrKitNotFound
		}

		return tx.Where("kit_id = ?", id).Delete(&KitVideo{}).Error
	})
}

// AddVideos inserts memberships, skipping pairs that already exist.
func (d *KitDAO) AddVideos(ctx context.Context, kitID uint, videoIDs []uint) (Kit, error) {
	if err := insertMembers(d.db.WithContext(ctx), kitID, videoIDs); err != nil {
		return Kit{}, err
	}

	return d.FindByID(ctx, kitID)
}

// RemoveVideo deletes one membership and reports whether it existed.
func (d *KitDAO) RemoveVideo(ctx context.Context, kitID, videoID uint) (bool, error) {
	result := d.db.WithContext(ctx).
		Where("kit_id = ? AND video_id = ?", kitID, videoID).
		Delete(&KitVideo{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (d *KitDAO) Count(ctx context.Context) (int64, error) {
	var n int64

	result := d.db.WithContext(ctx).Model(&Kit{}).Count(&n)
	if result.Error != nil {
		return 0, result.Error
	}

	return n, nil
}
