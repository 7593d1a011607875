package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

var ErrVideoNotFound = domain.ErrVideoNotFound

type Video struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Subtitle    *string
	Description string `gorm:"not null"`
	Category    string `gorm:"not null;index"`
	Difficulty  *string

	PaymentMethod string `gorm:"not null"` // "Free" or "Paid"
	Price         *float64

	UploadID   string `gorm:"not null;index"`
	PlaybackID *string

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// VideoChanges are the metadata columns an admin may rewrite.
type VideoChanges struct {
	Title         string
	Subtitle      *string
	Description   string
	Category      string
	Difficulty    *string
	PaymentMethod string
	Price         *float64
}

type VideoDAO struct {
	db *gorm.DB
}

func NewVideoDAO(db *gorm.DB) *VideoDAO {
	return &VideoDAO{
		db: db,
	}
}

func (d *VideoDAO) Insert(ctx context.Context, video Video) (Video, error) {
	result := d.db.WithContext(ctx).Create(&video)
	if result.Error != nil {
		return Video{}, result.Error
	}

	return video, nil
}

func (d *VideoDAO) FindByID(ctx context.Context, id uint) (Video, error) {
	var video Video

	result := d.db.WithContext(ctx).First(&video, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Video{}, ErrVideoNotFound
		}

		return Video{}, result.Error
	}

	return video, nil
}

func (d *VideoDAO) FindAll(ctx context.Context) ([]Video, error) {
	var videos []Video

	result := d.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&videos)
	if result.Error != nil {
		return nil, result.Error
	}

	return videos, nil
}

// FindByIDs returns the live videos among ids, in id order.
func (d *VideoDAO) FindByIDs(ctx context.Context, ids []uint) ([]Video, error) {
	var videos []Video
	if len(ids) == 0 {
		return videos, nil
	}

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&videos)
	if result.Error != nil {
		return nil, result.Error
	}

	return videos, nil
}

func (d *VideoDAO) Update(ctx context.Context, id uint, changes VideoChanges) (Video, error) {
	result := d.db.WithContext(ctx).Model(&Video{ID: id}).Select(
		"Title", "Subtitle", "Description", "Category", "Difficulty", "PaymentMethod", "Price",
	).Updates(Video{
		Title:         changes.Title,
		Subtitle:      changes.Subtitle,
		Description:   changes.Description,
		Category:      changes.Category,
		Difficulty:    changes.Difficulty,
		PaymentMethod: changes.PaymentMethod,
		Price:         changes.Price,
	})
	if result.Error != nil {
		return Video{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Video{}, ErrVideoNotFound
	}

	return d.FindByID(ctx, id)
}

// SetPlaybackByUploadID stores the playback id on every live video created
// from the given upload and reports how many were updated.
func (d *VideoDAO) SetPlaybackByUploadID(ctx context.Context, uploadID, playbackID string) (int64, error) {
	result := d.db.WithContext(ctx).Model(&Video{}).
		Where("upload_id = ?", uploadID).
		Update("playback_id", playbackID)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// Delete soft-deletes the video so payment history keeps its reference, and
// drops it from every kit.
func (d *VideoDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Video{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVideoNotFound
		}

		return tx.Where("video_id = ?", id).Delete(&KitVideo{}).Error
	})
}

func (d *VideoDAO) Count(ctx context.Context) (int64, error) {
	var n int64

	result := d.db.WithContext(ctx).Model(&Video{}).Count(&n)
	if result.Error != nil {
		return 0, result.Error
	}

	return n, nil
}
