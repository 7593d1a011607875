package repository

import (
	"context"
	"fmt"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/repository/dao"
)

var ErrVideoNotFound = dao.ErrVideoNotFound

type VideoDAO interface {
	Insert(ctx context.Context, video dao.Video) (dao.Video, error)
	FindByID(ctx context.Context, id uint) (dao.Video, error)
	FindAll(ctx context.Context) ([]dao.Video, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Video, error)
	Update(ctx context.Context, id uint, changes dao.VideoChanges) (dao.Video, error)
	SetPlaybackByUploadID(ctx context.Context, uploadID, playbackID string) (int64, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type VideoRepository struct {
	dao VideoDAO
}

func NewVideoRepository(dao VideoDAO) *VideoRepository {
	return &VideoRepository{
		dao: dao,
	}
}

func (r *VideoRepository) Create(ctx context.Context, video domain.Video) (domain.Video, error) {
	created, err := r.dao.Insert(ctx, dao.Video{
		Title:         video.Title,
		Subtitle:      video.Subtitle,
		Description:   video.Description,
		Category:      video.Category,
		Difficulty:    video.Difficulty,
		PaymentMethod: string(video.PaymentMethod),
		Price:         video.Price,
		UploadID:      video.UploadID,
		PlaybackID:    video.PlaybackID,
	})
	if err != nil {
		return domain.Video{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return videoToDomain(created), nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id uint) (domain.Video, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Video{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return videoToDomain(found), nil
}

func (r *VideoRepository) FindAll(ctx context.Context) ([]domain.Video, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return videosToDomain(found), nil
}

func (r *VideoRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Video, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	return videosToDomain(found), nil
}

// Update rewrites the metadata of the video. Upload and playback ids are kept.
func (r *VideoRepository) Update(ctx context.Context, video domain.Video) (domain.Video, error) {
	updated, err := r.dao.Update(ctx, video.ID, dao.VideoChanges{
		Title:         video.Title,
		Subtitle:      video.Subtitle,
		Description:   video.Description,
		Category:      video.Category,
		Difficulty:    video.Difficulty,
		PaymentMethod: string(video.PaymentMethod),
		Price:         video.Price,
	})
	if err != nil {
		return domain.Video{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return videoToDomain(updated), nil
}

func (r *VideoRepository) SetPlaybackByUploadID(ctx context.Context, uploadID, playbackID string) (int64, error) {
	n, err := r.dao.SetPlaybackByUploadID(ctx, uploadID, playbackID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SetPlaybackByUploadID -> %w", err)
	}

	return n, nil
}

func (r *VideoRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *VideoRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return n, nil
}

func videoToDomain(v dao.Video) domain.Video {
	method, ok := domain.ParsePaymentMethod(v.PaymentMethod)
	if !ok {
		method = domain.PaymentMethodPaid
	}

	return domain.Video{
		ID:            v.ID,
		Title:         v.Title,
		Subtitle:      v.Subtitle,
		Description:   v.Description,
		Category:      v.Category,
		Difficulty:    v.Difficulty,
		PaymentMethod: method,
		Price:         v.Price,
		UploadID:      v.UploadID,
		PlaybackID:    v.PlaybackID,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func videosToDomain(videos []dao.Video) []domain.Video {
	out := make([]domain.Video, 0, len(videos))
	for _, v := range videos {
		out = append(out, videoToDomain(v))
	}

	return out
}
