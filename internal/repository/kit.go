package repository

import (
	"context"
	"fmt"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/repository/dao"
)

var ErrKitNotFound = dao.ErrKitNotFound

type KitDAO interface {
	Insert(ctx context.Context, kit dao.Kit, videoIDs []uint) (dao.Kit, error)
	FindByID(ctx context.Context, id uint) (dao.Kit, error)
	FindAll(ctx context.Context) ([]dao.Kit, error)
	Update(ctx context.Context, id uint, name *string, price *float64) (dao.Kit, error)
	Delete(ctx context.Context, id uint) error
	AddVideos(ctx context.Context, kitID uint, videoIDs []uint) (dao.Kit, error)
	RemoveVideo(ctx context.Context, kitID, videoID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type KitRepository struct {
	dao KitDAO
}

func NewKitRepository(dao KitDAO) *KitRepository {
	return &KitRepository{
		dao: dao,
	}
}

func (r *KitRepository) Create(ctx context.Context, kit domain.Kit, videoIDs []uint) (domain.Kit, error) {
	created, err := r.dao.Insert(ctx, dao.Kit{
		Name:      kit.Name,
		Price:     kit.Price,
		Thumbnail: kit.Thumbnail,
		CreatedBy: kit.CreatedBy,
	}, videoIDs)
	if err != nil {
		return domain.Kit{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return kitToDomain(created), nil
}

func (r *KitRepository) FindByID(ctx context.Context, id uint) (domain.Kit, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Kit{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return kitToDomain(found), nil
}

func (r *KitRepository) FindAll(ctx context.Context) ([]domain.Kit, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	kits := make([]domain.Kit, 0, len(found))
	for _, k := range found {
		kits = append(kits, kitToDomain(k))
	}

	return kits, nil
}

func (r *KitRepository) Update(ctx context.Context, id uint, update domain.KitUpdate) (domain.Kit, error) {
	updated, err := r.dao.Update(ctx, id, update.Name, update.Price)
	if err != nil {
		return domain.Kit{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return kitToDomain(updated), nil
}

func (r *KitRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *KitRepository) AddVideos(ctx context.Context, kitID uint, videoIDs []uint) (domain.Kit, error) {
	updated, err := r.dao.AddVideos(ctx, kitID, videoIDs)
	if err != nil {
		return domain.Kit{}, fmt.Errorf("r.dao.AddVideos -> %w", err)
	}

	return kitToDomain(updated), nil
}

func (r *KitRepository) RemoveVideo(ctx context.Context, kitID, videoID uint) (bool, error) {
	removed, err := r.dao.RemoveVideo(ctx, kitID, videoID)
	if err != nil {
		return false, fmt.Errorf("r.dao.RemoveVideo -> %w", err)
	}

	return removed, nil
}

func (r *KitRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return n, nil
}

func kitToDomain(k dao.Kit) domain.Kit {
	videos := make([]domain.Video, 0, len(k.KitVideos))
	for _, kv := range k.KitVideos {
		if kv.Video.ID == 0 {
			continue
		}
		videos = append(videos, videoToDomain(kv.Video))
	}

	return domain.Kit{
		ID:        k.ID,
		Name:      k.Name,
		Price:     k.Price,
		Thumbnail: k.Thumbnail,
		CreatedBy: k.CreatedBy,
		Videos:    videos,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}
