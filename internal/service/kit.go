package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/repository"
	"github.com/mucyuneje/asamfxproduction/internal/storage"
)

var (
	ErrKitNotFound      = repository.ErrKitNotFound
	ErrNotInKit         = domain.ErrNotInKit
	ErrMissingThumbnail = fmt.Errorf("thumbnail is required: %w", domain.ErrValidation)
	ErrNoVideos         = fmt.Errorf("at least one video is required: %w", domain.ErrValidation)
	ErrInvalidKitPrice  = fmt.Errorf("kit price must be greater than zero: %w", domain.ErrValidation)
	ErrEmptyKitUpdate   = fmt.Errorf("name or price is required: %w", domain.ErrValidation)
)

type KitRepository interface {
	Create(ctx context.Context, kit domain.Kit, videoIDs []uint) (domain.Kit, error)
	FindByID(ctx context.Context, id uint) (domain.Kit, error)
	FindAll(ctx context.Context) ([]domain.Kit, error)
	Update(ctx context.Context, id uint, update domain.KitUpdate) (domain.Kit, error)
	Delete(ctx context.Context, id uint) error
	AddVideos(ctx context.Context, kitID uint, videoIDs []uint) (domain.Kit, error)
	RemoveVideo(ctx context.Context, kitID, videoID uint) (bool, error)
}

type VideoBatchFinder interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Video, error)
}

type KitService struct {
	repo     KitRepository
	videos   VideoBatchFinder
	payments CatalogPaymentReader
	store    FileStore
	now      func() time.Time
}

func NewKitService(repo KitRepository, videos VideoBatchFinder, payments CatalogPaymentReader, store FileStore) *KitService {
	return &KitService{
		repo:     repo,
		videos:   videos,
		payments: payments,
		store:    store,
		now:      time.Now,
	}
}

// Create stores the thumbnail, then the kit and its memberships. Every id in
// videoIDs must name an existing video.
func (s *KitService) Create(ctx context.Context, actor domain.Actor, kit domain.Kit, videoIDs []uint, thumbnail *File) (domain.Kit, error) {
	if err := domain.Authorize(domain.OpManageKits, actor.Role); err != nil {
		return domain.Kit{}, err
	}
	if kit.Price <= 0 {
		return domain.Kit{}, ErrInvalidKitPrice
	}
	if thumbnail.empty() {
		return domain.Kit{}, ErrMissingThumbnail
	}

	ids, err := s.checkVideos(ctx, videoIDs)
	if err != nil {
		return domain.Kit{}, err
	}

	stored, err := putFile(ctx, s.store, storage.PrefixThumbnails, thumbnail, s.now())
	if err != nil {
		return domain.Kit{}, fmt.Errorf("putFile -> %w", err)
	}

	kit.Thumbnail = stored.url
	kit.CreatedBy = actor.UserID
	created, err := s.repo.Create(ctx, kit, ids)
	if err != nil {
		discard(ctx, s.store, stored)
		return domain.Kit{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// List returns every kit with its videos, gated for the caller.
func (s *KitService) List(ctx context.Context, actor domain.Actor) ([]domain.Kit, error) {
	kits, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	gate, err := loadGate(ctx, actor, s.payments, s.repo)
	if err != nil {
		return nil, err
	}

	return gate.Kits(kits), nil
}

func (s *KitService) Update(ctx context.Context, actor domain.Actor, id uint, update domain.KitUpdate) (domain.Kit, error) {
	if err := domain.Authorize(domain.OpManageKits, actor.Role); err != nil {
		return domain.Kit{}, err
	}
	if update.Name == nil && update.Price == nil {
		return domain.Kit{}, ErrEmptyKitUpdate
	}
	if update.Price != nil && *update.Price <= 0 {
		return domain.Kit{}, ErrInvalidKitPrice
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Kit{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *KitService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if err := domain.Authorize(domain.OpManageKits, actor.Role); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// AddVideos adds memberships; videos already in the kit are ignored.
func (s *KitService) AddVideos(ctx context.Context, actor domain.Actor, kitID uint, videoIDs []uint) (domain.Kit, error) {
	if err := domain.Authorize(domain.OpManageKits, actor.Role); err != nil {
		return domain.Kit{}, err
	}
	if _, err := s.repo.FindByID(ctx, kitID); err != nil {
		return domain.Kit{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	ids, err := s.checkVideos(ctx, videoIDs)
	if err != nil {
		return domain.Kit{}, err
	}

	kit, err := s.repo.AddVideos(ctx, kitID, ids)
	if err != nil {
		return domain.Kit{}, fmt.Errorf("s.repo.AddVideos -> %w", err)
	}

	return kit, nil
}

func (s *KitService) RemoveVideo(ctx context.Context, actor domain.Actor, kitID, videoID uint) (domain.Kit, error) {
	if err := domain.Authorize(domain.OpManageKits, actor.Role); err != nil {
		return domain.Kit{}, err
	}
	if _, err := s.repo.FindByID(ctx, kitID); err != nil {
		return domain.Kit{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	removed, err := s.repo.RemoveVideo(ctx, kitID, videoID)
	if err != nil {
		return domain.Kit{}, fmt.Errorf("s.repo.RemoveVideo -> %w", err)
	}
	if !removed {
		return domain.Kit{}, ErrNotInKit
	}

	kit, err := s.repo.FindByID(ctx, kitID)
	if err != nil {
		return domain.Kit{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return kit, nil
}

// checkVideos dedupes ids and fails with ErrVideoNotFound unless all exist.
func (s *KitService) checkVideos(ctx context.Context, videoIDs []uint) ([]uint, error) {
	seen := make(map[uint]struct{}, len(videoIDs))
	ids := make([]uint, 0, len(videoIDs))
	for _, id := range videoIDs {
		if _, ok := seen[id]; ok || id == 0 {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, ErrNoVideos
	}

	found, err := s.videos.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("s.videos.FindByIDs -> %w", err)
	}
	if len(found) != len(ids) {
		return nil, ErrVideoNotFound
	}

	return ids, nil
}
