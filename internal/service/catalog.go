package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

type CatalogPaymentReader interface {
	FindPaymentsByUser(ctx context.Context, userID uint) ([]domain.Payment, error)
	FindKitPurchasesByUser(ctx context.Context, userID uint) ([]domain.KitPurchase, error)
}

type VideoLister interface {
	FindAll(ctx context.Context) ([]domain.Video, error)
}

// CatalogService partitions the catalog per user. Inputs are read on every
// call so decisions show up immediately.
type CatalogService struct {
	videos   VideoLister
	kits     KitLister
	payments CatalogPaymentReader
}

func NewCatalogService(videos VideoLister, kits KitLister, payments CatalogPaymentReader) *CatalogService {
	return &CatalogService{
		videos:   videos,
		kits:     kits,
		payments: payments,
	}
}

func (s *CatalogService) ForUser(ctx context.Context, actor domain.Actor) (domain.Catalog, error) {
	if err := domain.Authorize(domain.OpViewCatalog, actor.Role); err != nil {
		return domain.Catalog{}, err
	}

	var (
		videos    []domain.Video
		kits      []domain.Kit
		payments  []domain.Payment
		purchases []domain.KitPurchase
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if videos, err = s.videos.FindAll(gctx); err != nil {
			return fmt.Errorf("s.videos.FindAll -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if kits, err = s.kits.FindAll(gctx); err != nil {
			return fmt.Errorf("s.kits.FindAll -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if payments, err = s.payments.FindPaymentsByUser(gctx, actor.UserID); err != nil {
			return fmt.Errorf("s.payments.FindPaymentsByUser -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if purchases, err = s.payments.FindKitPurchasesByUser(gctx, actor.UserID); err != nil {
			return fmt.Errorf("s.payments.FindKitPurchasesByUser -> %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Catalog{}, err
	}

	return domain.Partition(videos, kits, payments, purchases), nil
}

func (s *CatalogService) Summary(ctx context.Context, actor domain.Actor) (domain.Summary, error) {
	catalog, err := s.ForUser(ctx, actor)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Summarize(catalog.Videos), nil
}
