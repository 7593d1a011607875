package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type PendingCounter interface {
	CountPending(ctx context.Context) (int64, int64, error)
}

// Stats are the admin dashboard totals.
type Stats struct {
	Videos              int64 `json:"videos"`
	Kits                int64 `json:"kits"`
	Users               int64 `json:"users"`
	PendingPayments     int64 `json:"pending_payments"`
	PendingKitPurchases int64 `json:"pending_kit_purchases"`
}

type StatsService struct {
	videos   Counter
	kits     Counter
	users    Counter
	payments PendingCounter
}

func NewStatsService(videos, kits, users Counter, payments PendingCounter) *StatsService {
	return &StatsService{
		videos:   videos,
		kits:     kits,
		users:    users,
		payments: payments,
	}
}

func (s *StatsService) Get(ctx context.Context, actor domain.Actor) (Stats, error) {
	if err := domain.Authorize(domain.OpViewStats, actor.Role); err != nil {
		return Stats{}, err
	}

	var stats Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if stats.Videos, err = s.videos.Count(gctx); err != nil {
			return fmt.Errorf("s.videos.Count -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if stats.Kits, err = s.kits.Count(gctx); err != nil {
			return fmt.Errorf("s.kits.Count -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if stats.Users, err = s.users.Count(gctx); err != nil {
			return fmt.Errorf("s.users.Count -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if stats.PendingPayments, stats.PendingKitPurchases, err = s.payments.CountPending(gctx); err != nil {
			return fmt.Errorf("s.payments.CountPending -> %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	return stats, nil
}
