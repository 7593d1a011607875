package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/events"
	"github.com/mucyuneje/asamfxproduction/internal/repository"
	"github.com/mucyuneje/asamfxproduction/internal/storage"
)

var (
	ErrPaymentNotFound       = repository.ErrPaymentNotFound
	ErrKitPurchaseNotFound   = repository.ErrKitPurchaseNotFound
	ErrPaymentAlreadyDecided = repository.ErrPaymentAlreadyDecided

	ErrMissingProof    = domain.ErrMissingProof
	ErrInvalidStatus   = domain.ErrInvalidStatus
	ErrAmbiguousTarget = domain.ErrAmbiguousTarget
	ErrContentIsFree   = domain.ErrContentIsFree
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, userID, videoID uint, proofURL string) (domain.Payment, error)
	FindPayments(ctx context.Context, status domain.PaymentStatus) ([]domain.Payment, error)
	FindPaymentsByUser(ctx context.Context, userID uint) ([]domain.Payment, error)
	DecidePayment(ctx context.Context, id uint, status domain.PaymentStatus) (domain.Payment, error)

	CreateKitPurchase(ctx context.Context, userID, kitID uint, proofURL string) (domain.KitPurchase, error)
	FindKitPurchases(ctx context.Context, status domain.PaymentStatus) ([]domain.KitPurchase, error)
	FindKitPurchasesByUser(ctx context.Context, userID uint) ([]domain.KitPurchase, error)
	DecideKitPurchase(ctx context.Context, id uint, status domain.PaymentStatus) (domain.KitPurchase, error)
}

type VideoFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Video, error)
}

type KitFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Kit, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// SubmitRequest targets exactly one of a video or a kit.
type SubmitRequest struct {
	VideoID uint
	KitID   uint
	Proof   *File
}

// Submission is the row created by Submit; exactly one field is set.
type Submission struct {
	Payment     *domain.Payment     `json:"payment,omitempty"`
	KitPurchase *domain.KitPurchase `json:"kit_purchase,omitempty"`
}

type PaymentService struct {
	repo      PaymentRepository
	videos    VideoFinder
	kits      KitFinder
	store     FileStore
	publisher EventPublisher
	now       func() time.Time
}

func NewPaymentService(repo PaymentRepository, videos VideoFinder, kits KitFinder, store FileStore, publisher EventPublisher) *PaymentService {
	return &PaymentService{
		repo:      repo,
		videos:    videos,
		kits:      kits,
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *PaymentService) Submit(ctx context.Context, actor domain.Actor, req SubmitRequest) (Submission, error) {
	switch {
	case req.VideoID != 0 && req.KitID == 0:
		p, err := s.SubmitVideoPayment(ctx, actor, req.VideoID, req.Proof)
		if err != nil {
			return Submission{}, err
		}
		return Submission{Payment: &p}, nil
	case req.KitID != 0 && req.VideoID == 0:
		p, err := s.SubmitKitPurchase(ctx, actor, req.KitID, req.Proof)
		if err != nil {
			return Submission{}, err
		}
		return Submission{KitPurchase: &p}, nil
	default:
		return Submission{}, ErrAmbiguousTarget
	}
}

func (s *PaymentService) SubmitVideoPayment(ctx context.Context, actor domain.Actor, videoID uint, proof *File) (domain.Payment, error) {
	if err := domain.Authorize(domain.OpSubmitPayment, actor.Role); err != nil {
		return domain.Payment{}, err
	}
	if proof.empty() {
		return domain.Payment{}, ErrMissingProof
	}

	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.videos.FindByID -> %w", err)
	}
	if video.IsFree() {
		return domain.Payment{}, ErrContentIsFree
	}

	stored, err := putFile(ctx, s.store, storage.PrefixProofs, proof, s.now())
	if err != nil {
		return domain.Payment{}, fmt.Errorf("putFile -> %w", err)
	}

	payment, err := s.repo.CreatePayment(ctx, actor.UserID, video.ID, stored.url)
	if err != nil {
		discard(ctx, s.store, stored)
		return domain.Payment{}, fmt.Errorf("s.repo.CreatePayment -> %w", err)
	}

	s.publish(ctx, events.Event{
		Name:      events.PaymentSubmitted,
		Kind:      events.KindVideo,
		ID:        payment.ID,
		UserID:    payment.UserID,
		ContentID: payment.VideoID,
		Status:    string(payment.Status),
	})

	return payment, nil
}

func (s *PaymentService) SubmitKitPurchase(ctx context.Context, actor domain.Actor, kitID uint, proof *File) (domain.KitPurchase, error) {
	if err := domain.Authorize(domain.OpSubmitPayment, actor.Role); err != nil {
		return domain.KitPurchase{}, err
	}
	if proof.empty() {
		return domain.KitPurchase{}, ErrMissingProof
	}

	kit, err := s.kits.FindByID(ctx, kitID)
	if err != nil {
		return domain.KitPurchase{}, fmt.Errorf("s.kits.FindByID -> %w", err)
	}
	if kit.IsFree() {
		return domain.KitPurchase{}, ErrContentIsFree
	}

	stored, err := putFile(ctx, s.store, storage.PrefixProofs, proof, s.now())
	if err != nil {
		return domain.KitPurchase{}, fmt.Errorf("putFile -> %w", err)
	}

	purchase, err := s.repo.CreateKitPurchase(ctx, actor.UserID, kit.ID, stored.url)
	if err != nil {
		discard(ctx, s.store, stored)
		return domain.KitPurchase{}, fmt.Errorf("s.repo.CreateKitPurchase -> %w", err)
	}

	s.publish(ctx, events.Event{
		Name:      events.PaymentSubmitted,
		Kind:      events.KindKit,
		ID:        purchase.ID,
		UserID:    purchase.UserID,
		ContentID: purchase.KitID,
		Status:    string(purchase.Status),
	})

	return purchase, nil
}

// DecideVideoPayment approves or rejects a PENDING payment. Deciding an
// already decided payment fails with ErrPaymentAlreadyDecided.
func (s *PaymentService) DecideVideoPayment(ctx context.Context, actor domain.Actor, paymentID uint, status domain.PaymentStatus) (domain.Payment, error) {
	if err := domain.Authorize(domain.OpDecidePayment, actor.Role); err != nil {
		return domain.Payment{}, err
	}
	if !status.IsTerminal() {
		return domain.Payment{}, ErrInvalidStatus
	}

	payment, err := s.repo.DecidePayment(ctx, paymentID, status)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.DecidePayment -> %w", err)
	}

	s.publish(ctx, events.Event{
		Name:      events.PaymentDecided,
		Kind:      events.KindVideo,
		ID:        payment.ID,
		UserID:    payment.UserID,
		ContentID: payment.VideoID,
		Status:    string(payment.Status),
	})

	return payment, nil
}

func (s *PaymentService) DecideKitPurchase(ctx context.Context, actor domain.Actor, purchaseID uint, status domain.PaymentStatus) (domain.KitPurchase, error) {
	if err := domain.Authorize(domain.OpDecidePayment, actor.Role); err != nil {
		return domain.KitPurchase{}, err
	}
	if !status.IsTerminal() {
		return domain.KitPurchase{}, ErrInvalidStatus
	}

	purchase, err := s.repo.DecideKitPurchase(ctx, purchaseID, status)
	if err != nil {
		return domain.KitPurchase{}, fmt.Errorf("s.repo.DecideKitPurchase -> %w", err)
	}

	s.publish(ctx, events.Event{
		Name:      events.PaymentDecided,
		Kind:      events.KindKit,
		ID:        purchase.ID,
		UserID:    purchase.UserID,
		ContentID: purchase.KitID,
		Status:    string(purchase.Status),
	})

	return purchase, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, actor domain.Actor, status domain.PaymentStatus) ([]domain.Payment, error) {
	if err := domain.Authorize(domain.OpListAllPayments, actor.Role); err != nil {
		return nil, err
	}

	payments, err := s.repo.FindPayments(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPayments -> %w", err)
	}

	return payments, nil
}

func (s *PaymentService) ListKitPurchases(ctx context.Context, actor domain.Actor, status domain.PaymentStatus) ([]domain.KitPurchase, error) {
	if err := domain.Authorize(domain.OpListAllPayments, actor.Role); err != nil {
		return nil, err
	}

	purchases, err := s.repo.FindKitPurchases(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindKitPurchases -> %w", err)
	}

	return purchases, nil
}

func (s *PaymentService) ListOwnPayments(ctx context.Context, actor domain.Actor) ([]domain.Payment, error) {
	if err := domain.Authorize(domain.OpViewOwnPayments, actor.Role); err != nil {
		return nil, err
	}

	payments, err := s.repo.FindPaymentsByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPaymentsByUser -> %w", err)
	}

	// History is not a way to play: playback ids come from the playback route.
	for i, p := range payments {
		if p.Video != nil {
			v := p.Video.Redacted()
			payments[i].Video = &v
		}
	}

	return payments, nil
}

func (s *PaymentService) ListOwnKitPurchases(ctx context.Context, actor domain.Actor) ([]domain.KitPurchase, error) {
	if err := domain.Authorize(domain.OpViewOwnPayments, actor.Role); err != nil {
		return nil, err
	}

	purchases, err := s.repo.FindKitPurchasesByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindKitPurchasesByUser -> %w", err)
	}

	for i, p := range purchases {
		if p.Kit == nil {
			continue
		}
		kit := *p.Kit
		kit.Videos = make([]domain.Video, len(p.Kit.Videos))
		for j, v := range p.Kit.Videos {
			kit.Videos[j] = v.Redacted()
		}
		purchases[i].Kit = &kit
	}

	return purchases, nil
}

// publish never fails the caller; delivery problems are only logged.
func (s *PaymentService) publish(ctx context.Context, event events.Event) {
	event.OccurredAt = s.now().UTC()

	if err := s.publisher.Publish(ctx, event); err != nil {
		zap.L().Warn("failed to publish event",
			zap.String("event", event.Name),
			zap.Uint("id", event.ID),
			zap.Error(err),
		)
	}
}
