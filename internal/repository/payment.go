package repository

import (
	"context"
	"fmt"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/repository/dao"
)

var (
	ErrPaymentNotFound       = dao.ErrPaymentNotFound
	ErrKitPurchaseNotFound   = dao.ErrKitPurchaseNotFound
	ErrPaymentAlreadyDecided = dao.ErrPaymentAlreadyDecided
)

type PaymentDAO interface {
	InsertPayment(ctx context.Context, payment dao.Payment) (dao.Payment, error)
	FindPaymentByID(ctx context.Context, id uint) (dao.Payment, error)
	FindPayments(ctx context.Context, status string) ([]dao.Payment, error)
	FindPaymentsByUser(ctx context.Context, userID uint) ([]dao.Payment, error)
	FindPaymentsByUserAndVideo(ctx context.Context, userID, videoID uint) ([]dao.Payment, error)
	DecidePayment(ctx context.Context, id uint, status string) (dao.Payment, error)

	InsertKitPurchase(ctx context.Context, purchase dao.KitPurchase) (dao.KitPurchase, error)
	FindKitPurchaseByID(ctx context.Context, id uint) (dao.KitPurchase, error)
	FindKitPurchases(ctx context.Context, status string) ([]dao.KitPurchase, error)
	FindKitPurchasesByUser(ctx context.Context, userID uint) ([]dao.KitPurchase, error)
	FindKitPurchasesByUserAndKit(ctx context.Context, userID, kitID uint) ([]dao.KitPurchase, error)
	DecideKitPurchase(ctx context.Context, id uint, status string) (dao.KitPurchase, error)

	CountPending(ctx context.Context) (payments, purchases int64, err error)
}

type PaymentRepository struct {
	dao PaymentDAO
}

func NewPaymentRepository(dao PaymentDAO) *PaymentRepository {
	return &PaymentRepository{
		dao: dao,
	}
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, userID, videoID uint, proofURL string) (domain.Payment, error) {
	created, err := r.dao.InsertPayment(ctx, dao.Payment{
		UserID:   userID,
		VideoID:  videoID,
		ProofURL: proofURL,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.InsertPayment -> %w", err)
	}

	return paymentToDomain(created), nil
}

func (r *PaymentRepository) FindPaymentByID(ctx context.Context, id uint) (domain.Payment, error) {
	found, err := r.dao.FindPaymentByID(ctx, id)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.FindPaymentByID -> %w", err)
	}

	return paymentToDomain(found), nil
}

func (r *PaymentRepository) FindPayments(ctx context.Context, status domain.PaymentStatus) ([]domain.Payment, error) {
	found, err := r.dao.FindPayments(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPayments -> %w", err)
	}

	return paymentsToDomain(found), nil
}

func (r *PaymentRepository) FindPaymentsByUser(ctx context.Context, userID uint) ([]domain.Payment, error) {
	found, err := r.dao.FindPaymentsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPaymentsByUser -> %w", err)
	}

	return paymentsToDomain(found), nil
}

func (r *PaymentRepository) FindPaymentsByUserAndVideo(ctx context.Context, userID, videoID uint) ([]domain.Payment, error) {
	found, err := r.dao.FindPaymentsByUserAndVideo(ctx, userID, videoID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPaymentsByUserAndVideo -> %w", err)
	}

	return paymentsToDomain(found), nil
}

func (r *PaymentRepository) DecidePayment(ctx context.Context, id uint, status domain.PaymentStatus) (domain.Payment, error) {
	updated, err := r.dao.DecidePayment(ctx, id, string(status))
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.DecidePayment -> %w", err)
	}

	return paymentToDomain(updated), nil
}

func (r *PaymentRepository) CreateKitPurchase(ctx context.Context, userID, kitID uint, proofURL string) (domain.KitPurchase, error) {
	created, err := r.dao.InsertKitPurchase(ctx, dao.KitPurchase{
		UserID:   userID,
		KitID:    kitID,
		ProofURL: proofURL,
	})
	if err != nil {
		return domain.KitPurchase{}, fmt.Errorf("r.dao.InsertKitPurchase -> %w", err)
	}

	return kitPurchaseToDomain(created), nil
}

func (r *PaymentRepository) FindKitPurchaseByID(ctx context.Context, id uint) (domain.KitPurchase, error) {
	found, err := r.dao.FindKitPurchaseByID(ctx, id)
	if err != nil {
		return domain.KitPurchase{}, fmt.Errorf("r.dao.FindKitPurchaseByID -> %w", err)
	}

	return kitPurchaseToDomain(found), nil
}

func (r *PaymentRepository) FindKitPurchases(ctx context.Context, status domain.PaymentStatus) ([]domain.KitPurchase, error) {
	found, err := r.dao.FindKitPurchases(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindKitPurchases -> %w", err)
	}

	return kitPurchasesToDomain(found), nil
}

func (r *PaymentRepository) FindKitPurchasesByUser(ctx context.Context, userID uint) ([]domain.KitPurchase, error) {
	found, err := r.dao.FindKitPurchasesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindKitPurchasesByUser -> %w", err)
	}

	return kitPurchasesToDomain(found), nil
}

func (r *PaymentRepository) FindKitPurchasesByUserAndKit(ctx context.Context, userID, kitID uint) ([]domain.KitPurchase, error) {
	found, err := r.dao.FindKitPurchasesByUserAndKit(ctx, userID, kitID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindKitPurchasesByUserAndKit -> %w", err)
	}

	return kitPurchasesToDomain(found), nil
}

func (r *PaymentRepository) DecideKitPurchase(ctx context.Context, id uint, status domain.PaymentStatus) (domain.KitPurchase, error) {
	updated, err := r.dao.DecideKitPurchase(ctx, id, string(status))
	if err != nil {
		return domain.KitPurchase{}, fmt.Errorf("r.dao.DecideKitPurchase -> %w", err)
	}

	return kitPurchaseToDomain(updated), nil
}

func (r *PaymentRepository) CountPending(ctx context.Context) (int64, int64, error) {
	payments, purchases, err := r.dao.CountPending(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("r.dao.CountPending -> %w", err)
	}

	return payments, purchases, nil
}

func paymentToDomain(p dao.Payment) domain.Payment {
	payment := domain.Payment{
		ID:        p.ID,
		UserID:    p.UserID,
		VideoID:   p.VideoID,
		ProofURL:  p.ProofURL,
		Status:    domain.PaymentStatus(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.User.ID != 0 {
		user := userToDomain(p.User)
		payment.User = &user
	}
	if p.Video.ID != 0 {
		video := videoToDomain(p.Video)
		payment.Video = &video
	}

	return payment
}

func paymentsToDomain(payments []dao.Payment) []domain.Payment {
	out := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentToDomain(p))
	}

	return out
}

func kitPurchaseToDomain(p dao.KitPurchase) domain.KitPurchase {
	purchase := domain.KitPurchase{
		ID:        p.ID,
		UserID:    p.UserID,
		KitID:     p.KitID,
		ProofURL:  p.ProofURL,
		Status:    domain.PaymentStatus(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.User.ID != 0 {
		user := userToDomain(p.User)
		purchase.User = &user
	}
	if p.Kit.ID != 0 {
		kit := kitToDomain(p.Kit)
		purchase.Kit = &kit
	}

	return purchase
}

func kitPurchasesToDomain(purchases []dao.KitPurchase) []domain.KitPurchase {
	out := make([]domain.KitPurchase, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, kitPurchaseToDomain(p))
	}

	return out
}
