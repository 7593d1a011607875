package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/events"
)

type paymentFixture struct {
	svc       *PaymentService
	repo      *fakePayments
	store     *fakeStore
	publisher *fakePublisher
	video     domain.Video
	kit       domain.Kit
}

func newPaymentFixture() paymentFixture {
	video := domain.Video{ID: 10, Title: "V", PaymentMethod: domain.PaymentMethodPaid, Price: price(20)}
	free := domain.Video{ID: 11, Title: "F", PaymentMethod: domain.PaymentMethodFree}
	videos := newFakeVideos(video, free)
	kit := domain.Kit{ID: 3, Name: "Bundle", Price: 50, Videos: []domain.Video{video}}
	kits := newFakeKits(videos, kit)

	f := paymentFixture{
		repo:      &fakePayments{},
		store:     newFakeStore(),
		publisher: &fakePublisher{},
		video:     video,
		kit:       kit,
	}
	f.svc = NewPaymentService(f.repo, videos, kits, f.store, f.publisher)

	return f
}

func (f paymentFixture) access(t *testing.T) domain.AccessState {
	t.Helper()

	rows, err := f.repo.FindPaymentsByUserAndVideo(context.Background(), student.UserID, f.video.ID)
	require.NoError(t, err)

	return domain.EvaluateVideo(f.video, rows)
}

func TestPaymentService_SubmitThenApprove(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	assert.Equal(t, domain.AccessLocked, f.access(t))

	p, err := f.svc.SubmitVideoPayment(ctx, student, f.video.ID, proof())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, p.Status)
	assert.True(t, strings.HasPrefix(p.ProofURL, "/uploads/proofs/"))
	assert.True(t, strings.HasSuffix(p.ProofURL, "-receipt.png"))
	assert.Len(t, f.store.objects, 1)
	assert.Equal(t, domain.AccessPending, f.access(t))

	decided, err := f.svc.DecideVideoPayment(ctx, admin, p.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, decided.Status)
	assert.Equal(t, domain.AccessUnlocked, f.access(t))

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, events.PaymentSubmitted, f.publisher.events[0].Name)
	assert.Equal(t, events.PaymentDecided, f.publisher.events[1].Name)
	assert.Equal(t, "APPROVED", f.publisher.events[1].Status)
}

func TestPaymentService_SecondDecisionConflicts(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	p, err := f.svc.SubmitVideoPayment(ctx, student, f.video.ID, proof())
	require.NoError(t, err)
	_, err = f.svc.DecideVideoPayment(ctx, admin, p.ID, domain.StatusApproved)
	require.NoError(t, err)

	_, err = f.svc.DecideVideoPayment(ctx, admin, p.ID, domain.StatusRejected)
	assert.ErrorIs(t, err, ErrPaymentAlreadyDecided)
	assert.Equal(t, domain.StatusApproved, f.repo.payments[0].Status)
	assert.Equal(t, domain.AccessUnlocked, f.access(t))
}

func TestPaymentService_ResubmitAfterReject(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	first, err := f.svc.SubmitVideoPayment(ctx, student, f.video.ID, proof())
	require.NoError(t, err)
	_, err = f.svc.DecideVideoPayment(ctx, admin, first.ID, domain.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessLocked, f.access(t))

	second, err := f.svc.SubmitVideoPayment(ctx, student, f.video.ID, proof())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, domain.StatusPending, second.Status)

	require.Len(t, f.repo.payments, 2)
	assert.Equal(t, domain.StatusRejected, f.repo.payments[0].Status)
	assert.Equal(t, domain.AccessPending, f.access(t))
}

func TestPaymentService_SubmitErrors(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		videoID uint
		proof   *File
		wantErr error
	}{
		{"admin cannot submit", admin, 10, proof(), domain.ErrForbidden},
		{"nil proof", student, 10, nil, ErrMissingProof},
		{"empty proof", student, 10, &File{Name: "x.png"}, ErrMissingProof},
		{"nameless proof", student, 10, &File{Content: []byte("x")}, ErrMissingProof},
		{"unknown video", student, 99, proof(), ErrVideoNotFound},
		{"free video", student, 11, proof(), ErrContentIsFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPaymentFixture()

			_, err := f.svc.SubmitVideoPayment(context.Background(), tt.actor, tt.videoID, tt.proof)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.repo.payments, "no row on failure")
			assert.Empty(t, f.store.objects, "nothing stored on failure")
		})
	}
}

func TestPaymentService_ValidationErrorsAreClassified(t *testing.T) {
	for _, err := range []error{ErrMissingProof, ErrInvalidStatus, ErrAmbiguousTarget, ErrContentIsFree} {
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestPaymentService_StoreFailureLeavesNoRow(t *testing.T) {
	f := newPaymentFixture()
	f.store.putErr = errBoom

	_, err := f.svc.SubmitVideoPayment(context.Background(), student, f.video.ID, proof())
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.repo.payments)
	assert.Empty(t, f.publisher.events)
}

func TestPaymentService_InsertFailureRemovesProof(t *testing.T) {
	f := newPaymentFixture()
	f.repo.createErr = errBoom

	_, err := f.svc.SubmitVideoPayment(context.Background(), student, f.video.ID, proof())
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.store.objects)
	assert.Len(t, f.store.deleted, 1)
}

func TestPaymentService_PublishFailureIsIgnored(t *testing.T) {
	f := newPaymentFixture()
	f.publisher.err = errBoom

	p, err := f.svc.SubmitVideoPayment(context.Background(), student, f.video.ID, proof())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, p.Status)
}

func TestPaymentService_DecideErrors(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	p, err := f.svc.SubmitVideoPayment(ctx, student, f.video.ID, proof())
	require.NoError(t, err)

	_, err = f.svc.DecideVideoPayment(ctx, student, p.ID, domain.StatusApproved)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.DecideVideoPayment(ctx, admin, p.ID, domain.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.DecideVideoPayment(ctx, admin, p.ID, "MAYBE")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.DecideVideoPayment(ctx, admin, 999, domain.StatusApproved)
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	assert.Equal(t, domain.StatusPending, f.repo.payments[0].Status, "no mutation on failure")
}

func TestPaymentService_KitPurchaseFlow(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	sub, err := f.svc.Submit(ctx, student, SubmitRequest{KitID: f.kit.ID, Proof: proof()})
	require.NoError(t, err)
	require.NotNil(t, sub.KitPurchase)
	assert.Nil(t, sub.Payment)
	assert.Equal(t, domain.StatusPending, sub.KitPurchase.Status)

	_, err = f.svc.DecideKitPurchase(ctx, admin, sub.KitPurchase.ID, domain.StatusApproved)
	require.NoError(t, err)

	_, err = f.svc.DecideKitPurchase(ctx, admin, sub.KitPurchase.ID, domain.StatusRejected)
	assert.ErrorIs(t, err, ErrPaymentAlreadyDecided)

	_, err = f.svc.DecideKitPurchase(ctx, admin, 999, domain.StatusApproved)
	assert.ErrorIs(t, err, ErrKitPurchaseNotFound)

	purchases, err := f.repo.FindKitPurchasesByUser(ctx, student.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessUnlocked, domain.VideoAccess(f.video, nil, []domain.Kit{f.kit}, purchases))

	_, err = f.svc.SubmitKitPurchase(ctx, student, 404, proof())
	assert.ErrorIs(t, err, ErrKitNotFound)
}

func TestPaymentService_SubmitTarget(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, student, SubmitRequest{Proof: proof()})
	assert.ErrorIs(t, err, ErrAmbiguousTarget)

	_, err = f.svc.Submit(ctx, student, SubmitRequest{VideoID: f.video.ID, KitID: f.kit.ID, Proof: proof()})
	assert.ErrorIs(t, err, ErrAmbiguousTarget)

	sub, err := f.svc.Submit(ctx, student, SubmitRequest{VideoID: f.video.ID, Proof: proof()})
	require.NoError(t, err)
	require.NotNil(t, sub.Payment)
	assert.Equal(t, f.video.ID, sub.Payment.VideoID)
}

func TestPaymentService_Listing(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	_, err := f.svc.SubmitVideoPayment(ctx, student, f.video.ID, proof())
	require.NoError(t, err)
	other := domain.Actor{UserID: 8, Role: domain.RoleStudent}
	_, err = f.svc.SubmitVideoPayment(ctx, other, f.video.ID, proof())
	require.NoError(t, err)

	all, err := f.svc.ListPayments(ctx, admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.ListPayments(ctx, student, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	own, err := f.svc.ListOwnPayments(ctx, student)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, student.UserID, own[0].UserID)
}

func TestPaymentService_OwnHistoryHidesPlayback(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	video := domain.Video{ID: 10, PaymentMethod: domain.PaymentMethodPaid, Price: price(20), PlaybackID: strPtr("pb-10")}
	kit := domain.Kit{ID: 3, Videos: []domain.Video{video}}
	f.repo.payments = append(f.repo.payments, domain.Payment{ID: 1, UserID: student.UserID, VideoID: 10, Status: domain.StatusApproved, Video: &video})
	f.repo.purchases = append(f.repo.purchases, domain.KitPurchase{ID: 1, UserID: student.UserID, KitID: 3, Status: domain.StatusApproved, Kit: &kit})

	own, err := f.svc.ListOwnPayments(ctx, student)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.NotNil(t, own[0].Video)
	assert.Nil(t, own[0].Video.PlaybackID)

	bought, err := f.svc.ListOwnKitPurchases(ctx, student)
	require.NoError(t, err)
	require.Len(t, bought, 1)
	require.NotNil(t, bought[0].Kit)
	require.Len(t, bought[0].Kit.Videos, 1)
	assert.Nil(t, bought[0].Kit.Videos[0].PlaybackID)

	assert.NotNil(t, video.PlaybackID)
	assert.NotNil(t, kit.Videos[0].PlaybackID)
}
