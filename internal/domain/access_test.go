package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func price(p float64) *float64 { return &p }

func paidVideo(id uint) Video {
	return Video{ID: id, Title: "paid", PaymentMethod: PaymentMethodPaid, Price: price(20)}
}

func freeVideo(id uint) Video {
	return Video{ID: id, Title: "free", PaymentMethod: PaymentMethodFree}
}

func payments(videoID uint, statuses ...PaymentStatus) []Payment {
	out := make([]Payment, 0, len(statuses))
	for i, s := range statuses {
		out = append(out, Payment{ID: uint(i + 1), UserID: 1, VideoID: videoID, Status: s})
	}
	return out
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		video    Video
		statuses []PaymentStatus
		want     AccessState
	}{
		{"free no history", freeVideo(1), nil, AccessUnlocked},
		{"free ignores rejected", freeVideo(1), []PaymentStatus{StatusRejected}, AccessUnlocked},
		{"free ignores pending", freeVideo(1), []PaymentStatus{StatusPending}, AccessUnlocked},
		{"paid without price is free", Video{ID: 1, PaymentMethod: PaymentMethodPaid}, nil, AccessUnlocked},
		{"paid zero price is free", Video{ID: 1, PaymentMethod: PaymentMethodPaid, Price: price(0)}, nil, AccessUnlocked},
		{"paid no history", paidVideo(1), nil, AccessLocked},
		{"paid rejected only", paidVideo(1), []PaymentStatus{StatusRejected, StatusRejected}, AccessLocked},
		{"paid pending", paidVideo(1), []PaymentStatus{StatusPending}, AccessPending},
		{"pending dominates rejected", paidVideo(1), []PaymentStatus{StatusRejected, StatusPending}, AccessPending},
		{"approved", paidVideo(1), []PaymentStatus{StatusApproved}, AccessUnlocked},
		{"approved dominates all", paidVideo(1), []PaymentStatus{StatusRejected, StatusPending, StatusApproved, StatusRejected}, AccessUnlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.video, tt.statuses))
		})
	}
}

func TestEvaluate_IsPure(t *testing.T) {
	v := paidVideo(1)
	rows := []PaymentStatus{StatusRejected, StatusPending}

	first := Evaluate(v, rows)
	second := Evaluate(v, rows)

	assert.Equal(t, first, second)
	assert.Equal(t, []PaymentStatus{StatusRejected, StatusPending}, rows)
}

func TestEvaluateVideo_IgnoresOtherVideos(t *testing.T) {
	v := paidVideo(1)
	rows := append(payments(1, StatusRejected), payments(2, StatusApproved)...)

	assert.Equal(t, AccessLocked, EvaluateVideo(v, rows))
}

func TestEvaluateKit(t *testing.T) {
	kit := Kit{ID: 7, Price: 50}

	assert.Equal(t, AccessLocked, EvaluateKit(kit, nil))
	assert.Equal(t, AccessPending, EvaluateKit(kit, []KitPurchase{{KitID: 7, Status: StatusPending}}))
	assert.Equal(t, AccessUnlocked, EvaluateKit(kit, []KitPurchase{
		{KitID: 7, Status: StatusRejected},
		{KitID: 7, Status: StatusApproved},
	}))
	assert.Equal(t, AccessLocked, EvaluateKit(kit, []KitPurchase{{KitID: 8, Status: StatusApproved}}))
	assert.Equal(t, AccessUnlocked, EvaluateKit(Kit{ID: 9}, nil))
}

func TestVideoAccess_KitGrant(t *testing.T) {
	v := paidVideo(1)
	kit := Kit{ID: 3, Price: 40, Videos: []Video{v, paidVideo(2)}}

	t.Run("approved kit unlocks member", func(t *testing.T) {
		got := VideoAccess(v, nil, []Kit{kit}, []KitPurchase{{KitID: 3, Status: StatusApproved}})
		assert.Equal(t, AccessUnlocked, got)
	})

	t.Run("pending kit does not change state", func(t *testing.T) {
		got := VideoAccess(v, nil, []Kit{kit}, []KitPurchase{{KitID: 3, Status: StatusPending}})
		assert.Equal(t, AccessLocked, got)

		got = VideoAccess(v, payments(1, StatusPending), []Kit{kit}, []KitPurchase{{KitID: 3, Status: StatusPending}})
		assert.Equal(t, AccessPending, got)
	})

	t.Run("approved kit without the video", func(t *testing.T) {
		got := VideoAccess(paidVideo(5), nil, []Kit{kit}, []KitPurchase{{KitID: 3, Status: StatusApproved}})
		assert.Equal(t, AccessLocked, got)
	})
}
