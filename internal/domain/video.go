package domain

import (
	"strings"
	"time"
)

type PaymentMethod string

const (
	PaymentMethodFree PaymentMethod = "Free"
	PaymentMethodPaid PaymentMethod = "Paid"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return PaymentMethodFree, true
	case "paid":
		return PaymentMethodPaid, true
	default:
		return "", false
	}
}

type Video struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Subtitle      *string       `json:"subtitle,omitempty"`
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	Difficulty    *string       `json:"difficulty,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Price         *float64      `json:"price,omitempty"`
	UploadID      string        `json:"upload_id"`
	PlaybackID    *string       `json:"playback_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// IsFree is true for Free videos and for Paid videos without a positive price.
func (v Video) IsFree() bool {
	if v.PaymentMethod == PaymentMethodFree {
		return true
	}

	return v.Price == nil || *v.Price <= 0
}

// IsPlayable reports whether the video host has produced a playback id yet.
func (v Video) IsPlayable() bool {
	return v.PlaybackID != nil && *v.PlaybackID != ""
}
