package domain

import (
	"strings"
	"time"
)

type PaymentStatus string

const (
	StatusPending  PaymentStatus = "PENDING"
	StatusApproved PaymentStatus = "APPROVED"
	StatusRejected PaymentStatus = "REJECTED"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseDecision accepts the two statuses an admin may set.
func ParseDecision(s string) (PaymentStatus, error) {
	status := PaymentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsTerminal() {
		return "", ErrInvalidStatus
	}

	return status, nil
}

// ParseStatusFilter accepts any known status, or "" / "ALL" for no filter.
func ParseStatusFilter(s string) (PaymentStatus, error) {
	status := PaymentStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case "", "ALL":
		return "", nil
	case StatusPending, StatusApproved, StatusRejected:
		return status, nil
	default:
		return "", validationError("unknown status filter")
	}
}

// CheckTransition validates a decision against the row's current state.
// PENDING is the only state with outgoing transitions.
func CheckTransition(current, next PaymentStatus) error {
	if !next.IsTerminal() {
		return ErrInvalidStatus
	}
	if current != StatusPending {
		return ErrPaymentAlreadyDecided
	}

	return nil
}

type Payment struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	VideoID   uint          `json:"video_id"`
	ProofURL  string        `json:"proof_url"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	User  *User  `json:"user,omitempty"`
	Video *Video `json:"video,omitempty"`
}

func (p *Payment) Decide(status PaymentStatus) error {
	if err := CheckTransition(p.Status, status); err != nil {
		return err
	}
	p.Status = status

	return nil
}

type KitPurchase struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	KitID     uint          `json:"kit_id"`
	ProofURL  string        `json:"proof_url"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	User *User `json:"user,omitempty"`
	Kit  *Kit  `json:"kit,omitempty"`
}

func (p *KitPurchase) Decide(status PaymentStatus) error {
	if err := CheckTransition(p.Status, status); err != nil {
		return err
	}
	p.Status = status

	return nil
}
