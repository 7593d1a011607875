// Package events announces payment workflow changes to other processes.
package events

import (
	"context"
	"time"
)

const (
	PaymentSubmitted = "payment.submitted"
	PaymentDecided   = "payment.decided"

	KindVideo = "video"
	KindKit   = "kit"
)

type Event struct {
	Name       string    `json:"name"`
	Kind       string    `json:"kind"`
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	ContentID  uint      `json:"content_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop drops every event. It is used when Redis is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }
