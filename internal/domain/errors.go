package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every input validation failure so callers
// can classify with errors.Is.
var ErrValidation = errors.New("validation failed")

var (
	ErrForbidden     = errors.New("operation not permitted for this role")
	ErrContentLocked = errors.New("content is locked until a payment is approved")

	ErrMissingProof    = validationError("proof of payment is required")
	ErrInvalidStatus   = validationError("status must be APPROVED or REJECTED")
	ErrAmbiguousTarget = validationError("exactly one of video_id or kit_id is required")
	ErrContentIsFree   = validationError("free content does not need a payment")

	ErrUserNotFound        = errors.New("user not found")
	ErrVideoNotFound       = errors.New("video not found")
	ErrKitNotFound         = errors.New("kit not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrKitPurchaseNotFound = errors.New("kit purchase not found")
	ErrNotInKit            = errors.New("video is not part of this kit")

	ErrPaymentAlreadyDecided = errors.New("payment has already been decided")
	ErrVideoNotReady         = errors.New("video is still processing")
)

func validationError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}
