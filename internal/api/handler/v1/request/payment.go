package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

// SubmitPaymentRequest is the non-file part of the multipart payment form.
type SubmitPaymentRequest struct {
	VideoID uint `form:"video_id"`
	KitID   uint `form:"kit_id"`
}

func (req *SubmitPaymentRequest) Validate() error {
	if (req.VideoID == 0) == (req.KitID == 0) {
		return domain.ErrAmbiguousTarget
	}

	return nil
}

type DecidePaymentRequest struct {
	Status string `json:"status"`

	status domain.PaymentStatus
}

func (req *DecidePaymentRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required),
	)
	if err != nil {
		return err
	}

	req.status, err = domain.ParseDecision(req.Status)

	return err
}

func (req *DecidePaymentRequest) Decision() domain.PaymentStatus {
	return req.status
}
