package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

var errPaidVideoPrice = errors.New("price: must be greater than zero for paid videos")

var paymentMethodRule = validation.By(func(value any) error {
	s, _ := value.(string)
	if _, ok := domain.ParsePaymentMethod(s); !ok {
		return errors.New("must be Free or Paid")
	}
	return nil
})

// VideoRequest holds the metadata shared by create and update. Optional
// fields stay nil when absent.
type VideoRequest struct {
	Title         string   `json:"title"`
	Subtitle      *string  `json:"subtitle"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Difficulty    *string  `json:"difficulty"`
	PaymentMethod string   `json:"payment_method"`
	Price         *float64 `json:"price"`
}

func (req *VideoRequest) Validate() error {
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Subtitle, validation.Length(0, 200)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Difficulty, validation.Length(0, 50)),
		validation.Field(&req.PaymentMethod, validation.Required, paymentMethodRule),
		validation.Field(&req.Price, validation.Min(0.0)),
	)
	if err != nil {
		return err
	}

	method, _ := domain.ParsePaymentMethod(req.PaymentMethod)
	if method == domain.PaymentMethodPaid && (req.Price == nil || *req.Price <= 0) {
		return errPaidVideoPrice
	}

	return nil
}

func (req *VideoRequest) ToDomain() domain.Video {
	method, _ := domain.ParsePaymentMethod(req.PaymentMethod)

	return domain.Video{
		Title:         req.Title,
		Subtitle:      req.Subtitle,
		Description:   req.Description,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		PaymentMethod: method,
		Price:         req.Price,
	}
}

type CreateVideoRequest struct {
	VideoRequest
	UploadID string `json:"upload_id"`
}

func (req *CreateVideoRequest) Validate() error {
	if err := req.VideoRequest.Validate(); err != nil {
		return err
	}

	req.UploadID = strings.TrimSpace(req.UploadID)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.UploadID, validation.Required, validation.Length(1, 255)),
	)
}

func (req *CreateVideoRequest) ToDomain() domain.Video {
	v := req.VideoRequest.ToDomain()
	v.UploadID = req.UploadID

	return v
}

type UpdateVideoRequest struct {
	VideoRequest
}
