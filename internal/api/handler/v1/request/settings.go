package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

type PaymentChannelRequest struct {
	Account      string `json:"account"`
	Owner        string `json:"owner"`
	Instructions string `json:"instructions"`
}

func (req *PaymentChannelRequest) Validate() error {
	req.Account = strings.TrimSpace(req.Account)
	req.Owner = strings.TrimSpace(req.Owner)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Account, validation.Length(0, 255)),
		validation.Field(&req.Owner, validation.Length(0, 255)),
		validation.Field(&req.Instructions, validation.Length(0, 2000)),
	)
}

func (req *PaymentChannelRequest) toDomain() domain.PaymentChannel {
	return domain.PaymentChannel{
		Account:      req.Account,
		Owner:        req.Owner,
		Instructions: req.Instructions,
	}
}

type PaymentSettingsRequest struct {
	MobileMoney *PaymentChannelRequest `json:"mobileMoney"`
	Crypto      *PaymentChannelRequest `json:"crypto"`
}

func (req *PaymentSettingsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MobileMoney, validation.Required),
		validation.Field(&req.Crypto, validation.Required),
	)
}

func (req *PaymentSettingsRequest) ToDomain() domain.PaymentSettings {
	return domain.PaymentSettings{
		MobileMoney: req.MobileMoney.toDomain(),
		Crypto:      req.Crypto.toDomain(),
	}
}
