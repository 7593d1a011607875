package domain

type PaymentChannel struct {
	Account      string `json:"account"`
	Owner        string `json:"owner"`
	Instructions string `json:"instructions"`
}

// PaymentSettings is the singleton shown to students before they pay.
type PaymentSettings struct {
	MobileMoney PaymentChannel `json:"mobileMoney"`
	Crypto      PaymentChannel `json:"crypto"`
}
