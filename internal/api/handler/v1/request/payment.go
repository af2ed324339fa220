package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// CreatePaymentIntentRequest is the generic checkout submission. Raw card
// numbers are rejected at the edge: only provider method tokens are
// accepted. Purchase context (purpose, competition) travels in the
// metadata map, mirroring what the provider receives.
type CreatePaymentIntentRequest struct {
	// Amount in minor currency units. Ignored for purposes whose price
	// is decided server-side.
	Amount          int64             `json:"amount"`
	Description     string            `json:"description"`
	Metadata        map[string]string `json:"metadata"`
	PaymentMethodID string            `json:"payment_method_id"`
}

func (r CreatePaymentIntentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.Min(0)),
		validation.Field(&r.PaymentMethodID, validation.Required, validation.Length(1, 255)),
	)
}

// ProcessPaymentRequest resumes an attempt after step-up authentication.
type ProcessPaymentRequest struct {
	AttemptID string `json:"attempt_id"`
}

func (r ProcessPaymentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AttemptID, validation.Required, validation.Length(1, 64)),
	)
}

type PayForEntryRequest struct {
	CompetitionID   uint   `json:"competition_id"`
	PaymentMethodID string `json:"payment_method_id"`
	AttemptID       string `json:"attempt_id"`
}

func (r PayForEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CompetitionID, validation.Required),
		validation.Field(&r.PaymentMethodID, validation.Required, validation.Length(1, 255)),
	)
}

type UpgradeToPremiumRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
	AttemptID       string `json:"attempt_id"`
}

func (r UpgradeToPremiumRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PaymentMethodID, validation.Required, validation.Length(1, 255)),
	)
}

type FundWalletRequest struct {
	// Amount in minor currency units.
	Amount          int64  `json:"amount"`
	PaymentMethodID string `json:"payment_method_id"`
	AttemptID       string `json:"attempt_id"`
}

func (r FundWalletRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.Required, validation.Min(100)),
		validation.Field(&r.PaymentMethodID, validation.Required, validation.Length(1, 255)),
	)
}
