package domain

import "time"

// PaymentStatus tracks a checkout attempt through the card flow. The
// client-side states (collecting details, tokenizing the method) never
// reach this API; an attempt is persisted from the moment the tokenized
// method is submitted for a server decision.
type PaymentStatus string

const (
	PaymentAwaitingDecision PaymentStatus = "awaiting_decision"
	PaymentRequiresStepUp   PaymentStatus = "requires_step_up"
	PaymentConfirmingStepUp PaymentStatus = "confirming_step_up"
	PaymentSucceeded        PaymentStatus = "succeeded"
	PaymentFailed           PaymentStatus = "failed"
)

// Terminal reports whether the attempt reached a one-shot end state.
// A finished attempt is never resubmitted; retrying means a new attempt.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentSucceeded || s == PaymentFailed
}

type PaymentPurpose string

const (
	PaymentForEntry   PaymentPurpose = "entry"
	PaymentForPremium PaymentPurpose = "premium"
	PaymentForWallet  PaymentPurpose = "wallet"
)

type Payment struct {
	ID            uint           `json:"id"`
	AttemptID     string         `json:"attemptId"`
	UserID        uint           `json:"userId"`
	Purpose       PaymentPurpose `json:"purpose"`
	CompetitionID *uint          `json:"competitionId,omitempty"`
	// Amount is in minor currency units.
	Amount          int64         `json:"amount"`
	Currency        string        `json:"currency"`
	Description     string        `json:"description"`
	PaymentMethodID string        `json:"-"`
	ProviderIntentID string       `json:"-"`
	Status          PaymentStatus `json:"status"`
	FailureMessage  string        `json:"failureMessage,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
