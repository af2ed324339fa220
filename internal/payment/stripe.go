// Package payment wraps the Stripe client behind the narrow interface the
// checkout service consumes.
package payment

import (
	"context"
	"errors"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"prizedraw-api/internal/config"
)

// IntentStatus is the provider-side outcome of a create/confirm call.
type IntentStatus string

const (
	IntentSucceeded      IntentStatus = "succeeded"
	IntentRequiresAction IntentStatus = "requires_action"
	IntentFailed         IntentStatus = "failed"
)

type Intent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
}

type IntentRequest struct {
	// Amount in minor currency units.
	Amount          int64
	Currency        string
	Description     string
	PaymentMethodID string
	Metadata        map[string]string
}

// MethodError marks failures of the payment method itself (declined or
// malformed card), as opposed to infrastructure errors. The message is
// safe to surface to the cardholder.
type MethodError struct {
	Message string
}

func (e *MethodError) Error() string {
	return e.Message
}

type StripeProvider struct {
	sc       *client.API
	currency string
}

func NewStripeProvider(conf *config.StripeConfig) *StripeProvider {
	sc := &client.API{}
	sc.Init(conf.SecretKey, nil)

	return &StripeProvider{
		sc:       sc,
		currency: conf.Currency,
	}
}

// CreateIntent creates and immediately attempts to confirm a manual-capture
// PaymentIntent for the tokenized method. Raw card data never reaches this
// API; only the method token does.
func (p *StripeProvider) CreateIntent(ctx context.Context, req IntentRequest) (Intent, error) {
	currency := req.Currency
	if currency == "" {
		currency = p.currency
	}

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(currency),
		PaymentMethod:      stripe.String(req.PaymentMethodID),
		Description:        stripe.String(req.Description),
		Confirm:            stripe.Bool(true),
		ConfirmationMethod: stripe.String(string(stripe.PaymentIntentConfirmationMethodManual)),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		return Intent{}, mapStripeError(err)
	}

	return fromPaymentIntent(pi), nil
}

// ConfirmIntent finishes an intent after the cardholder completed step-up
// authentication.
func (p *StripeProvider) ConfirmIntent(ctx context.Context, intentID string) (Intent, error) {
	params := &stripe.PaymentIntentConfirmParams{
		Params: stripe.Params{
			Context: ctx,
		},
	}

	pi, err := p.sc.PaymentIntents.Confirm(intentID, params)
	if err != nil {
		return Intent{}, mapStripeError(err)
	}

	return fromPaymentIntent(pi), nil
}

func fromPaymentIntent(pi *stripe.PaymentIntent) Intent {
	intent := Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		intent.Status = IntentSucceeded
	case stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresConfirmation:
		intent.Status = IntentRequiresAction
	default:
		intent.Status = IntentFailed
	}

	return intent
}

func mapStripeError(err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) && sErr.Type == stripe.ErrorTypeCard {
		return &MethodError{Message: sErr.Msg}
	}

	return err
}
