package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prizedraw-api/internal/config"
	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/payment"
	"prizedraw-api/internal/repository"
)

var (
	ErrPaymentNotFound = repository.ErrPaymentNotFound
	ErrNotPaymentOwner = errors.New("payment belongs to another user")
	// ErrAttemptInFlight: the attempt is still being decided; the client
	// must wait for the outcome instead of resubmitting.
	ErrAttemptInFlight = errors.New("payment attempt already in flight")
	// ErrAttemptFinished: the attempt already reached a terminal state;
	// paying again means starting a new attempt.
	ErrAttemptFinished = errors.New("payment attempt already finished")
	ErrNoStepUpPending = errors.New("no step-up authentication pending")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownPurpose  = errors.New("unknown payment purpose")
)

type PaymentProvider interface {
	CreateIntent(ctx context.Context, req payment.IntentRequest) (payment.Intent, error)
	ConfirmIntent(ctx context.Context, intentID string) (payment.Intent, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p domain.Payment) (domain.Payment, error)
	FindByAttemptID(ctx context.Context, attemptID string) (domain.Payment, error)
	Transition(ctx context.Context, attemptID string, from, to domain.PaymentStatus) error
	Update(ctx context.Context, p domain.Payment) (domain.Payment, error)
}

// CheckoutParams is one submission of a tokenized payment method. The
// attempt ID doubles as an idempotency key: resubmitting it never charges
// twice.
type CheckoutParams struct {
	UserID          uint
	Purpose         domain.PaymentPurpose
	CompetitionID   uint
	PaymentMethodID string
	AttemptID       string
	// Amount only applies to wallet top-ups; entry and premium prices
	// are decided server-side.
	Amount int64
}

// CheckoutResult is the explicit outcome of a checkout call. Exactly one
// of the non-terminal branches applies: a succeeded attempt may carry the
// entry it produced, a step-up carries the client secret to complete it,
// and a failure carries a cardholder-safe message.
type CheckoutResult struct {
	AttemptID    string               `json:"attemptId"`
	Status       domain.PaymentStatus `json:"status"`
	ClientSecret string               `json:"clientSecret,omitempty"`
	Message      string               `json:"message,omitempty"`
	Entry        *domain.Entry        `json:"entry,omitempty"`
}

type PaymentService struct {
	repo     PaymentRepository
	provider PaymentProvider
	compRepo EntryCompetitionRepository
	entries  *EntryService
	users    *UserService
	conf     *config.StripeConfig
}

func NewPaymentService(repo PaymentRepository, provider PaymentProvider, compRepo EntryCompetitionRepository, entries *EntryService, users *UserService, conf *config.StripeConfig) *PaymentService {
	return &PaymentService{
		repo:     repo,
		provider: provider,
		compRepo: compRepo,
		entries:  entries,
		users:    users,
		conf:     conf,
	}
}

// StartCheckout submits a tokenized method for a server decision. The
// attempt is persisted before the provider is called, so a duplicate
// submission of the same attempt ID is rejected rather than re-charged.
func (s *PaymentService) StartCheckout(ctx context.Context, params CheckoutParams) (CheckoutResult, error) {
	if params.AttemptID == "" {
		params.AttemptID = uuid.NewString()
	}

	existing, err := s.repo.FindByAttemptID(ctx, params.AttemptID)
	if err == nil {
		if existing.Status.Terminal() {
			return CheckoutResult{}, ErrAttemptFinished
		}

		return CheckoutResult{}, ErrAttemptInFlight
	}
	if !errors.Is(err, repository.ErrPaymentNotFound) {
		return CheckoutResult{}, fmt.Errorf("s.repo.FindByAttemptID -> %w", err)
	}

	attempt, err := s.buildAttempt(ctx, params)
	if err != nil {
		return CheckoutResult{}, err
	}

	attempt, err = s.repo.Create(ctx, attempt)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	intent, err := s.provider.CreateIntent(ctx, payment.IntentRequest{
		Amount:          attempt.Amount,
		Currency:        attempt.Currency,
		Description:     attempt.Description,
		PaymentMethodID: attempt.PaymentMethodID,
		Metadata: map[string]string{
			"attempt_id": attempt.AttemptID,
			"purpose":    string(attempt.Purpose),
		},
	})
	if err != nil {
		return s.settleProviderError(ctx, attempt, domain.PaymentAwaitingDecision, err)
	}

	attempt.ProviderIntentID = intent.ID

	switch intent.Status {
	case payment.IntentRequiresAction:
		if err = s.repo.Transition(ctx, attempt.AttemptID, domain.PaymentAwaitingDecision, domain.PaymentRequiresStepUp); err != nil {
			return CheckoutResult{}, err
		}
		attempt.Status = domain.PaymentRequiresStepUp
		if _, err = s.repo.Update(ctx, attempt); err != nil {
			return CheckoutResult{}, fmt.Errorf("s.repo.Update -> %w", err)
		}

		return CheckoutResult{
			AttemptID:    attempt.AttemptID,
			Status:       domain.PaymentRequiresStepUp,
			ClientSecret: intent.ClientSecret,
		}, nil
	case payment.IntentSucceeded:
		return s.settleSuccess(ctx, attempt, domain.PaymentAwaitingDecision)
	default:
		return s.settleFailure(ctx, attempt, domain.PaymentAwaitingDecision, "payment was declined")
	}
}

// ConfirmCheckout resumes an attempt after the cardholder completed the
// step-up challenge. The compare-and-set into confirming_step_up makes
// the confirmation single-shot even under concurrent requests.
func (s *PaymentService) ConfirmCheckout(ctx context.Context, userID uint, attemptID string) (CheckoutResult, error) {
	attempt, err := s.repo.FindByAttemptID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return CheckoutResult{}, ErrPaymentNotFound
		}

		return CheckoutResult{}, fmt.Errorf("s.repo.FindByAttemptID -> %w", err)
	}

	if attempt.UserID != userID {
		return CheckoutResult{}, ErrNotPaymentOwner
	}

	err = s.repo.Transition(ctx, attemptID, domain.PaymentRequiresStepUp, domain.PaymentConfirmingStepUp)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentStateConflict) {
			return CheckoutResult{}, s.classifyConflict(ctx, attemptID)
		}

		return CheckoutResult{}, err
	}

	intent, err := s.provider.ConfirmIntent(ctx, attempt.ProviderIntentID)
	if err != nil {
		return s.settleProviderError(ctx, attempt, domain.PaymentConfirmingStepUp, err)
	}

	if intent.Status == payment.IntentSucceeded {
		return s.settleSuccess(ctx, attempt, domain.PaymentConfirmingStepUp)
	}

	return s.settleFailure(ctx, attempt, domain.PaymentConfirmingStepUp, "authentication failed, payment was not taken")
}

// GetAttempt returns one attempt for polling its outcome.
func (s *PaymentService) GetAttempt(ctx context.Context, userID uint, attemptID string) (domain.Payment, error) {
	attempt, err := s.repo.FindByAttemptID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return domain.Payment{}, ErrPaymentNotFound
		}

		return domain.Payment{}, fmt.Errorf("s.repo.FindByAttemptID -> %w", err)
	}

	if attempt.UserID != userID {
		return domain.Payment{}, ErrNotPaymentOwner
	}

	return attempt, nil
}

// buildAttempt resolves the amount and description server-side and runs
// the purpose pre-checks, so a doomed purchase is rejected before any
// provider call is made.
func (s *PaymentService) buildAttempt(ctx context.Context, params CheckoutParams) (domain.Payment, error) {
	attempt := domain.Payment{
		AttemptID:       params.AttemptID,
		UserID:          params.UserID,
		Purpose:         params.Purpose,
		PaymentMethodID: params.PaymentMethodID,
		Currency:        s.conf.Currency,
		Status:          domain.PaymentAwaitingDecision,
	}

	switch params.Purpose {
	case domain.PaymentForEntry:
		competition, err := s.compRepo.FindByID(ctx, params.CompetitionID)
		if err != nil {
			if errors.Is(err, repository.ErrCompetitionNotFound) {
				return domain.Payment{}, ErrCompetitionNotFound
			}

			return domain.Payment{}, fmt.Errorf("s.compRepo.FindByID -> %w", err)
		}
		if competition.Status != domain.CompetitionOpen {
			return domain.Payment{}, ErrCompetitionClosed
		}
		if competition.SoldOut() {
			return domain.Payment{}, ErrCompetitionSoldOut
		}

		competitionID := competition.ID
		attempt.CompetitionID = &competitionID
		attempt.Amount = competition.TicketPrice
		attempt.Description = fmt.Sprintf("Ticket for %s", competition.Title)
	case domain.PaymentForPremium:
		attempt.Amount = s.conf.PremiumPrice
		attempt.Description = "Premium upgrade"
	case domain.PaymentForWallet:
		if params.Amount <= 0 {
			return domain.Payment{}, ErrInvalidAmount
		}
		attempt.Amount = params.Amount
		attempt.Description = "Wallet top-up"
	default:
		return domain.Payment{}, ErrUnknownPurpose
	}

	return attempt, nil
}

// settleSuccess applies the purchased thing, then marks the attempt
// succeeded. Fulfilment runs first so a crash between the two leaves a
// resolvable attempt rather than a paid-for nothing.
func (s *PaymentService) settleSuccess(ctx context.Context, attempt domain.Payment, from domain.PaymentStatus) (CheckoutResult, error) {
	result := CheckoutResult{
		AttemptID: attempt.AttemptID,
		Status:    domain.PaymentSucceeded,
	}

	switch attempt.Purpose {
	case domain.PaymentForEntry:
		entry, err := s.entries.CreateEntry(ctx, attempt.UserID, *attempt.CompetitionID)
		if err != nil {
			if errors.Is(err, repository.ErrCompetitionSoldOut) || errors.Is(err, repository.ErrCompetitionClosed) {
				// The charge went through but the ticket race was
				// lost; refund into the wallet instead of dropping
				// the money.
				if creditErr := s.users.CreditWallet(ctx, attempt.UserID, attempt.Amount); creditErr != nil {
					zap.L().Error("wallet credit after lost ticket race failed",
						zap.String("attempt_id", attempt.AttemptID), zap.Error(creditErr))
				}

				return s.settleFailure(ctx, attempt, from, "tickets sold out, amount credited to wallet")
			}

			return CheckoutResult{}, err
		}
		result.Entry = &entry
	case domain.PaymentForPremium:
		if err := s.users.SetPremium(ctx, attempt.UserID); err != nil {
			return CheckoutResult{}, err
		}
	case domain.PaymentForWallet:
		if err := s.users.CreditWallet(ctx, attempt.UserID, attempt.Amount); err != nil {
			return CheckoutResult{}, err
		}
	}

	if err := s.repo.Transition(ctx, attempt.AttemptID, from, domain.PaymentSucceeded); err != nil {
		return CheckoutResult{}, err
	}
	attempt.Status = domain.PaymentSucceeded
	if _, err := s.repo.Update(ctx, attempt); err != nil {
		return CheckoutResult{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return result, nil
}

func (s *PaymentService) settleFailure(ctx context.Context, attempt domain.Payment, from domain.PaymentStatus, message string) (CheckoutResult, error) {
	if err := s.repo.Transition(ctx, attempt.AttemptID, from, domain.PaymentFailed); err != nil {
		return CheckoutResult{}, err
	}
	attempt.Status = domain.PaymentFailed
	attempt.FailureMessage = message
	if _, err := s.repo.Update(ctx, attempt); err != nil {
		return CheckoutResult{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return CheckoutResult{
		AttemptID: attempt.AttemptID,
		Status:    domain.PaymentFailed,
		Message:   message,
	}, nil
}

// settleProviderError turns a card-level decline into a failed result and
// lets infrastructure errors bubble up after parking the attempt.
func (s *PaymentService) settleProviderError(ctx context.Context, attempt domain.Payment, from domain.PaymentStatus, err error) (CheckoutResult, error) {
	var methodErr *payment.MethodError
	if errors.As(err, &methodErr) {
		return s.settleFailure(ctx, attempt, from, methodErr.Message)
	}

	if _, settleErr := s.settleFailure(ctx, attempt, from, "payment could not be processed"); settleErr != nil {
		zap.L().Error("parking attempt after provider error failed",
			zap.String("attempt_id", attempt.AttemptID), zap.Error(settleErr))
	}

	return CheckoutResult{}, fmt.Errorf("s.provider -> %w", err)
}

// classifyConflict re-reads a CAS-losing attempt to report whether it is
// still being decided or already done.
func (s *PaymentService) classifyConflict(ctx context.Context, attemptID string) error {
	attempt, err := s.repo.FindByAttemptID(ctx, attemptID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByAttemptID -> %w", err)
	}

	if attempt.Status.Terminal() {
		return ErrAttemptFinished
	}
	if attempt.Status == domain.PaymentAwaitingDecision {
		return ErrNoStepUpPending
	}

	return ErrAttemptInFlight
}
