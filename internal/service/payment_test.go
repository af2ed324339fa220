package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prizedraw-api/internal/config"
	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/payment"
)

type paymentFixture struct {
	svc      *PaymentService
	repo     *fakePaymentRepo
	provider *fakeProvider
	users    *fakeUserRepo
	comps    *fakeCompetitionRepo
	entries  *fakeEntryRepo
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	users := newFakeUserRepo()
	comps := newFakeCompetitionRepo()
	entries := newFakeEntryRepo(comps)
	wins := newFakeWinRepo()
	repo := newFakePaymentRepo()
	provider := &fakeProvider{}

	conf := &config.StripeConfig{Currency: "gbp", PremiumPrice: 999}
	entrySvc := NewEntryService(entries, comps, wins)
	userSvc := NewUserService(users)

	return &paymentFixture{
		svc:      NewPaymentService(repo, provider, comps, entrySvc, userSvc, conf),
		repo:     repo,
		provider: provider,
		users:    users,
		comps:    comps,
		entries:  entries,
	}
}

func (f *paymentFixture) openCompetition() domain.Competition {
	return f.comps.add(domain.Competition{
		Title:        "Dream Car",
		Status:       domain.CompetitionOpen,
		TicketPrice:  500,
		TotalTickets: 10,
		Steps:        2,
		EndDate:      time.Now().Add(time.Hour),
	})
}

func TestPaymentService_StartCheckout_EntrySucceeds(t *testing.T) {
	f := newPaymentFixture(t)
	user := f.users.add(domain.User{Username: "alice"})
	competition := f.openCompetition()
	f.provider.createIntent = payment.Intent{ID: "pi_1", Status: payment.IntentSucceeded}

	result, err := f.svc.StartCheckout(context.Background(), CheckoutParams{
		UserID:          user.ID,
		Purpose:         domain.PaymentForEntry,
		CompetitionID:   competition.ID,
		PaymentMethodID: "pm_123",
		AttemptID:       "attempt-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, result.Status)
	require.NotNil(t, result.Entry)
	assert.NotEmpty(t, result.Entry.TicketNumber)
	assert.Equal(t, 1, f.comps.competitions[competition.ID].SoldTickets)

	stored := f.repo.payments["attempt-1"]
	assert.Equal(t, domain.PaymentSucceeded, stored.Status)
	assert.Equal(t, int64(500), stored.Amount)
}

func TestPaymentService_StartCheckout_SoldOutBeforeProviderCall(t *testing.T) {
	f := newPaymentFixture(t)
	user := f.users.add(domain.User{Username: "alice"})
	competition := f.comps.add(domain.Competition{
		Status:       domain.CompetitionOpen,
		TicketPrice:  500,
		TotalTickets: 1,
		SoldTickets:  1,
		EndDate:      time.Now().Add(time.Hour),
	})

	_, err := f.svc.StartCheckout(context.Background(), CheckoutParams{
		UserID:          user.ID,
		Purpose:         domain.PaymentForEntry,
		CompetitionID:   competition.ID,
		PaymentMethodID: "pm_123",
		AttemptID:       "attempt-1",
	})
	assert.ErrorIs(t, err, ErrCompetitionSoldOut)
	assert.Zero(t, f.provider.createCalls)
}

func TestPaymentService_StartCheckout_DeclinedCard(t *testing.T) {
	f := newPaymentFixture(t)
	user := f.users.add(domain.User{Username: "alice"})
	competition := f.openCompetition()
	f.provider.createErr = &payment.MethodError{Message: "Your card was declined."}

	result, err := f.svc.StartCheckout(context.Background(), CheckoutParams{
		UserID:          user.ID,
		Purpose:         domain.PaymentForEntry,
		CompetitionID:   competition.ID,
		PaymentMethodID: "pm_123",
		AttemptID:       "attempt-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, result.Status)
	assert.Equal(t, "Your card was declined.", result.Message)

	// No ticket was issued for a declined attempt.
	assert.Zero(t, f.comps.competitions[competition.ID].SoldTickets)
	assert.Equal(t, domain.PaymentFailed, f.repo.payments["attempt-1"].Status)
}

func TestPaymentService_StartCheckout_RequiresStepUp(t *testing.T) {
	f := newPaymentFixture(t)
	user := f.users.add(domain.User{Username: "alice"})
	competition := f.openCompetition()
	f.provider.createIntent = payment.Intent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret",
		Status:       payment.IntentRequiresAction,
	}

	result, err := f.svc.StartCheckout(context.Background(), CheckoutParams{
		UserID:          user.ID,
		Purpose:         domain.PaymentForEntry,
		CompetitionID:   competition.ID,
		PaymentMethodID: "pm_123",
		AttemptID:       "attempt-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRequiresStepUp, result.Status)
	assert.Equal(t, "pi_1_secret", result.ClientSecret)
	assert.Nil(t, result.Entry)
}

func TestPaymentService_StartCheckout_DuplicateAttempt(t *testing.T) {
	f := newPaymentFixture(t)
	user := f.users.add(domain.User{Username: "alice"})
	competition := f.openCompetition()
	f.provider.createIntent = payment.Intent{ID: "pi_1", Status: payment.IntentRequiresAction}

	params := CheckoutParams{
		UserID:          user.ID,
		Purpose:         domain.PaymentForEntry,
		CompetitionID:   competition.ID,
		PaymentMethodID: "pm_123",
		AttemptID:       "attempt-1",
	}

	_, err := f.svc.StartCheckout(context.Background(), params)
	require.NoError(t, err)

	// The attempt is parked in requires_step_up: resubmitting must not
	// create a second charge.
	_, err = f.svc.StartCheckout(context.Background(), params)
	assert.ErrorIs(t, err, ErrAttemptInFlight)
	assert.Equal(t, 1, f.provider.createCalls)
}

func TestPaymentService_ConfirmCheckout(t *testing.T) {
	f := newPaymentFixture(t)
	user := f.users.add(domain.User{Username: "alice"})
	competition := f.openCompetition()
	f.provider.createIntent = payment.Intent{ID: "pi_1", ClientSecret: "s", Status: payment.IntentRequiresAction}
	f.provider.confirmIntent = payment.Intent{ID: "pi_1", Status: payment.IntentSucceeded}

	_, err := f.svc.StartCheckout(context.Background(), CheckoutParams{
		UserID:          user.ID,
		Purpose:         domain.PaymentForEntry,
		CompetitionID:   competition.ID,
		PaymentMethodID: "pm_123",
		AttemptID:       "attempt-1",
	})
	require.NoError(t, err)

	otherUser := f.users.add(domain.User{Username: "mallory"})
	_, err = f.svc.ConfirmCheckout(context.Background(), otherUser.ID, "attempt-1")
	assert.ErrorIs(t, err, ErrNotPaymentOwner)

	result, err := f.svc.ConfirmCheckout(context.Background(), user.ID, "attempt-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, result.Status)
	require.NotNil(t, result.Entry)

	// A terminal attempt cannot be confirmed again.
	_, err = f.svc.ConfirmCheckout(context.Background(), user.ID, "attempt-1")
	assert.ErrorIs(t, err, ErrAttemptFinished)
	assert.Equal(t, 1, f.provider.confirmCalls)
}

func TestPaymentService_ConfirmCheckout_StepUpFailure(t *testing.T) {
	f := newPaymentFixture(t)
	user := f.users.add(domain.User{Username: "alice"})
	competition := f.openCompetition()
	f.provider.createIntent = payment.Intent{ID: "pi_1", ClientSecret: "s", Status: payment.IntentRequiresAction}
	f.provider.confirmErr = &payment.MethodError{Message: "Authentication failed."}

	_, err := f.svc.StartCheckout(context.Background(), CheckoutParams{
		UserID:          user.ID,
		Purpose:         domain.PaymentForEntry,
		CompetitionID:   competition.ID,
		PaymentMethodID: "pm_123",
		AttemptID:       "attempt-1",
	})
	require.NoError(t, err)

	result, err := f.svc.ConfirmCheckout(context.Background(), user.ID, "attempt-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, result.Status)
	assert.Equal(t, "Authentication failed.", result.Message)
	assert.Zero(t, f.comps.competitions[competition.ID].SoldTickets)
}

func TestPaymentService_ConfirmCheckout_NoStepUpPending(t *testing.T) {
	f := newPaymentFixture(t)
	user := f.users.add(domain.User{Username: "alice"})

	_, err := f.repo.Create(context.Background(), domain.Payment{
		AttemptID: "attempt-1",
		UserID:    user.ID,
		Status:    domain.PaymentAwaitingDecision,
	})
	require.NoError(t, err)

	_, err = f.svc.ConfirmCheckout(context.Background(), user.ID, "attempt-1")
	assert.ErrorIs(t, err, ErrNoStepUpPending)

	_, err = f.svc.ConfirmCheckout(context.Background(), user.ID, "missing")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestPaymentService_StartCheckout_Premium(t *testing.T) {
	f := newPaymentFixture(t)
	user := f.users.add(domain.User{Username: "alice"})
	f.provider.createIntent = payment.Intent{ID: "pi_1", Status: payment.IntentSucceeded}

	result, err := f.svc.StartCheckout(context.Background(), CheckoutParams{
		UserID:          user.ID,
		Purpose:         domain.PaymentForPremium,
		PaymentMethodID: "pm_123",
		AttemptID:       "attempt-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, result.Status)
	assert.True(t, f.users.users[user.ID].IsPremium)
	assert.Equal(t, int64(999), f.repo.payments["attempt-1"].Amount)
}

func TestPaymentService_StartCheckout_Wallet(t *testing.T) {
	f := newPaymentFixture(t)
	user := f.users.add(domain.User{Username: "alice"})
	f.provider.createIntent = payment.Intent{ID: "pi_1", Status: payment.IntentSucceeded}

	_, err := f.svc.StartCheckout(context.Background(), CheckoutParams{
		UserID:          user.ID,
		Purpose:         domain.PaymentForWallet,
		PaymentMethodID: "pm_123",
		AttemptID:       "attempt-1",
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	result, err := f.svc.StartCheckout(context.Background(), CheckoutParams{
		UserID:          user.ID,
		Purpose:         domain.PaymentForWallet,
		PaymentMethodID: "pm_123",
		AttemptID:       "attempt-2",
		Amount:          2500,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, result.Status)
	assert.Equal(t, int64(2500), f.users.users[user.ID].WalletBalance)
}

func TestPaymentService_StartCheckout_InfrastructureError(t *testing.T) {
	f := newPaymentFixture(t)
	user := f.users.add(domain.User{Username: "alice"})
	competition := f.openCompetition()
	f.provider.createErr = errors.New("connection reset")

	_, err := f.svc.StartCheckout(context.Background(), CheckoutParams{
		UserID:          user.ID,
		Purpose:         domain.PaymentForEntry,
		CompetitionID:   competition.ID,
		PaymentMethodID: "pm_123",
		AttemptID:       "attempt-1",
	})
	require.Error(t, err)

	// The attempt is parked so a retry starts a fresh one.
	assert.Equal(t, domain.PaymentFailed, f.repo.payments["attempt-1"].Status)
}
