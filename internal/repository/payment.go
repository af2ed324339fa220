package repository

import (
	"context"
	"fmt"

	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/repository/dao"
)

var (
	ErrPaymentNotFound      = dao.ErrPaymentNotFound
	ErrPaymentStateConflict = dao.ErrPaymentStateConflict
)

type PaymentDAO interface {
	Insert(ctx context.Context, payment dao.Payment) (dao.Payment, error)
	FindByAttemptID(ctx context.Context, attemptID string) (dao.Payment, error)
	TransitionStatus(ctx context.Context, attemptID, from, to string) error
	Update(ctx context.Context, payment dao.Payment) (dao.Payment, error)
}

type PaymentRepository struct {
	dao PaymentDAO
}

func NewPaymentRepository(dao PaymentDAO) *PaymentRepository {
	return &PaymentRepository{
		dao: dao,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(payment))
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PaymentRepository) FindByAttemptID(ctx context.Context, attemptID string) (domain.Payment, error) {
	found, err := r.dao.FindByAttemptID(ctx, attemptID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.FindByAttemptID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// Transition moves the attempt between states with a compare-and-set, so
// two concurrent submissions of the same attempt cannot both proceed.
func (r *PaymentRepository) Transition(ctx context.Context, attemptID string, from, to domain.PaymentStatus) error {
	if err := r.dao.TransitionStatus(ctx, attemptID, string(from), string(to)); err != nil {
		return fmt.Errorf("r.dao.TransitionStatus -> %w", err)
	}

	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(payment))
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *PaymentRepository) domainToDAO(p domain.Payment) dao.Payment {
	return dao.Payment{
		ID:               p.ID,
		AttemptID:        p.AttemptID,
		UserID:           p.UserID,
		Purpose:          string(p.Purpose),
		CompetitionID:    p.CompetitionID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Description:      p.Description,
		PaymentMethodID:  p.PaymentMethodID,
		ProviderIntentID: p.ProviderIntentID,
		Status:           string(p.Status),
		FailureMessage:   p.FailureMessage,
		CreatedAt:        p.CreatedAt,
	}
}

func (r *PaymentRepository) daoToDomain(p dao.Payment) domain.Payment {
	return domain.Payment{
		ID:               p.ID,
		AttemptID:        p.AttemptID,
		UserID:           p.UserID,
		Purpose:          domain.PaymentPurpose(p.Purpose),
		CompetitionID:    p.CompetitionID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Description:      p.Description,
		PaymentMethodID:  p.PaymentMethodID,
		ProviderIntentID: p.ProviderIntentID,
		Status:           domain.PaymentStatus(p.Status),
		FailureMessage:   p.FailureMessage,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
