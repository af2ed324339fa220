package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentStateConflict = errors.New("payment is not in the expected state")
)

type Payment struct {
	ID uint `gorm:"primaryKey"`

	AttemptID string `gorm:"unique;not null"`
	UserID    uint   `gorm:"not null;index"`

	Purpose       string `gorm:"not null"`
	CompetitionID *uint

	// Minor currency units.
	Amount      int64  `gorm:"not null"`
	Currency    string `gorm:"not null"`
	Description string

	PaymentMethodID  string `gorm:"not null"`
	ProviderIntentID string

	Status         string `gorm:"not null;index"`
	FailureMessage string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{
		db: db,
	}
}

func (d *PaymentDAO) Insert(ctx context.Context, payment Payment) (Payment, error) {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindByAttemptID(ctx context.Context, attemptID string) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).First(&payment, "attempt_id = ?", attemptID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

// TransitionStatus moves an attempt from one state to another, atomically.
// A stale expectation (concurrent submit, finished attempt) reports
// ErrPaymentStateConflict instead of silently double-processing.
func (d *PaymentDAO) TransitionStatus(ctx context.Context, attemptID, from, to string) error {
	result := d.db.WithContext(ctx).Model(&Payment{}).
		Where("attempt_id = ? AND status = ?", attemptID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentStateConflict
	}

	return nil
}

func (d *PaymentDAO) Update(ctx context.Context, payment Payment) (Payment, error) {
	result := d.db.WithContext(ctx).Save(&payment)
	if result.Error != nil {
		return Payment{}, result.Error
	}

	return payment, nil
}
