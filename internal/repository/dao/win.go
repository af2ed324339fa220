package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Win struct {
	ID uint `gorm:"primaryKey"`

	UserID        uint `gorm:"not null;index"`
	CompetitionID uint `gorm:"not null;index"`
	EntryID       uint `gorm:"not null"`

	Place int `gorm:"not null"`
	// Minor currency units.
	PrizeValue int64

	DrawnAt   time.Time `gorm:"not null"`
	CreatedAt time.Time
}

type WinDAO struct {
	db *gorm.DB
}

func NewWinDAO(db *gorm.DB) *WinDAO {
	return &WinDAO{
		db: db,
	}
}

func (d *WinDAO) Insert(ctx context.Context, win Win) (Win, error) {
	result := d.db.WithContext(ctx).Create(&win)
	if result.Error != nil {
		return Win{}, result.Error
	}

	return win, nil
}

func (d *WinDAO) ListByUser(ctx context.Context, userID uint) ([]Win, error) {
	var wins []Win

	result := d.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("drawn_at DESC").Find(&wins)
	if result.Error != nil {
		return nil, result.Error
	}

	return wins, nil
}

func (d *WinDAO) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Win{}).
		Where("user_id = ?", userID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
