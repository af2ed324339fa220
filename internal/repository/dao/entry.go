package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEntryNotFound      = errors.New("entry not found")
	ErrCompetitionSoldOut = errors.New("competition is sold out")
	ErrCompetitionClosed  = errors.New("competition is closed")
)

type Entry struct {
	ID uint `gorm:"primaryKey"`

	UserID        uint `gorm:"not null;index"`
	CompetitionID uint `gorm:"not null;index"`

	TicketNumber string `gorm:"unique;not null"`
	Progress     []bool `gorm:"serializer:json"`
	Bookmarked   bool   `gorm:"default:false"`
	Liked        bool   `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EntryDAO struct {
	db *gorm.DB
}

func NewEntryDAO(db *gorm.DB) *EntryDAO {
	return &EntryDAO{
		db: db,
	}
}

// InsertWithTicket creates exactly one entry and increments the
// competition's sold ticket count in the same transaction. The competition
// row is locked so concurrent purchases cannot oversell.
func (d *EntryDAO) InsertWithTicket(ctx context.Context, entry Entry) (Entry, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var competition Competition
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&competition, entry.CompetitionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompetitionNotFound
			}

			return err
		}

		if competition.Status != "open" {
			return ErrCompetitionClosed
		}
		if competition.SoldTickets >= competition.TotalTickets {
			return ErrCompetitionSoldOut
		}

		if entry.Progress == nil {
			entry.Progress = make([]bool, competition.Steps)
		}

		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return tx.Model(&Competition{}).Where("id = ?", competition.ID).
			Update("sold_tickets", gorm.Expr("sold_tickets + 1")).Error
	})
	if err != nil {
		return Entry{}, err
	}

	return entry, nil
}

func (d *EntryDAO) FindByID(ctx context.Context, id uint) (Entry, error) {
	var entry Entry

	result := d.db.WithContext(ctx).First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Entry{}, ErrEntryNotFound
		}

		return Entry{}, result.Error
	}

	return entry, nil
}

func (d *EntryDAO) Update(ctx context.Context, entry Entry) (Entry, error) {
	result := d.db.WithContext(ctx).Save(&entry)
	if result.Error != nil {
		return Entry{}, result.Error
	}

	return entry, nil
}

func (d *EntryDAO) ListByUser(ctx context.Context, userID uint) ([]Entry, error) {
	var entries []Entry

	result := d.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *EntryDAO) ListByCompetition(ctx context.Context, competitionID uint) ([]Entry, error) {
	var entries []Entry

	result := d.db.WithContext(ctx).Where("competition_id = ?", competitionID).
		Order("id").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *EntryDAO) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Entry{}).
		Where("user_id = ?", userID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
