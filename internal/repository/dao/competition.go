package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrCompetitionNotFound = errors.New("competition not found")

type Competition struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Slug        string `gorm:"unique;not null"`
	Organizer   string `gorm:"not null"`
	Description string
	ImageURL    string
	Category    string `gorm:"index"`

	// Minor currency units.
	TicketPrice  int64 `gorm:"not null"`
	TotalTickets int   `gorm:"not null"`
	SoldTickets  int   `gorm:"default:0"`
	Steps        int   `gorm:"default:1"`
	WinnersCount int   `gorm:"default:1"`

	Status   string    `gorm:"not null;index"`
	EndDate  time.Time `gorm:"not null"`
	DrawDate time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CompetitionDAO struct {
	db *gorm.DB
}

func NewCompetitionDAO(db *gorm.DB) *CompetitionDAO {
	return &CompetitionDAO{
		db: db,
	}
}

func (d *CompetitionDAO) Insert(ctx context.Context, competition Competition) (Competition, error) {
	result := d.db.WithContext(ctx).Create(&competition)
	if result.Error != nil {
		return Competition{}, result.Error
	}

	return competition, nil
}

func (d *CompetitionDAO) Update(ctx context.Context, competition Competition) (Competition, error) {
	result := d.db.WithContext(ctx).Save(&competition)
	if result.Error != nil {
		return Competition{}, result.Error
	}

	return competition, nil
}

func (d *CompetitionDAO) FindByID(ctx context.Context, id uint) (Competition, error) {
	var competition Competition

	result := d.db.WithContext(ctx).First(&competition, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Competition{}, ErrCompetitionNotFound
		}

		return Competition{}, result.Error
	}

	return competition, nil
}

func (d *CompetitionDAO) FindBySlug(ctx context.Context, slug string) (Competition, error) {
	var competition Competition

	result := d.db.WithContext(ctx).First(&competition, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Competition{}, ErrCompetitionNotFound
		}

		return Competition{}, result.Error
	}

	return competition, nil
}

func (d *CompetitionDAO) ListByStatus(ctx context.Context, status string) ([]Competition, error) {
	var competitions []Competition

	result := d.db.WithContext(ctx).Where("status = ?", status).
		Order("end_date").Find(&competitions)
	if result.Error != nil {
		return nil, result.Error
	}

	return competitions, nil
}

// ListEnded returns open competitions whose end date has passed.
func (d *CompetitionDAO) ListEnded(ctx context.Context, now time.Time) ([]Competition, error) {
	var competitions []Competition

	result := d.db.WithContext(ctx).
		Where("status = ? AND end_date <= ?", "open", now).
		Find(&competitions)
	if result.Error != nil {
		return nil, result.Error
	}

	return competitions, nil
}

// ListDrawDue returns competitions awaiting a draw.
func (d *CompetitionDAO) ListDrawDue(ctx context.Context, now time.Time) ([]Competition, error) {
	var competitions []Competition

	result := d.db.WithContext(ctx).
		Where("status <> ? AND draw_date <= ?", "drawn", now).
		Find(&competitions)
	if result.Error != nil {
		return nil, result.Error
	}

	return competitions, nil
}

func (d *CompetitionDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&Competition{}).Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompetitionNotFound
	}

	return nil
}
