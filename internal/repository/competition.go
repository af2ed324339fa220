package repository

import (
	"context"
	"fmt"
	"time"

	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/repository/dao"
)

var ErrCompetitionNotFound = dao.ErrCompetitionNotFound

type CompetitionDAO interface {
	Insert(ctx context.Context, competition dao.Competition) (dao.Competition, error)
	Update(ctx context.Context, competition dao.Competition) (dao.Competition, error)
	FindByID(ctx context.Context, id uint) (dao.Competition, error)
	FindBySlug(ctx context.Context, slug string) (dao.Competition, error)
	ListByStatus(ctx context.Context, status string) ([]dao.Competition, error)
	ListEnded(ctx context.Context, now time.Time) ([]dao.Competition, error)
	ListDrawDue(ctx context.Context, now time.Time) ([]dao.Competition, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type CompetitionRepository struct {
	dao CompetitionDAO
}

func NewCompetitionRepository(dao CompetitionDAO) *CompetitionRepository {
	return &CompetitionRepository{
		dao: dao,
	}
}

func (r *CompetitionRepository) Create(ctx context.Context, competition domain.Competition) (domain.Competition, error) {
	created, err := r.dao.Insert(ctx, domainToDAO(competition))
	if err != nil {
		return domain.Competition{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return daoToDomain(created), nil
}

func (r *CompetitionRepository) Update(ctx context.Context, competition domain.Competition) (domain.Competition, error) {
	updated, err := r.dao.Update(ctx, domainToDAO(competition))
	if err != nil {
		return domain.Competition{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return daoToDomain(updated), nil
}

func (r *CompetitionRepository) FindByID(ctx context.Context, id uint) (domain.Competition, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return daoToDomain(found), nil
}

func (r *CompetitionRepository) FindBySlug(ctx context.Context, slug string) (domain.Competition, error) {
	found, err := r.dao.FindBySlug(ctx, slug)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("r.dao.FindBySlug -> %w", err)
	}

	return daoToDomain(found), nil
}

func (r *CompetitionRepository) ListOpen(ctx context.Context) ([]domain.Competition, error) {
	found, err := r.dao.ListByStatus(ctx, string(domain.CompetitionOpen))
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByStatus -> %w", err)
	}

	return daoSliceToDomain(found), nil
}

func (r *CompetitionRepository) ListEnded(ctx context.Context, now time.Time) ([]domain.Competition, error) {
	found, err := r.dao.ListEnded(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListEnded -> %w", err)
	}

	return daoSliceToDomain(found), nil
}

func (r *CompetitionRepository) ListDrawDue(ctx context.Context, now time.Time) ([]domain.Competition, error) {
	found, err := r.dao.ListDrawDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListDrawDue -> %w", err)
	}

	return daoSliceToDomain(found), nil
}

func (r *CompetitionRepository) UpdateStatus(ctx context.Context, id uint, status domain.CompetitionStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func domainToDAO(c domain.Competition) dao.Competition {
	return dao.Competition{
		ID:           c.ID,
		Title:        c.Title,
		Slug:         c.Slug,
		Organizer:    c.Organizer,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		Category:     c.Category,
		TicketPrice:  c.TicketPrice,
		TotalTickets: c.TotalTickets,
		SoldTickets:  c.SoldTickets,
		Steps:        c.Steps,
		WinnersCount: c.WinnersCount,
		Status:       string(c.Status),
		EndDate:      c.EndDate,
		DrawDate:     c.DrawDate,
		CreatedAt:    c.CreatedAt,
	}
}

func daoToDomain(c dao.Competition) domain.Competition {
	return domain.Competition{
		ID:           c.ID,
		Title:        c.Title,
		Slug:         c.Slug,
		Organizer:    c.Organizer,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		Category:     c.Category,
		TicketPrice:  c.TicketPrice,
		TotalTickets: c.TotalTickets,
		SoldTickets:  c.SoldTickets,
		Steps:        c.Steps,
		WinnersCount: c.WinnersCount,
		Status:       domain.CompetitionStatus(c.Status),
		EndDate:      c.EndDate,
		DrawDate:     c.DrawDate,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func daoSliceToDomain(found []dao.Competition) []domain.Competition {
	competitions := make([]domain.Competition, len(found))
	for i, c := range found {
		competitions[i] = daoToDomain(c)
	}

	return competitions
}
