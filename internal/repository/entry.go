package repository

import (
	"context"
	"fmt"

	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/repository/dao"
)

var (
	ErrEntryNotFound      = dao.ErrEntryNotFound
	ErrCompetitionSoldOut = dao.ErrCompetitionSoldOut
	ErrCompetitionClosed  = dao.ErrCompetitionClosed
)

type EntryDAO interface {
	InsertWithTicket(ctx context.Context, entry dao.Entry) (dao.Entry, error)
	FindByID(ctx context.Context, id uint) (dao.Entry, error)
	Update(ctx context.Context, entry dao.Entry) (dao.Entry, error)
	ListByUser(ctx context.Context, userID uint) ([]dao.Entry, error)
	ListByCompetition(ctx context.Context, competitionID uint) ([]dao.Entry, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type EntryRepository struct {
	dao EntryDAO
}

func NewEntryRepository(dao EntryDAO) *EntryRepository {
	return &EntryRepository{
		dao: dao,
	}
}

// CreateWithTicket performs the purchase write: one new entry plus a sold
// ticket increment, atomically.
func (r *EntryRepository) CreateWithTicket(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	created, err := r.dao.InsertWithTicket(ctx, dao.Entry{
		UserID:        entry.UserID,
		CompetitionID: entry.CompetitionID,
		TicketNumber:  entry.TicketNumber,
		Progress:      entry.Progress,
	})
	if err != nil {
		return domain.Entry{}, fmt.Errorf("r.dao.InsertWithTicket -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EntryRepository) FindByID(ctx context.Context, id uint) (domain.Entry, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EntryRepository) Update(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	updated, err := r.dao.Update(ctx, dao.Entry{
		ID:            entry.ID,
		UserID:        entry.UserID,
		CompetitionID: entry.CompetitionID,
		TicketNumber:  entry.TicketNumber,
		Progress:      entry.Progress,
		Bookmarked:    entry.Bookmarked,
		Liked:         entry.Liked,
		CreatedAt:     entry.CreatedAt,
	})
	if err != nil {
		return domain.Entry{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EntryRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Entry, error) {
	found, err := r.dao.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByUser -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *EntryRepository) ListByCompetition(ctx context.Context, competitionID uint) ([]domain.Entry, error) {
	found, err := r.dao.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByCompetition -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *EntryRepository) CountByUser(ctx context.Context, userID uint) (int, error) {
	count, err := r.dao.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByUser -> %w", err)
	}

	return int(count), nil
}

func (r *EntryRepository) daoToDomain(e dao.Entry) domain.Entry {
	return domain.Entry{
		ID:            e.ID,
		UserID:        e.UserID,
		CompetitionID: e.CompetitionID,
		TicketNumber:  e.TicketNumber,
		Progress:      e.Progress,
		Bookmarked:    e.Bookmarked,
		Liked:         e.Liked,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r *EntryRepository) daoSliceToDomain(found []dao.Entry) []domain.Entry {
	entries := make([]domain.Entry, len(found))
	for i, e := range found {
		entries[i] = r.daoToDomain(e)
	}

	return entries
}
