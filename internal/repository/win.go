package repository

import (
	"context"
	"fmt"

	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/repository/dao"
)

type WinDAO interface {
	Insert(ctx context.Context, win dao.Win) (dao.Win, error)
	ListByUser(ctx context.Context, userID uint) ([]dao.Win, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type WinRepository struct {
	dao WinDAO
}

func NewWinRepository(dao WinDAO) *WinRepository {
	return &WinRepository{
		dao: dao,
	}
}

func (r *WinRepository) Create(ctx context.Context, win domain.Win) (domain.Win, error) {
	created, err := r.dao.Insert(ctx, dao.Win{
		UserID:        win.UserID,
		CompetitionID: win.CompetitionID,
		EntryID:       win.EntryID,
		Place:         win.Place,
		PrizeValue:    win.PrizeValue,
		DrawnAt:       win.DrawnAt,
	})
	if err != nil {
		return domain.Win{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *WinRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Win, error) {
	found, err := r.dao.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByUser -> %w", err)
	}

	wins := make([]domain.Win, len(found))
	for i, w := range found {
		wins[i] = r.daoToDomain(w)
	}

	return wins, nil
}

func (r *WinRepository) CountByUser(ctx context.Context, userID uint) (int, error) {
	count, err := r.dao.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByUser -> %w", err)
	}

	return int(count), nil
}

func (r *WinRepository) daoToDomain(w dao.Win) domain.Win {
	return domain.Win{
		ID:            w.ID,
		UserID:        w.UserID,
		CompetitionID: w.CompetitionID,
		EntryID:       w.EntryID,
		Place:         w.Place,
		PrizeValue:    w.PrizeValue,
		DrawnAt:       w.DrawnAt,
	}
}
