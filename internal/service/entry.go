package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/repository"
)

var (
	ErrEntryNotFound      = repository.ErrEntryNotFound
	ErrCompetitionSoldOut = repository.ErrCompetitionSoldOut
	ErrCompetitionClosed  = repository.ErrCompetitionClosed
	ErrNotEntryOwner      = errors.New("entry belongs to another user")
	ErrInvalidStep        = errors.New("step index out of range")
)

type EntryRepository interface {
	CreateWithTicket(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	FindByID(ctx context.Context, id uint) (domain.Entry, error)
	Update(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Entry, error)
}

type EntryCompetitionRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Competition, error)
}

type EntryWinRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]domain.Win, error)
}

// ClassifiedEntry pairs an entry with its competition and its bucket on
// the entries page.
type ClassifiedEntry struct {
	domain.Entry
	State       domain.EntryState  `json:"state"`
	Competition domain.Competition `json:"competition"`
}

type EntryService struct {
	repo     EntryRepository
	compRepo EntryCompetitionRepository
	winRepo  EntryWinRepository
}

func NewEntryService(repo EntryRepository, compRepo EntryCompetitionRepository, winRepo EntryWinRepository) *EntryService {
	return &EntryService{
		repo:     repo,
		compRepo: compRepo,
		winRepo:  winRepo,
	}
}

// CreateEntry issues a ticket for a paid-up purchase. The repository write
// increments the competition's sold count in the same transaction.
func (s *EntryService) CreateEntry(ctx context.Context, userID, competitionID uint) (domain.Entry, error) {
	entry := domain.Entry{
		UserID:        userID,
		CompetitionID: competitionID,
		TicketNumber:  uuid.NewString(),
	}

	created, err := s.repo.CreateWithTicket(ctx, entry)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("s.repo.CreateWithTicket -> %w", err)
	}

	return created, nil
}

func (s *EntryService) GetUserEntries(ctx context.Context, userID uint) ([]ClassifiedEntry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	now := time.Now()
	classified := make([]ClassifiedEntry, 0, len(entries))
	for _, entry := range entries {
		competition, err := s.compRepo.FindByID(ctx, entry.CompetitionID)
		if err != nil {
			return nil, fmt.Errorf("s.compRepo.FindByID -> %w", err)
		}

		classified = append(classified, ClassifiedEntry{
			Entry:       entry,
			State:       entry.Classify(competition, now),
			Competition: competition,
		})
	}

	return classified, nil
}

// CompleteStep marks one progress step done. Completing an already-done
// step is a no-op, so retried requests cannot corrupt progress.
func (s *EntryService) CompleteStep(ctx context.Context, userID, entryID uint, step int) (domain.Entry, error) {
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return domain.Entry{}, err
	}

	if step < 0 || step >= len(entry.Progress) {
		return domain.Entry{}, ErrInvalidStep
	}
	if entry.Progress[step] {
		return entry, nil
	}

	entry.Progress[step] = true

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EntryService) SetBookmarked(ctx context.Context, userID, entryID uint, bookmarked bool) (domain.Entry, error) {
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return domain.Entry{}, err
	}

	if entry.Bookmarked == bookmarked {
		return entry, nil
	}
	entry.Bookmarked = bookmarked

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EntryService) SetLiked(ctx context.Context, userID, entryID uint, liked bool) (domain.Entry, error) {
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return domain.Entry{}, err
	}

	if entry.Liked == liked {
		return entry, nil
	}
	entry.Liked = liked

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EntryService) GetUserWins(ctx context.Context, userID uint) ([]domain.Win, error) {
	wins, err := s.winRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.winRepo.ListByUser -> %w", err)
	}

	return wins, nil
}

func (s *EntryService) ownedEntry(ctx context.Context, userID, entryID uint) (domain.Entry, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return domain.Entry{}, ErrEntryNotFound
		}

		return domain.Entry{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if entry.UserID != userID {
		return domain.Entry{}, ErrNotEntryOwner
	}

	return entry, nil
}
