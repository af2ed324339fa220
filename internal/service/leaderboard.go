package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"prizedraw-api/internal/cache"
	"prizedraw-api/internal/domain"
)

const leaderboardCacheKey = "leaderboard"

type LeaderboardUserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type LeaderboardEntryRepository interface {
	CountByUser(ctx context.Context, userID uint) (int, error)
}

type LeaderboardWinRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]domain.Win, error)
}

type LeaderboardService struct {
	userRepo  LeaderboardUserRepository
	entryRepo LeaderboardEntryRepository
	winRepo   LeaderboardWinRepository
	store     *cache.Store
}

func NewLeaderboardService(userRepo LeaderboardUserRepository, entryRepo LeaderboardEntryRepository, winRepo LeaderboardWinRepository, store *cache.Store) *LeaderboardService {
	return &LeaderboardService{
		userRepo:  userRepo,
		entryRepo: entryRepo,
		winRepo:   winRepo,
		store:     store,
	}
}

// GetLeaderboard computes the ranked standings over every user. The
// projection is cached until a draw invalidates it.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	val, err := s.store.GetOrCompute(leaderboardCacheKey, func() (any, error) {
		return s.compute(ctx)
	})
	if err != nil {
		return nil, err
	}

	return val.([]domain.LeaderboardEntry), nil
}

func (s *LeaderboardService) compute(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.List -> %w", err)
	}

	board := make([]domain.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries, err := s.entryRepo.CountByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("s.entryRepo.CountByUser -> %w", err)
		}

		wins, err := s.winRepo.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("s.winRepo.ListByUser -> %w", err)
		}

		board = append(board, domain.LeaderboardEntry{
			UserID:   user.ID,
			Username: user.Username,
			Mascot:   user.Mascot,
			Entries:  entries,
			Wins:     len(wins),
			WinRate:  winRate(len(wins), entries),
			Streak:   winStreak(wins),
		})
	}

	sort.SliceStable(board, func(i, j int) bool {
		a, b := board[i], board[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.Entries != b.Entries {
			return a.Entries > b.Entries
		}

		return a.Username < b.Username
	})
	for i := range board {
		board[i].Rank = i + 1
	}

	return board, nil
}

// GetUserStats is the single-user slice of the same projection, computed
// directly so a profile page does not depend on the full board.
func (s *LeaderboardService) GetUserStats(ctx context.Context, userID uint) (domain.UserStats, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return domain.UserStats{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	entries, err := s.entryRepo.CountByUser(ctx, userID)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("s.entryRepo.CountByUser -> %w", err)
	}

	wins, err := s.winRepo.ListByUser(ctx, userID)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("s.winRepo.ListByUser -> %w", err)
	}

	return domain.UserStats{
		UserID:  userID,
		Entries: entries,
		Wins:    len(wins),
		WinRate: winRate(len(wins), entries),
		Streak:  winStreak(wins),
	}, nil
}

func winRate(wins, entries int) float64 {
	if entries == 0 {
		return 0
	}

	return float64(wins) / float64(entries)
}

// winStreak counts consecutive calendar days with at least one win,
// ending on the day of the most recent win. Wins arrive ordered newest
// first.
func winStreak(wins []domain.Win) int {
	if len(wins) == 0 {
		return 0
	}

	days := make(map[string]bool, len(wins))
	for _, win := range wins {
		days[win.DrawnAt.UTC().Format("2006-01-02")] = true
	}

	streak := 0
	day := wins[0].DrawnAt.UTC().Truncate(24 * time.Hour)
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}
