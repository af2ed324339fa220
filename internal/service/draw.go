package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"prizedraw-api/internal/cache"
	"prizedraw-api/internal/domain"
)

type DrawCompetitionRepository interface {
	ListEnded(ctx context.Context, now time.Time) ([]domain.Competition, error)
	ListDrawDue(ctx context.Context, now time.Time) ([]domain.Competition, error)
	UpdateStatus(ctx context.Context, id uint, status domain.CompetitionStatus) error
}

type DrawEntryRepository interface {
	ListByCompetition(ctx context.Context, competitionID uint) ([]domain.Entry, error)
}

type DrawWinRepository interface {
	Create(ctx context.Context, win domain.Win) (domain.Win, error)
}

type DrawUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// Announcer receives every drawn win as it happens.
type Announcer interface {
	AnnounceWin(win domain.Win, competition domain.Competition, username string)
}

// DrawService runs the lifecycle background pass: competitions past their
// end date are closed, and competitions past their draw date get winners
// picked and recorded.
type DrawService struct {
	compRepo  DrawCompetitionRepository
	entryRepo DrawEntryRepository
	winRepo   DrawWinRepository
	userRepo  DrawUserRepository
	store     *cache.Store
	announcer Announcer
	scheduler gocron.Scheduler
}

func NewDrawService(compRepo DrawCompetitionRepository, entryRepo DrawEntryRepository, winRepo DrawWinRepository, userRepo DrawUserRepository, store *cache.Store, announcer Announcer) *DrawService {
	return &DrawService{
		compRepo:  compRepo,
		entryRepo: entryRepo,
		winRepo:   winRepo,
		userRepo:  userRepo,
		store:     store,
		announcer: announcer,
	}
}

// Start schedules the pass once a minute. Draw dates are minute-grained,
// so a tighter interval buys nothing.
func (s *DrawService) Start() error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("gocron.NewScheduler -> %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(func() {
			if err := s.RunOnce(context.Background()); err != nil {
				zap.L().Error("draw pass failed", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("scheduler.NewJob -> %w", err)
	}

	s.scheduler = scheduler
	scheduler.Start()

	return nil
}

func (s *DrawService) Shutdown() error {
	if s.scheduler == nil {
		return nil
	}

	return s.scheduler.Shutdown()
}

// RunOnce executes a single lifecycle pass.
func (s *DrawService) RunOnce(ctx context.Context) error {
	now := time.Now()

	ended, err := s.compRepo.ListEnded(ctx, now)
	if err != nil {
		return fmt.Errorf("s.compRepo.ListEnded -> %w", err)
	}
	for _, competition := range ended {
		if err = s.compRepo.UpdateStatus(ctx, competition.ID, domain.CompetitionClosed); err != nil {
			return fmt.Errorf("s.compRepo.UpdateStatus -> %w", err)
		}
		zap.L().Info("competition closed",
			zap.Uint("competition_id", competition.ID), zap.String("slug", competition.Slug))
	}

	due, err := s.compRepo.ListDrawDue(ctx, now)
	if err != nil {
		return fmt.Errorf("s.compRepo.ListDrawDue -> %w", err)
	}
	for _, competition := range due {
		if err = s.draw(ctx, competition, now); err != nil {
			return err
		}
	}

	if len(ended) > 0 {
		s.store.Invalidate(competitionsCacheKey)
	}
	if len(due) > 0 {
		s.store.Invalidate(competitionsCacheKey)
		s.store.Invalidate(leaderboardCacheKey)
	}

	return nil
}

func (s *DrawService) draw(ctx context.Context, competition domain.Competition, now time.Time) error {
	entries, err := s.entryRepo.ListByCompetition(ctx, competition.ID)
	if err != nil {
		return fmt.Errorf("s.entryRepo.ListByCompetition -> %w", err)
	}

	winners, err := sampleEntries(entries, competition.WinnersCount)
	if err != nil {
		return err
	}

	for place, entry := range winners {
		win := domain.Win{
			UserID:        entry.UserID,
			CompetitionID: competition.ID,
			EntryID:       entry.ID,
			Place:         place + 1,
			PrizeValue:    competition.TicketPrice * int64(competition.TotalTickets),
			DrawnAt:       now,
		}

		created, err := s.winRepo.Create(ctx, win)
		if err != nil {
			return fmt.Errorf("s.winRepo.Create -> %w", err)
		}

		s.announce(ctx, created, competition)
	}

	if err = s.compRepo.UpdateStatus(ctx, competition.ID, domain.CompetitionDrawn); err != nil {
		return fmt.Errorf("s.compRepo.UpdateStatus -> %w", err)
	}

	zap.L().Info("competition drawn",
		zap.Uint("competition_id", competition.ID),
		zap.String("slug", competition.Slug),
		zap.Int("winners", len(winners)))

	return nil
}

func (s *DrawService) announce(ctx context.Context, win domain.Win, competition domain.Competition) {
	if s.announcer == nil {
		return
	}

	username := "a participant"
	if user, err := s.userRepo.FindByID(ctx, win.UserID); err == nil {
		username = user.Username
	}

	s.announcer.AnnounceWin(win, competition, username)
}

// sampleEntries picks up to count distinct entries uniformly, using the
// crypto source so the draw cannot be predicted from server state.
func sampleEntries(entries []domain.Entry, count int) ([]domain.Entry, error) {
	if count > len(entries) {
		count = len(entries)
	}

	pool := make([]domain.Entry, len(entries))
	copy(pool, entries)

	winners := make([]domain.Entry, 0, count)
	for i := 0; i < count; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
		if err != nil {
			return nil, fmt.Errorf("rand.Int -> %w", err)
		}

		idx := int(n.Int64())
		winners = append(winners, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	return winners, nil
}
