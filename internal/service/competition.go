package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"

	"prizedraw-api/internal/cache"
	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/repository"
)

var ErrCompetitionNotFound = repository.ErrCompetitionNotFound

const competitionsCacheKey = "competitions:open"

type CompetitionRepository interface {
	Create(ctx context.Context, competition domain.Competition) (domain.Competition, error)
	Update(ctx context.Context, competition domain.Competition) (domain.Competition, error)
	FindByID(ctx context.Context, id uint) (domain.Competition, error)
	FindBySlug(ctx context.Context, slug string) (domain.Competition, error)
	ListOpen(ctx context.Context) ([]domain.Competition, error)
}

type CompetitionService struct {
	repo  CompetitionRepository
	store *cache.Store
}

func NewCompetitionService(repo CompetitionRepository, store *cache.Store) *CompetitionService {
	return &CompetitionService{
		repo:  repo,
		store: store,
	}
}

// GetCompetitions serves the open listing through the cache; the payload
// stays identical between invalidations.
func (s *CompetitionService) GetCompetitions(ctx context.Context) ([]domain.Competition, error) {
	val, err := s.store.GetOrCompute(competitionsCacheKey, func() (any, error) {
		competitions, err := s.repo.ListOpen(ctx)
		if err != nil {
			return nil, fmt.Errorf("s.repo.ListOpen -> %w", err)
		}

		return competitions, nil
	})
	if err != nil {
		return nil, err
	}

	return val.([]domain.Competition), nil
}

func (s *CompetitionService) GetCompetitionBySlug(ctx context.Context, competitionSlug string) (domain.Competition, error) {
	competition, err := s.repo.FindBySlug(ctx, competitionSlug)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("s.repo.FindBySlug -> %w", err)
	}

	return competition, nil
}

func (s *CompetitionService) GetCompetitionByID(ctx context.Context, id uint) (domain.Competition, error) {
	competition, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return competition, nil
}

func (s *CompetitionService) CreateCompetition(ctx context.Context, competition domain.Competition) (domain.Competition, error) {
	competition.Slug = slug.Make(competition.Title)
	competition.Status = domain.CompetitionOpen
	if competition.Steps <= 0 {
		competition.Steps = 1
	}
	if competition.WinnersCount <= 0 {
		competition.WinnersCount = 1
	}
	if competition.DrawDate.IsZero() {
		competition.DrawDate = competition.EndDate.Add(24 * time.Hour)
	}

	created, err := s.repo.Create(ctx, competition)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.store.Invalidate(competitionsCacheKey)

	return created, nil
}

func (s *CompetitionService) UpdateCompetition(ctx context.Context, competition domain.Competition) (domain.Competition, error) {
	updated, err := s.repo.Update(ctx, competition)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.store.Invalidate(competitionsCacheKey)

	return updated, nil
}

func (s *CompetitionService) SetCompetitionImage(ctx context.Context, id uint, imageURL string) (domain.Competition, error) {
	competition, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	competition.ImageURL = imageURL

	return s.UpdateCompetition(ctx, competition)
}
