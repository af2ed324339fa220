package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prizedraw-api/internal/cache"
	"prizedraw-api/internal/domain"
)

func TestCompetitionService_CreateCompetition(t *testing.T) {
	repo := newFakeCompetitionRepo()
	store := cache.NewStore()
	svc := NewCompetitionService(repo, store)

	endDate := time.Now().Add(72 * time.Hour)
	created, err := svc.CreateCompetition(context.Background(), domain.Competition{
		Title:        "Win a Dream Car!",
		TicketPrice:  500,
		TotalTickets: 100,
		EndDate:      endDate,
	})
	require.NoError(t, err)

	assert.Equal(t, "win-a-dream-car", created.Slug)
	assert.Equal(t, domain.CompetitionOpen, created.Status)
	assert.Equal(t, 1, created.Steps)
	assert.Equal(t, 1, created.WinnersCount)
	assert.Equal(t, endDate.Add(24*time.Hour), created.DrawDate)
}

func TestCompetitionService_GetCompetitions_CacheInvalidation(t *testing.T) {
	repo := newFakeCompetitionRepo()
	store := cache.NewStore()
	svc := NewCompetitionService(repo, store)

	_, err := svc.CreateCompetition(context.Background(), domain.Competition{
		Title: "First", TicketPrice: 100, TotalTickets: 10, EndDate: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	listed, err := svc.GetCompetitions(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// A write through the service invalidates the cached listing.
	_, err = svc.CreateCompetition(context.Background(), domain.Competition{
		Title: "Second", TicketPrice: 100, TotalTickets: 10, EndDate: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	listed, err = svc.GetCompetitions(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestCompetitionService_GetCompetitionBySlug(t *testing.T) {
	repo := newFakeCompetitionRepo()
	store := cache.NewStore()
	svc := NewCompetitionService(repo, store)

	created, err := svc.CreateCompetition(context.Background(), domain.Competition{
		Title: "Holiday Giveaway", TicketPrice: 100, TotalTickets: 10, EndDate: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	found, err := svc.GetCompetitionBySlug(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetCompetitionBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCompetitionNotFound)
}
