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

func TestLeaderboardService_GetLeaderboard(t *testing.T) {
	users := newFakeUserRepo()
	comps := newFakeCompetitionRepo()
	entries := newFakeEntryRepo(comps)
	wins := newFakeWinRepo()
	store := cache.NewStore()

	alice := users.add(domain.User{Username: "alice"})
	bob := users.add(domain.User{Username: "bob"})
	carol := users.add(domain.User{Username: "carol"})

	competition := comps.add(domain.Competition{Status: domain.CompetitionOpen, TotalTickets: 100})

	// alice: 4 entries, 2 wins. bob: 2 entries, 2 wins. carol: 1 entry, 0 wins.
	for i := 0; i < 4; i++ {
		entries.add(domain.Entry{UserID: alice.ID, CompetitionID: competition.ID})
	}
	for i := 0; i < 2; i++ {
		entries.add(domain.Entry{UserID: bob.ID, CompetitionID: competition.ID})
	}
	entries.add(domain.Entry{UserID: carol.ID, CompetitionID: competition.ID})

	now := time.Now()
	for _, userID := range []uint{alice.ID, alice.ID, bob.ID, bob.ID} {
		_, err := wins.Create(context.Background(), domain.Win{
			UserID: userID, CompetitionID: competition.ID, Place: 1, DrawnAt: now,
		})
		require.NoError(t, err)
	}

	svc := NewLeaderboardService(users, entries, wins, store)

	board, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 3)

	// Equal wins, so bob's higher win rate breaks the tie.
	assert.Equal(t, "bob", board[0].Username)
	assert.Equal(t, 1, board[0].Rank)
	assert.InDelta(t, 1.0, board[0].WinRate, 0.001)

	assert.Equal(t, "alice", board[1].Username)
	assert.Equal(t, 2, board[1].Rank)
	assert.InDelta(t, 0.5, board[1].WinRate, 0.001)

	assert.Equal(t, "carol", board[2].Username)
	assert.Equal(t, 3, board[2].Rank)
	assert.Zero(t, board[2].Wins)
}

func TestLeaderboardService_GetLeaderboard_Cached(t *testing.T) {
	users := newFakeUserRepo()
	comps := newFakeCompetitionRepo()
	entries := newFakeEntryRepo(comps)
	wins := newFakeWinRepo()
	store := cache.NewStore()

	users.add(domain.User{Username: "alice"})

	svc := NewLeaderboardService(users, entries, wins, store)

	first, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A new user does not show up until the cache is invalidated.
	users.add(domain.User{Username: "bob"})

	cached, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	store.Invalidate("leaderboard")

	fresh, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestLeaderboardService_GetUserStats(t *testing.T) {
	users := newFakeUserRepo()
	comps := newFakeCompetitionRepo()
	entries := newFakeEntryRepo(comps)
	wins := newFakeWinRepo()
	store := cache.NewStore()

	alice := users.add(domain.User{Username: "alice"})
	competition := comps.add(domain.Competition{Status: domain.CompetitionOpen, TotalTickets: 100})
	entries.add(domain.Entry{UserID: alice.ID, CompetitionID: competition.ID})
	entries.add(domain.Entry{UserID: alice.ID, CompetitionID: competition.ID})

	day := 24 * time.Hour
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for _, drawnAt := range []time.Time{now, now.Add(-day), now.Add(-3 * day)} {
		_, err := wins.Create(context.Background(), domain.Win{
			UserID: alice.ID, CompetitionID: competition.ID, Place: 1, DrawnAt: drawnAt,
		})
		require.NoError(t, err)
	}

	svc := NewLeaderboardService(users, entries, wins, store)

	stats, err := svc.GetUserStats(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 3, stats.Wins)
	// Today and yesterday count; the gap before the third win ends the run.
	assert.Equal(t, 2, stats.Streak)
}

func TestWinStreak(t *testing.T) {
	assert.Zero(t, winStreak(nil))

	day := 24 * time.Hour
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	single := []domain.Win{{DrawnAt: now}}
	assert.Equal(t, 1, winStreak(single))

	sameDay := []domain.Win{{DrawnAt: now}, {DrawnAt: now.Add(-time.Hour)}}
	assert.Equal(t, 1, winStreak(sameDay))

	run := []domain.Win{
		{DrawnAt: now},
		{DrawnAt: now.Add(-day)},
		{DrawnAt: now.Add(-2 * day)},
	}
	assert.Equal(t, 3, winStreak(run))
}
