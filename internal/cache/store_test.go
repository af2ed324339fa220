package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	s := NewStore()

	_, ok := s.Get("leaderboard")
	assert.False(t, ok)

	s.Set("leaderboard", []int{1, 2, 3})

	val, ok := s.Get("leaderboard")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, val)
}

func TestStore_GetOrCompute(t *testing.T) {
	s := NewStore()

	calls := 0
	compute := func() (any, error) {
		calls++
		return "computed", nil
	}

	for i := 0; i < 3; i++ {
		val, err := s.GetOrCompute("settings", compute)
		require.NoError(t, err)
		assert.Equal(t, "computed", val)
	}

	// Repeated reads between invalidations serve the same stored value.
	assert.Equal(t, 1, calls)

	s.Invalidate("settings")

	_, err := s.GetOrCompute("settings", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestStore_GetOrCompute_ErrorNotCached(t *testing.T) {
	s := NewStore()

	boom := errors.New("boom")
	_, err := s.GetOrCompute("k", func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	_, ok := s.Get("k")
	assert.False(t, ok)
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore()

	var events []Event
	s.Subscribe("leaderboard", func(ev Event) {
		events = append(events, ev)
	})

	s.Set("leaderboard", 42)
	s.Invalidate("leaderboard")
	s.Set("other", 1) // different key, no notification

	require.Len(t, events, 2)
	assert.Equal(t, Event{Key: "leaderboard", Op: OpSet}, events[0])
	assert.Equal(t, Event{Key: "leaderboard", Op: OpInvalidate}, events[1])
}
