// Package cache is an in-memory keyed store with subscriber notification.
// It backs read endpoints whose payloads must stay stable between explicit
// invalidations (leaderboard, competition listings).
package cache

import "sync"

type Op string

const (
	OpSet        Op = "set"
	OpInvalidate Op = "invalidate"
)

type Event struct {
	Key string
	Op  Op
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]any
	subs    map[string][]func(Event)
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]any),
		subs:    make(map[string][]func(Event)),
	}
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.entries[key]

	return val, ok
}

func (s *Store) Set(key string, val any) {
	s.mu.Lock()
	s.entries[key] = val
	subs := append([]func(Event){}, s.subs[key]...)
	s.mu.Unlock()

	notify(subs, Event{Key: key, Op: OpSet})
}

// Invalidate drops the key. Readers recompute on the next Get miss.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	subs := append([]func(Event){}, s.subs[key]...)
	s.mu.Unlock()

	notify(subs, Event{Key: key, Op: OpInvalidate})
}

// Subscribe registers fn for every Set/Invalidate of key. Callbacks run
// synchronously after the store mutation, outside the lock.
func (s *Store) Subscribe(key string, fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs[key] = append(s.subs[key], fn)
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. Compute errors are not cached.
func (s *Store) GetOrCompute(key string, compute func() (any, error)) (any, error) {
	if val, ok := s.Get(key); ok {
		return val, nil
	}

	val, err := compute()
	if err != nil {
		return nil, err
	}
	s.Set(key, val)

	return val, nil
}

func notify(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}
