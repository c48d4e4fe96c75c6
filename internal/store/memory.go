package store

import (
	"context"
	"sync"
	"time"
)

// SweepInterval is how often the background sweep removes expired rooms.
const SweepInterval = 5 * time.Minute

// MemoryStore is the in-process RoomStore. A single mutex covers rooms and
// results so a sweep is atomic with respect to any in-flight read.
type MemoryStore struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	results map[string]map[ResultKey]bool

	// now is the clock; replaceable in tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:   make(map[string]*Room),
		results: make(map[string]map[ResultKey]bool),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, room *Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *room
	s.rooms[room.ID] = &copied
	if _, ok := s.results[room.ID]; !ok {
		s.results[room.ID] = make(map[ResultKey]bool)
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	if room.Expired(s.now()) {
		return nil, ErrExpired
	}
	copied := *room
	return &copied, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, id)
	delete(s.results, id)
	return nil
}

func (s *MemoryStore) SetResult(_ context.Context, roomID, email string, questionID int, solved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, ok := s.results[roomID]
	if !ok {
		return ErrNotFound
	}
	results[ResultKey{Email: email, QuestionID: questionID}] = solved
	return nil
}

func (s *MemoryStore) SweepExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, room := range s.rooms {
		if room.Expired(now) {
			delete(s.rooms, id)
			delete(s.results, id)
			removed++
		}
	}
	return removed, nil
}

// Results returns a copy of the result records for a room. It is used by
// callers that inspect outcomes after a session; nothing in the relay or
// negotiation path reads it.
func (s *MemoryStore) Results(roomID string) map[ResultKey]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results, ok := s.results[roomID]
	if !ok {
		return nil
	}
	copied := make(map[ResultKey]bool, len(results))
	for k, v := range results {
		copied[k] = v
	}
	return copied
}
