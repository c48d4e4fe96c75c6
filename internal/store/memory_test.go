package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(now time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	return s
}

func testRoom(id string, createdAt time.Time) *Room {
	return &Room{
		ID:           id,
		CreatorEmail: "alice@example.com",
		CreatedAt:    createdAt,
		ExpiresAt:    createdAt.Add(time.Hour),
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(baseTime)

	room := testRoom("r1", baseTime)
	if err := s.Put(ctx, room); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CreatorEmail != "alice@example.com" {
		t.Errorf("creator: got %q", got.CreatorEmail)
	}

	// The returned room is a copy; mutating it must not affect the store.
	got.PeerEmail = "mallory@example.com"
	again, err := s.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get after mutation: %v", err)
	}
	if again.PeerEmail != "" {
		t.Error("store returned a shared Room pointer")
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	t.Parallel()
	s := newTestStore(baseTime)

	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreGetExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	now := baseTime
	s.now = func() time.Time { return now }

	if err := s.Put(ctx, testRoom("r1", baseTime)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Advance past expiry: the room must report Expired, not NotFound, until
	// a sweep removes it.
	now = baseTime.Add(time.Hour + time.Minute)
	if _, err := s.Get(ctx, "r1"); !errors.Is(err, ErrExpired) {
		t.Errorf("after expiry: got %v, want ErrExpired", err)
	}
}

func TestMemoryStoreSweepRemovesRoomAndResults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(baseTime)

	if err := s.Put(ctx, testRoom("old", baseTime.Add(-2*time.Hour))); err != nil {
		t.Fatalf("Put old: %v", err)
	}
	if err := s.Put(ctx, testRoom("fresh", baseTime)); err != nil {
		t.Fatalf("Put fresh: %v", err)
	}
	if err := s.SetResult(ctx, "old", "alice@example.com", 3, true); err != nil {
		t.Fatalf("SetResult: %v", err)
	}

	removed, err := s.SweepExpired(ctx, baseTime)
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed: got %d, want 1", removed)
	}

	if _, err := s.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("swept room: got %v, want ErrNotFound", err)
	}
	if results := s.Results("old"); results != nil {
		t.Errorf("swept results still present: %v", results)
	}
	if _, err := s.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh room must survive the sweep: %v", err)
	}
}

func TestMemoryStoreSetResultUpsert(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(baseTime)

	if err := s.Put(ctx, testRoom("r1", baseTime)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := s.SetResult(ctx, "r1", "bob@example.com", 7, false); err != nil {
		t.Fatalf("SetResult: %v", err)
	}
	// Last write wins.
	if err := s.SetResult(ctx, "r1", "bob@example.com", 7, true); err != nil {
		t.Fatalf("SetResult again: %v", err)
	}

	results := s.Results("r1")
	if got := results[ResultKey{Email: "bob@example.com", QuestionID: 7}]; !got {
		t.Errorf("result: got %v, want true", got)
	}

	if err := s.SetResult(ctx, "gone", "bob@example.com", 7, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetResult on missing room: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(baseTime)

	if err := s.Put(ctx, testRoom("r1", baseTime)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "r1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}
}
