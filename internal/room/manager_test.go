package room

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ktauqeer04/mock-interview/internal/question"
	"github.com/ktauqeer04/mock-interview/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	m := NewManager(st, question.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.pick = func(n int) int { return 0 }
	return m, st
}

func TestCreateRoom(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, _ := newTestManager(t)

	room, err := m.CreateRoom(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.ID == "" {
		t.Error("room id must be set")
	}
	if room.CreatorEmail != "alice@example.com" {
		t.Errorf("creator: got %q", room.CreatorEmail)
	}
	if room.PeerEmail != "" || room.QuestionID != 0 {
		t.Errorf("peer slot and question must be empty at creation: %+v", room)
	}
	if want := room.CreatedAt.Add(TTL); !room.ExpiresAt.Equal(want) {
		t.Errorf("expiresAt: got %v, want %v", room.ExpiresAt, want)
	}
}

func TestCreateRoomEmptyEmail(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t)

	if _, err := m.CreateRoom(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestCreateRoomRetriesOnIDCollision(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, _ := newTestManager(t)

	ids := []string{"same", "same", "fresh"}
	m.newID = func() string {
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}

	first, err := m.CreateRoom(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("first CreateRoom: %v", err)
	}
	second, err := m.CreateRoom(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("second CreateRoom: %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("id collision not resolved: both %q", first.ID)
	}
}

func TestJoinRoomHappyPath(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, _ := newTestManager(t)

	created, err := m.CreateRoom(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	joined, err := m.JoinRoom(ctx, created.ID, "bob@example.com")
	if err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}
	if joined.PeerEmail != "bob@example.com" {
		t.Errorf("peer: got %q", joined.PeerEmail)
	}
	if joined.QuestionID == 0 {
		t.Error("question must be assigned when the second participant joins")
	}

	// Both participants observe the same assignment.
	got, err := m.GetRoom(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if got.QuestionID != joined.QuestionID {
		t.Errorf("question drifted: %d vs %d", got.QuestionID, joined.QuestionID)
	}

	// A third participant is rejected.
	if _, err := m.JoinRoom(ctx, created.ID, "carol@example.com"); !errors.Is(err, ErrRoomFull) {
		t.Errorf("third join: got %v, want ErrRoomFull", err)
	}
}

func TestJoinRoomErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, _ := newTestManager(t)

	created, err := m.CreateRoom(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	tests := []struct {
		name  string
		id    string
		email string
		want  error
	}{
		{"empty email", created.ID, "", ErrInvalidInput},
		{"unknown room", "missing1", "bob@example.com", ErrNotFound},
		{"self join", created.ID, "alice@example.com", ErrSelfJoin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.JoinRoom(ctx, tt.id, tt.email); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestJoinRoomExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, st := newTestManager(t)

	// Seed a room whose lifetime has already passed. An expired room must
	// report Expired regardless of its fill state, never Full or success.
	expired := &store.Room{
		ID:           "expired1",
		CreatorEmail: "alice@example.com",
		PeerEmail:    "bob@example.com",
		CreatedAt:    time.Now().Add(-2 * time.Hour),
		ExpiresAt:    time.Now().Add(-time.Hour),
	}
	if err := st.Put(ctx, expired); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if _, err := m.JoinRoom(ctx, "expired1", "carol@example.com"); !errors.Is(err, ErrExpired) {
		t.Errorf("join expired: got %v, want ErrExpired", err)
	}
	if _, err := m.GetRoom(ctx, "expired1"); !errors.Is(err, ErrExpired) {
		t.Errorf("get expired: got %v, want ErrExpired", err)
	}
}

func TestConcurrentJoinsExactlyOneSucceeds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, _ := newTestManager(t)

	created, err := m.CreateRoom(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := "joiner" + string(rune('a'+i)) + "@example.com"
			_, errs[i] = m.JoinRoom(ctx, created.ID, email)
		}(i)
	}
	wg.Wait()

	successes, fulls := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrRoomFull):
			fulls++
		default:
			t.Errorf("unexpected join error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("successes: got %d, want exactly 1", successes)
	}
	if fulls != attempts-1 {
		t.Errorf("full rejections: got %d, want %d", fulls, attempts-1)
	}
}

func TestRecordResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, st := newTestManager(t)

	created, err := m.CreateRoom(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	if err := m.RecordResult(ctx, created.ID, "alice@example.com", 1, true); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	results := st.Results(created.ID)
	if !results[store.ResultKey{Email: "alice@example.com", QuestionID: 1}] {
		t.Error("result not recorded")
	}

	// A vanished room is a no-op, not an error.
	if err := m.RecordResult(ctx, "gone", "alice@example.com", 1, true); err != nil {
		t.Errorf("RecordResult on missing room: %v", err)
	}
}
