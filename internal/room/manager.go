package room

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ktauqeer04/mock-interview/internal/question"
	"github.com/ktauqeer04/mock-interview/internal/store"
)

// TTL is the fixed room lifetime. It is set at creation and never extended.
const TTL = time.Hour

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// Manager owns room lifecycle: creation, the single join transition, expiry
// translation, and result recording. It is safe for concurrent use.
type Manager struct {
	store  store.RoomStore
	bank   *question.Bank
	logger *slog.Logger

	// joinMu serializes the join transition so exactly one of two racing
	// joins succeeds and the other observes a full room.
	joinMu sync.Mutex

	// Injected for deterministic tests.
	now   func() time.Time
	pick  func(n int) int
	newID func() string
}

// NewManager creates a Manager on the given store and question bank.
func NewManager(st store.RoomStore, bank *question.Bank, logger *slog.Logger) *Manager {
	return &Manager{
		store:  st,
		bank:   bank,
		logger: logger,
		now:    time.Now,
		pick:   randomIndex,
		newID:  randomID,
	}
}

// CreateRoom inserts a new room with only the creator slot filled and a
// fresh, collision-checked id.
func (m *Manager) CreateRoom(ctx context.Context, email string) (*store.Room, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	id, err := m.uniqueID(ctx)
	if err != nil {
		return nil, err
	}

	now := m.now()
	room := &store.Room{
		ID:           id,
		CreatorEmail: email,
		CreatedAt:    now,
		ExpiresAt:    now.Add(TTL),
	}
	if err := m.store.Put(ctx, room); err != nil {
		return nil, fmt.Errorf("storing room: %w", err)
	}

	m.logger.Info("room created", "room", id, "creator", email)
	return room, nil
}

// JoinRoom fills the peer slot and assigns a random question. This is the
// single transition that unlocks signaling for both participants; it happens
// at most once per room.
func (m *Manager) JoinRoom(ctx context.Context, id, email string) (*store.Room, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	m.joinMu.Lock()
	defer m.joinMu.Unlock()

	room, err := m.getRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if room.Full() {
		return nil, ErrRoomFull
	}
	if room.CreatorEmail == email {
		return nil, ErrSelfJoin
	}

	room.PeerEmail = email
	room.QuestionID = m.bank.Random(m.pick).ID
	if err := m.store.Put(ctx, room); err != nil {
		return nil, fmt.Errorf("storing joined room: %w", err)
	}

	m.logger.Info("room joined", "room", id, "peer", email, "question", room.QuestionID)
	return room, nil
}

// GetRoom returns the room, ErrNotFound, or ErrExpired. Expired rooms report
// expiry distinctly so a waiting client can show an accurate message instead
// of retrying forever.
func (m *Manager) GetRoom(ctx context.Context, id string) (*store.Room, error) {
	return m.getRoom(ctx, id)
}

// RecordResult upserts a participant's solved flag for a question. A missing
// room is not an error: the result is informational and the room may already
// have been swept.
func (m *Manager) RecordResult(ctx context.Context, id, email string, questionID int, solved bool) error {
	err := m.store.SetResult(ctx, id, email, questionID, solved)
	if errors.Is(err, store.ErrNotFound) {
		m.logger.Debug("result for missing room dropped", "room", id, "email", email)
		return nil
	}
	return err
}

func (m *Manager) getRoom(ctx context.Context, id string) (*store.Room, error) {
	room, err := m.store.Get(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrNotFound
	case errors.Is(err, store.ErrExpired):
		return nil, ErrExpired
	case err != nil:
		return nil, fmt.Errorf("reading room: %w", err)
	}
	return room, nil
}

func (m *Manager) uniqueID(ctx context.Context) (string, error) {
	for {
		id := m.newID()
		_, err := m.store.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return id, nil
		}
		if err != nil && !errors.Is(err, store.ErrExpired) {
			return "", fmt.Errorf("checking id collision: %w", err)
		}
		// Collision with a live or not-yet-swept room; try again.
	}
}

// randomID returns a short opaque room token.
func randomID() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[randomIndex(len(idAlphabet))]
	}
	return string(b)
}

// randomIndex returns a cryptographically secure random index for a slice of given length.
func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(fmt.Sprintf("failed to generate random index: %v", err))
	}
	return int(n.Int64())
}
