package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no live record exists for the given id.
	ErrNotFound = errors.New("room not found")

	// ErrExpired is returned for a room whose expiry has passed but that has
	// not been swept yet. Callers must never treat such a room as live.
	ErrExpired = errors.New("room expired")
)

// Room is the authoritative record of one pairing session.
type Room struct {
	ID           string    `json:"roomId"`
	CreatorEmail string    `json:"creatorEmail"`
	PeerEmail    string    `json:"peerEmail,omitempty"`
	QuestionID   int       `json:"questionId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Expired reports whether the room's lifetime has passed at the given instant.
func (r *Room) Expired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}

// Full reports whether both participant slots are taken.
func (r *Room) Full() bool {
	return r.PeerEmail != ""
}

// ResultKey identifies one participant's result for one question.
type ResultKey struct {
	Email      string
	QuestionID int
}

// RoomStore holds rooms and their per-participant result records. Result
// records share the lifetime of their room: Delete and SweepExpired remove
// both together, and no reader may observe a partial deletion.
type RoomStore interface {
	// Put inserts or replaces a room.
	Put(ctx context.Context, room *Room) error

	// Get returns the room with the given id. It returns ErrNotFound for
	// unknown ids and ErrExpired for rooms past their expiry, so expired
	// rooms are never observable as live records.
	Get(ctx context.Context, id string) (*Room, error)

	// Delete removes a room and its result records.
	Delete(ctx context.Context, id string) error

	// SetResult upserts a solved flag for (room, email, question). Last
	// write wins. Returns ErrNotFound if the room is gone.
	SetResult(ctx context.Context, roomID, email string, questionID int, solved bool) error

	// SweepExpired removes every room whose expiry precedes now, together
	// with its result records, and reports how many rooms were removed.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}
