package room

import "errors"

var (
	// ErrInvalidInput indicates a missing required field, such as an empty email.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates no room exists with the given id.
	ErrNotFound = errors.New("room not found")

	// ErrExpired indicates the room's one-hour lifetime has passed.
	ErrExpired = errors.New("room has expired")

	// ErrRoomFull indicates both participant slots are already taken.
	ErrRoomFull = errors.New("room is full")

	// ErrSelfJoin indicates the creator tried to join their own room.
	ErrSelfJoin = errors.New("cannot join your own room")
)
