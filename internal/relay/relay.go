// Package relay implements the per-room broadcast groups that carry editor
// deltas and negotiation signaling between the two participants of a room.
// It knows nothing about websockets; the hub owns the transport.
package relay

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/ktauqeer04/mock-interview/internal/protocol"
)

// ErrRoomOccupied is returned when a third subscriber tries to enter a room.
// The lifecycle manager rejects third joins upstream, so hitting this is a
// protocol violation worth surfacing rather than silently allowing.
var ErrRoomOccupied = errors.New("relay: room already has two subscribers")

// roomCapacity is the number of participants a room can hold.
const roomCapacity = 2

// Relay fans messages out within rooms. Publishing delivers to every other
// subscriber of the same room, never back to the sender and never across
// rooms. Delivery order per sender is the order of Publish calls.
type Relay struct {
	mu     sync.Mutex
	rooms  map[string]map[*Subscription]struct{}
	logger *slog.Logger
}

// Subscription is one participant's membership in a room. Messages for the
// participant are delivered to its sink channel; if the sink is full the
// message is dropped (signaling is fire-and-forget).
type Subscription struct {
	roomID      string
	participant string
	sink        chan<- *protocol.Message
}

// RoomID returns the room this subscription belongs to.
func (s *Subscription) RoomID() string { return s.roomID }

// Participant returns the identity the subscription was created with.
func (s *Subscription) Participant() string { return s.participant }

// New creates an empty relay.
func New(logger *slog.Logger) *Relay {
	return &Relay{
		rooms:  make(map[string]map[*Subscription]struct{}),
		logger: logger,
	}
}

// Subscribe adds a participant to a room. The caller owns sink and must keep
// draining it until Unsubscribe returns.
func (r *Relay) Subscribe(roomID, participant string, sink chan<- *protocol.Message) (*Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[*Subscription]struct{}, roomCapacity)
		r.rooms[roomID] = members
	}
	if len(members) >= roomCapacity {
		r.logger.Warn("subscription rejected, room occupied", "room", roomID, "participant", participant)
		return nil, ErrRoomOccupied
	}

	sub := &Subscription{roomID: roomID, participant: participant, sink: sink}
	members[sub] = struct{}{}
	r.logger.Debug("subscribed", "room", roomID, "participant", participant)
	return sub, nil
}

// Publish delivers msg to every other subscriber of the sender's room.
func (r *Relay) Publish(from *Subscription, msg *protocol.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[from.roomID]
	if !ok {
		return
	}
	if _, ok := members[from]; !ok {
		// Sender already unsubscribed; late publish is dropped.
		return
	}
	r.deliver(members, from, msg)
}

// Unsubscribe removes a participant from its room and notifies the remaining
// subscriber that its peer left. Calling it twice is harmless.
func (r *Relay) Unsubscribe(from *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[from.roomID]
	if !ok {
		return
	}
	if _, ok := members[from]; !ok {
		return
	}
	delete(members, from)
	r.logger.Debug("unsubscribed", "room", from.roomID, "participant", from.participant)

	if len(members) == 0 {
		delete(r.rooms, from.roomID)
		return
	}
	r.deliver(members, from, &protocol.Message{Type: protocol.TypePeerLeft})
}

// deliver sends msg to every member except the sender. Callers hold r.mu, so
// per-sender delivery order matches publish order.
func (r *Relay) deliver(members map[*Subscription]struct{}, from *Subscription, msg *protocol.Message) {
	for member := range members {
		if member == from {
			continue
		}
		select {
		case member.sink <- msg:
		default:
			r.logger.Warn("subscriber sink full, message dropped",
				"room", member.roomID,
				"participant", member.participant,
				"type", msg.Type,
			)
		}
	}
}
