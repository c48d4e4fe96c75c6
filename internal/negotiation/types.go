package negotiation

import (
	"encoding/json"

	"github.com/ktauqeer04/mock-interview/internal/protocol"
)

// Role decides who yields when both sides offer at once. The room creator is
// impolite, the joiner polite, so the tie breaks the same way on both clients
// without coordination.
type Role string

const (
	RolePolite   Role = "polite"
	RoleImpolite Role = "impolite"
)

// SignalingState mirrors the underlying connection's signaling state. The
// engine reads it through the Connection on every decision instead of keeping
// a shadow copy that could drift.
type SignalingState string

const (
	StateStable          SignalingState = "stable"
	StateHaveLocalOffer  SignalingState = "have-local-offer"
	StateHaveRemoteOffer SignalingState = "have-remote-offer"

	// StateOther covers transient states of the underlying implementation
	// (pranswer variants, closed). The engine treats them as not-stable.
	StateOther SignalingState = "other"
)

// Connection is the peer-connection capability the engine drives. The pion
// adapter in internal/rtc implements it; tests use a fake.
type Connection interface {
	SignalingState() SignalingState
	CreateOffer() (protocol.SessionDescription, error)
	CreateAnswer() (protocol.SessionDescription, error)
	SetLocalDescription(protocol.SessionDescription) error
	SetRemoteDescription(protocol.SessionDescription) error

	// Rollback discards the local offer and returns to stable. Implementations
	// that cannot roll back return an error and the engine degrades to
	// ignoring the colliding offer.
	Rollback() error

	// AddICECandidate applies a remote candidate. The raw JSON shape is passed
	// through untouched; a null candidate marks end-of-candidates.
	AddICECandidate(candidate json.RawMessage) error

	Close() error
}

// Sender carries signaling messages to the other participant. The signaling
// client implements it over the room relay.
type Sender interface {
	SendOffer(protocol.SessionDescription) error
	SendAnswer(protocol.SessionDescription) error
	SendCandidate(candidate json.RawMessage) error
	SendRequestOffer() error
}
