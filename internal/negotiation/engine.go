// Package negotiation implements the perfect-negotiation state machine that
// resolves the symmetric race of two peers initiating a connection at the same
// time. The engine is transport-agnostic: it drives a Connection and talks to
// the peer through a Sender, so it is testable without a network stack.
package negotiation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ktauqeer04/mock-interview/internal/protocol"
)

const (
	// DuplicateWindow suppresses offers/answers arriving within this interval
	// of the previous one processed. The wire format carries no sequence
	// numbers, so a quick repeat is treated as a retransmission.
	DuplicateWindow = 2 * time.Second

	// maxPendingCandidates bounds the queue of candidates received before a
	// remote description. Past the cap the oldest entry is dropped.
	maxPendingCandidates = 128
)

// Engine runs one side of a negotiation session. It is not safe for
// concurrent use; the caller feeds it events from a single goroutine, the
// same way the signaling loop reads one message at a time.
type Engine struct {
	role   Role
	conn   Connection
	sender Sender
	logger *slog.Logger

	// makingOffer and negotiating guard the two paths that both try to leave
	// stable: an outgoing Initiate and an incoming offer.
	makingOffer bool
	negotiating bool

	// pendingRemoteCandidates holds candidates that arrived before a remote
	// description, in receipt order.
	pendingRemoteCandidates []json.RawMessage
	haveRemoteDescription   bool

	lastOfferAt  time.Time
	lastAnswerAt time.Time

	closed bool

	now func() time.Time
}

// NewEngine creates an engine for the given role over conn and sender.
func NewEngine(role Role, conn Connection, sender Sender, logger *slog.Logger) *Engine {
	return &Engine{
		role:   role,
		conn:   conn,
		sender: sender,
		logger: logger.With("role", role),
		now:    time.Now,
	}
}

// Role returns the engine's negotiation role.
func (e *Engine) Role() Role { return e.role }

// Initiate creates and sends an offer. It is a no-op unless the connection is
// stable and no other negotiation round is in flight.
func (e *Engine) Initiate() error {
	if e.closed {
		return nil
	}
	if e.makingOffer || e.negotiating || e.conn.SignalingState() != StateStable {
		e.logger.Debug("initiate skipped, negotiation in flight")
		return nil
	}

	e.makingOffer = true
	e.negotiating = true
	defer func() { e.makingOffer = false }()

	offer, err := e.conn.CreateOffer()
	if err != nil {
		e.negotiating = false
		return fmt.Errorf("create offer: %w", err)
	}
	if err := e.conn.SetLocalDescription(offer); err != nil {
		e.negotiating = false
		return fmt.Errorf("apply local offer: %w", err)
	}
	if err := e.sender.SendOffer(offer); err != nil {
		// The offer never left. Undo the local description so the next
		// Initiate finds the connection stable instead of wedged.
		if rbErr := e.conn.Rollback(); rbErr != nil {
			e.logger.Warn("rollback after failed offer send", "error", rbErr)
		}
		e.negotiating = false
		return fmt.Errorf("send offer: %w", err)
	}
	e.logger.Debug("offer sent")
	return nil
}

// RequestOffer asks the impolite side to initiate. The polite side calls this
// instead of offering proactively, which avoids the simultaneous-offer race in
// the common case.
func (e *Engine) RequestOffer() error {
	if e.closed {
		return nil
	}
	if err := e.sender.SendRequestOffer(); err != nil {
		return fmt.Errorf("send request-offer: %w", err)
	}
	return nil
}

// HandleRequestOffer reacts to the peer asking us to initiate. Only the
// impolite side acts on it.
func (e *Engine) HandleRequestOffer() error {
	if e.closed {
		return nil
	}
	if e.role != RoleImpolite {
		e.logger.Debug("request-offer ignored by polite side")
		return nil
	}
	return e.Initiate()
}

// HandleOffer processes a remote offer per the perfect-negotiation rules:
// apply when stable, yield via rollback when polite in a collision, drop when
// impolite in a collision.
func (e *Engine) HandleOffer(offer protocol.SessionDescription) error {
	if e.closed {
		return nil
	}
	if !e.lastOfferAt.IsZero() && e.now().Sub(e.lastOfferAt) < DuplicateWindow {
		e.logger.Debug("offer suppressed as retransmission")
		return nil
	}

	state := e.conn.SignalingState()
	collision := e.makingOffer || state == StateHaveLocalOffer

	switch {
	case collision:
		if e.role == RoleImpolite {
			// Our offer wins; the polite peer will roll back and answer it.
			e.logger.Debug("colliding offer dropped")
			return nil
		}
		if err := e.conn.Rollback(); err != nil {
			// Without a rollback we cannot answer this round. Drop the offer
			// and let the peer's next offer find us stable.
			e.logger.Warn("rollback failed, offer dropped", "error", err)
			return nil
		}
		e.logger.Debug("local offer rolled back")

	case state != StateStable:
		e.logger.Warn("offer dropped, not in stable state", "state", state)
		return nil
	}

	if err := e.conn.SetRemoteDescription(offer); err != nil {
		e.negotiating = false
		return fmt.Errorf("apply remote offer: %w", err)
	}
	e.lastOfferAt = e.now()
	e.haveRemoteDescription = true
	e.drainCandidates()

	answer, err := e.conn.CreateAnswer()
	if err != nil {
		e.negotiating = false
		return fmt.Errorf("create answer: %w", err)
	}
	if err := e.conn.SetLocalDescription(answer); err != nil {
		e.negotiating = false
		return fmt.Errorf("apply local answer: %w", err)
	}
	e.negotiating = false
	if err := e.sender.SendAnswer(answer); err != nil {
		return fmt.Errorf("send answer: %w", err)
	}
	e.logger.Debug("answer sent")
	return nil
}

// HandleAnswer applies a remote answer to our outstanding offer. Answers in
// any other state are stale and dropped.
func (e *Engine) HandleAnswer(answer protocol.SessionDescription) error {
	if e.closed {
		return nil
	}
	if !e.lastAnswerAt.IsZero() && e.now().Sub(e.lastAnswerAt) < DuplicateWindow {
		e.logger.Debug("answer suppressed as retransmission")
		return nil
	}
	if e.conn.SignalingState() != StateHaveLocalOffer {
		e.logger.Debug("stale answer dropped", "state", e.conn.SignalingState())
		return nil
	}

	if err := e.conn.SetRemoteDescription(answer); err != nil {
		e.negotiating = false
		return fmt.Errorf("apply remote answer: %w", err)
	}
	e.lastAnswerAt = e.now()
	e.haveRemoteDescription = true
	e.negotiating = false
	e.drainCandidates()
	e.logger.Debug("answer applied")
	return nil
}

// HandleCandidate applies a remote candidate, or queues it if no remote
// description has been applied yet. Individual apply failures are logged and
// absorbed; the protocol self-heals through further candidates.
func (e *Engine) HandleCandidate(candidate json.RawMessage) error {
	if e.closed {
		return nil
	}
	if !e.haveRemoteDescription {
		if len(e.pendingRemoteCandidates) >= maxPendingCandidates {
			e.pendingRemoteCandidates = e.pendingRemoteCandidates[1:]
			e.logger.Warn("candidate queue full, oldest dropped")
		}
		e.pendingRemoteCandidates = append(e.pendingRemoteCandidates, candidate)
		return nil
	}
	if err := e.conn.AddICECandidate(candidate); err != nil {
		e.logger.Warn("candidate rejected", "error", err)
	}
	return nil
}

// drainCandidates applies queued candidates in receipt order. Failing entries
// are skipped without aborting the batch.
func (e *Engine) drainCandidates() {
	for _, candidate := range e.pendingRemoteCandidates {
		if err := e.conn.AddICECandidate(candidate); err != nil {
			e.logger.Warn("queued candidate rejected", "error", err)
		}
	}
	e.pendingRemoteCandidates = nil
}

// Close tears the session down. All local state is discarded and the
// connection released; a fresh Engine is required to reconnect.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.pendingRemoteCandidates = nil
	e.haveRemoteDescription = false
	e.makingOffer = false
	e.negotiating = false
	if err := e.conn.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	return nil
}
