package signaling

import (
	"encoding/json"

	"github.com/ktauqeer04/mock-interview/internal/protocol"
)

// Handler routes incoming relay messages to typed channels. The session loop
// selects over them, which keeps the negotiation engine single-threaded.
type Handler struct {
	client       *Client
	CodeUpdate   chan string
	Offer        chan protocol.SessionDescription
	Answer       chan protocol.SessionDescription
	Candidate    chan json.RawMessage
	RequestOffer chan struct{}
	PeerLeft     chan struct{}
	Error        chan string
	closed       bool
}

// NewHandler creates a new message handler.
func NewHandler(client *Client) *Handler {
	return &Handler{
		client:       client,
		CodeUpdate:   make(chan string, 32),
		Offer:        make(chan protocol.SessionDescription, 4),
		Answer:       make(chan protocol.SessionDescription, 4),
		Candidate:    make(chan json.RawMessage, 32),
		RequestOffer: make(chan struct{}, 1),
		PeerLeft:     make(chan struct{}, 1),
		Error:        make(chan string, 1),
	}
}

// Start begins listening to incoming messages and routing them. It returns
// when the client's connection closes.
func (h *Handler) Start() {
	for msg := range h.client.Incoming() {
		switch msg.Type {

		case protocol.TypeCodeUpdate:
			var payload protocol.CodeUpdatePayload
			if err := msg.DecodePayload(&payload); err != nil {
				continue
			}
			h.CodeUpdate <- payload.Code

		case protocol.TypeOffer:
			var payload protocol.OfferPayload
			if err := msg.DecodePayload(&payload); err != nil {
				h.Error <- "failed to parse offer payload"
				continue
			}
			h.Offer <- payload.Offer

		case protocol.TypeAnswer:
			var payload protocol.AnswerPayload
			if err := msg.DecodePayload(&payload); err != nil {
				h.Error <- "failed to parse answer payload"
				continue
			}
			h.Answer <- payload.Answer

		case protocol.TypeICECandidate:
			var payload protocol.ICECandidatePayload
			if err := msg.DecodePayload(&payload); err != nil {
				continue
			}
			h.Candidate <- payload.Candidate

		case protocol.TypeRequestOffer:
			h.RequestOffer <- struct{}{}

		case protocol.TypePeerLeft:
			h.PeerLeft <- struct{}{}

		case protocol.TypeError:
			var payload protocol.ErrorPayload
			if err := msg.DecodePayload(&payload); err != nil {
				h.Error <- "unknown error from server"
				continue
			}
			h.Error <- payload.Error

		default:
		}
	}
}

// Close closes all handler channels.
func (h *Handler) Close() {
	if h.closed {
		return
	}
	h.closed = true

	close(h.CodeUpdate)
	close(h.Offer)
	close(h.Answer)
	close(h.Candidate)
	close(h.RequestOffer)
	close(h.PeerLeft)
	close(h.Error)
}
