package signaling

import (
	"encoding/json"
	"fmt"

	"github.com/ktauqeer04/mock-interview/internal/protocol"
)

// Sender carries room-scoped messages to the other participant. It satisfies
// the negotiation engine's outbound contract.
type Sender struct {
	client *Client
	roomID string
}

// NewSender binds a sender to a connected client and room.
func NewSender(client *Client, roomID string) *Sender {
	return &Sender{client: client, roomID: roomID}
}

func (s *Sender) send(msgType string, payload any) error {
	msg, err := protocol.NewMessage(msgType, s.roomID, payload)
	if err != nil {
		return fmt.Errorf("build %s message: %w", msgType, err)
	}
	s.client.Send(msg)
	return nil
}

// SendOffer forwards a session offer to the peer.
func (s *Sender) SendOffer(offer protocol.SessionDescription) error {
	return s.send(protocol.TypeOffer, protocol.OfferPayload{Offer: offer})
}

// SendAnswer forwards a session answer to the peer.
func (s *Sender) SendAnswer(answer protocol.SessionDescription) error {
	return s.send(protocol.TypeAnswer, protocol.AnswerPayload{Answer: answer})
}

// SendCandidate forwards a locally-gathered candidate to the peer.
func (s *Sender) SendCandidate(candidate json.RawMessage) error {
	return s.send(protocol.TypeICECandidate, protocol.ICECandidatePayload{Candidate: candidate})
}

// SendRequestOffer asks the peer to start a negotiation round.
func (s *Sender) SendRequestOffer() error {
	return s.send(protocol.TypeRequestOffer, struct{}{})
}

// SendCodeUpdate shares the local editor contents with the peer.
func (s *Sender) SendCodeUpdate(code string) error {
	return s.send(protocol.TypeCodeUpdate, protocol.CodeUpdatePayload{Code: code})
}
