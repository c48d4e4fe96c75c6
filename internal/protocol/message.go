package protocol

import "encoding/json"

// Message is the envelope for every websocket message exchanged with the
// signaling server, in both directions. Payload shapes depend on Type.
type Message struct {
	Type    string          `json:"type"`
	RoomID  string          `json:"roomId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants.
const (
	TypeJoin         = "join"
	TypeCodeUpdate   = "code-update"
	TypeOffer        = "webrtc-offer"
	TypeAnswer       = "webrtc-answer"
	TypeICECandidate = "webrtc-ice-candidate"
	TypeRequestOffer = "request-offer"
	TypePeerLeft     = "peer-left"
	TypeError        = "error"
)

// SessionDescription is an SDP offer or answer carried over the relay.
type SessionDescription struct {
	Type string `json:"type"`
	SDP  string `json:"sdp"`
}

// JoinPayload establishes a room subscription for the sending connection.
type JoinPayload struct {
	RoomID string `json:"roomId"`
	Email  string `json:"email"`
}

// CodeUpdatePayload carries the full shared code buffer.
type CodeUpdatePayload struct {
	Code string `json:"code"`
}

// OfferPayload carries an SDP offer.
type OfferPayload struct {
	Offer SessionDescription `json:"offer"`
}

// AnswerPayload carries an SDP answer.
type AnswerPayload struct {
	Answer SessionDescription `json:"answer"`
}

// ICECandidatePayload carries one ICE candidate. Candidate may be JSON null
// to signal end-of-candidates.
type ICECandidatePayload struct {
	Candidate json.RawMessage `json:"candidate"`
}

// ErrorPayload carries a server-side error description.
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage builds a Message with the payload marshalled to JSON.
func NewMessage(msgType, roomID string, payload any) (*Message, error) {
	msg := &Message{Type: msgType, RoomID: roomID}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = raw
	}
	return msg, nil
}

// DecodePayload unmarshals the message payload into v.
func (m *Message) DecodePayload(v any) error {
	return json.Unmarshal(m.Payload, v)
}
