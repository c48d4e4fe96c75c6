// Package rtc adapts a pion peer connection to the negotiation engine's
// Connection contract and carries the presence handshake over a data channel.
package rtc

import (
	"encoding/json"
	"fmt"
	"log/slog"

	pion "github.com/pion/webrtc/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ktauqeer04/mock-interview/internal/config"
	"github.com/ktauqeer04/mock-interview/internal/negotiation"
	"github.com/ktauqeer04/mock-interview/internal/protocol"
)

const presenceLabel = "presence"

// Callbacks are fired from pion's internal goroutines; implementations must
// hand events off to the session loop rather than touching the engine
// directly.
type Callbacks struct {
	// OnCandidate receives each locally-gathered candidate as wire-ready JSON,
	// with a trailing null once gathering completes.
	OnCandidate func(candidate json.RawMessage)

	// OnHello fires when the peer announces itself on the presence channel.
	OnHello func(hello HelloPayload)

	// OnConnectionState reports peer connection state transitions.
	OnConnectionState func(state string)
}

// Peer wraps a pion peer connection. It implements negotiation.Connection.
type Peer struct {
	conn     *pion.PeerConnection
	email    string
	logger   *slog.Logger
	presence *pion.DataChannel
}

// NewPeer creates a peer connection using the configured ICE servers and
// registers the callbacks.
func NewPeer(cfg *config.Config, email string, cb Callbacks, logger *slog.Logger) (*Peer, error) {
	iceServers := []pion.ICEServer{{URLs: cfg.GetSTUNServers()}}

	if turnServers := cfg.GetTURNServers(); turnServers != nil {
		username, password := cfg.GetTURNCredentials()
		iceServers = append(iceServers, pion.ICEServer{
			URLs:       turnServers,
			Username:   username,
			Credential: password,
		})
	}

	conn, err := pion.NewPeerConnection(pion.Configuration{ICEServers: iceServers})
	if err != nil {
		return nil, fmt.Errorf("create peer connection: %w", err)
	}

	p := &Peer{conn: conn, email: email, logger: logger}

	conn.OnICECandidate(func(candidate *pion.ICECandidate) {
		if cb.OnCandidate == nil {
			return
		}
		if candidate == nil {
			// Gathering finished; the null terminator travels to the peer.
			cb.OnCandidate(json.RawMessage("null"))
			return
		}
		raw, err := json.Marshal(candidate.ToJSON())
		if err != nil {
			logger.Warn("candidate marshal failed", "error", err)
			return
		}
		cb.OnCandidate(raw)
	})

	conn.OnConnectionStateChange(func(state pion.PeerConnectionState) {
		logger.Debug("connection state changed", "state", state.String())
		if cb.OnConnectionState != nil {
			cb.OnConnectionState(state.String())
		}
	})

	conn.OnDataChannel(func(dc *pion.DataChannel) {
		if dc.Label() != presenceLabel {
			return
		}
		p.presence = dc
		p.setupPresenceHandlers(dc, cb)
	})

	return p, nil
}

// OpenPresence creates the presence data channel. Only one side opens it; the
// other receives it through OnDataChannel.
func (p *Peer) OpenPresence(cb Callbacks) error {
	dc, err := p.conn.CreateDataChannel(presenceLabel, nil)
	if err != nil {
		return fmt.Errorf("create presence channel: %w", err)
	}
	p.presence = dc
	p.setupPresenceHandlers(dc, cb)
	return nil
}

func (p *Peer) setupPresenceHandlers(dc *pion.DataChannel, cb Callbacks) {
	dc.OnOpen(func() {
		p.logger.Debug("presence channel open")
		p.sendHello(dc)
	})

	dc.OnMessage(func(msg pion.DataChannelMessage) {
		var message Message
		if err := msgpack.Unmarshal(msg.Data, &message); err != nil {
			p.logger.Warn("presence message parse failed", "error", err)
			return
		}
		if message.Type != MessageTypeHello {
			return
		}
		var hello HelloPayload
		if err := message.DecodePayload(&hello); err != nil {
			p.logger.Warn("hello decode failed", "error", err)
			return
		}
		if cb.OnHello != nil {
			cb.OnHello(hello)
		}
	})
}

func (p *Peer) sendHello(dc *pion.DataChannel) {
	msg, err := NewMessage(MessageTypeHello, HelloPayload{
		Email:         p.email,
		ClientVersion: "0.1.0",
	})
	if err != nil {
		return
	}
	data, err := msgpack.Marshal(msg)
	if err != nil {
		return
	}
	if err := dc.Send(data); err != nil {
		p.logger.Debug("hello send failed", "error", err)
	}
}

// SignalingState maps pion's signaling state onto the engine's view.
func (p *Peer) SignalingState() negotiation.SignalingState {
	switch p.conn.SignalingState() {
	case pion.SignalingStateStable:
		return negotiation.StateStable
	case pion.SignalingStateHaveLocalOffer:
		return negotiation.StateHaveLocalOffer
	case pion.SignalingStateHaveRemoteOffer:
		return negotiation.StateHaveRemoteOffer
	default:
		return negotiation.StateOther
	}
}

// CreateOffer builds a local offer.
func (p *Peer) CreateOffer() (protocol.SessionDescription, error) {
	offer, err := p.conn.CreateOffer(nil)
	if err != nil {
		return protocol.SessionDescription{}, err
	}
	return protocol.SessionDescription{Type: offer.Type.String(), SDP: offer.SDP}, nil
}

// CreateAnswer builds an answer to the applied remote offer.
func (p *Peer) CreateAnswer() (protocol.SessionDescription, error) {
	answer, err := p.conn.CreateAnswer(nil)
	if err != nil {
		return protocol.SessionDescription{}, err
	}
	return protocol.SessionDescription{Type: answer.Type.String(), SDP: answer.SDP}, nil
}

// SetLocalDescription applies a locally-created description.
func (p *Peer) SetLocalDescription(desc protocol.SessionDescription) error {
	return p.conn.SetLocalDescription(pion.SessionDescription{
		Type: pion.NewSDPType(desc.Type),
		SDP:  desc.SDP,
	})
}

// SetRemoteDescription applies the peer's description.
func (p *Peer) SetRemoteDescription(desc protocol.SessionDescription) error {
	return p.conn.SetRemoteDescription(pion.SessionDescription{
		Type: pion.NewSDPType(desc.Type),
		SDP:  desc.SDP,
	})
}

// Rollback discards the pending local offer.
func (p *Peer) Rollback() error {
	return p.conn.SetLocalDescription(pion.SessionDescription{Type: pion.SDPTypeRollback})
}

// AddICECandidate applies a remote candidate. A null candidate is the
// end-of-candidates marker and maps to an empty candidate string.
func (p *Peer) AddICECandidate(candidate json.RawMessage) error {
	var init pion.ICECandidateInit
	if err := json.Unmarshal(candidate, &init); err != nil {
		return fmt.Errorf("decode candidate: %w", err)
	}
	return p.conn.AddICECandidate(init)
}

// Close releases the peer connection.
func (p *Peer) Close() error {
	return p.conn.Close()
}
