// Package hub connects websocket participants to the relay. A single
// goroutine (Run) owns all membership changes and message routing, so
// per-sender delivery order is the order messages were read off the wire.
package hub

import (
	"context"
	"log/slog"

	"github.com/ktauqeer04/mock-interview/internal/protocol"
	"github.com/ktauqeer04/mock-interview/internal/relay"
	"github.com/ktauqeer04/mock-interview/internal/store"
)

// RoomChecker validates that a room is live before a websocket subscription
// is accepted. The room lifecycle manager implements it.
type RoomChecker interface {
	GetRoom(ctx context.Context, id string) (*store.Room, error)
}

type inbound struct {
	client *Client
	msg    *protocol.Message
}

// Hub routes websocket messages between participants of the same room.
type Hub struct {
	relay  *relay.Relay
	rooms  RoomChecker
	logger *slog.Logger

	// Register is a channel for registering new clients.
	Register chan *Client

	// Unregister is a channel for unregistering clients.
	Unregister chan *Client

	// Inbound carries messages read from client connections.
	Inbound chan inbound
}

// NewHub creates a hub on the given relay and room source.
func NewHub(r *relay.Relay, rooms RoomChecker, logger *slog.Logger) *Hub {
	return &Hub{
		relay:      r,
		rooms:      rooms,
		logger:     logger,
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Inbound:    make(chan inbound),
	}
}

// Run starts the hub's main processing loop. This is the single goroutine
// that touches client subscriptions.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			// Not in a room yet; membership starts with a join message.
			h.logger.Debug("client registered", "addr", client.Conn.RemoteAddr())

		case client := <-h.Unregister:
			if client.sub != nil {
				// Unsubscribe delivers peer-left to the remaining member.
				h.relay.Unsubscribe(client.sub)
				h.logger.Info("participant left", "room", client.sub.RoomID(), "email", client.Email)
			}
			close(client.Send)

		case in := <-h.Inbound:
			h.route(in.client, in.msg)
		}
	}
}

func (h *Hub) route(client *Client, msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeJoin:
		h.handleJoin(client, msg)

	case protocol.TypeCodeUpdate,
		protocol.TypeOffer,
		protocol.TypeAnswer,
		protocol.TypeICECandidate,
		protocol.TypeRequestOffer:
		if client.sub == nil {
			h.sendError(client, "you must join a room first")
			return
		}
		h.relay.Publish(client.sub, msg)

	default:
		h.logger.Warn("unknown message type", "type", msg.Type)
	}
}

func (h *Hub) handleJoin(client *Client, msg *protocol.Message) {
	if client.sub != nil {
		h.sendError(client, "already joined a room")
		return
	}

	var payload protocol.JoinPayload
	if err := msg.DecodePayload(&payload); err != nil || payload.RoomID == "" || payload.Email == "" {
		h.sendError(client, "invalid join payload")
		return
	}

	room, err := h.rooms.GetRoom(context.Background(), payload.RoomID)
	if err != nil {
		h.sendError(client, err.Error())
		return
	}
	if payload.Email != room.CreatorEmail && payload.Email != room.PeerEmail {
		h.sendError(client, "not a participant of this room")
		return
	}

	sub, err := h.relay.Subscribe(payload.RoomID, payload.Email, client.Send)
	if err != nil {
		h.sendError(client, err.Error())
		return
	}
	client.sub = sub
	client.Email = payload.Email
	h.logger.Info("participant joined", "room", payload.RoomID, "email", payload.Email)
}

func (h *Hub) sendError(client *Client, text string) {
	msg, err := protocol.NewMessage(protocol.TypeError, "", protocol.ErrorPayload{Error: text})
	if err != nil {
		return
	}
	select {
	case client.Send <- msg:
	default:
		h.logger.Warn("client send buffer full, error dropped", "error", text)
	}
}
