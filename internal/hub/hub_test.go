package hub

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ktauqeer04/mock-interview/internal/protocol"
	"github.com/ktauqeer04/mock-interview/internal/relay"
	"github.com/ktauqeer04/mock-interview/internal/store"
)

// staticRooms is a RoomChecker over a fixed set of rooms.
type staticRooms map[string]*store.Room

func (s staticRooms) GetRoom(_ context.Context, id string) (*store.Room, error) {
	room, ok := s[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return room, nil
}

func newTestHub(rooms staticRooms) *Hub {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHub(relay.New(logger), rooms, logger)
	go h.Run()
	return h
}

func newTestClient(h *Hub) *Client {
	return &Client{Hub: h, Send: make(chan *protocol.Message, 16)}
}

func join(t *testing.T, h *Hub, c *Client, roomID, email string) {
	t.Helper()
	msg, err := protocol.NewMessage(protocol.TypeJoin, "", protocol.JoinPayload{RoomID: roomID, Email: email})
	if err != nil {
		t.Fatalf("build join: %v", err)
	}
	h.Inbound <- inbound{client: c, msg: msg}
}

func waitMsg(t *testing.T, ch chan *protocol.Message) *protocol.Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func expectNoMsg(t *testing.T, ch chan *protocol.Message) {
	t.Helper()
	select {
	case msg := <-ch:
		t.Fatalf("unexpected message: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func testRooms() staticRooms {
	return staticRooms{
		"room1": {
			ID:           "room1",
			CreatorEmail: "alice@example.com",
			PeerEmail:    "bob@example.com",
			QuestionID:   3,
			CreatedAt:    time.Now(),
			ExpiresAt:    time.Now().Add(time.Hour),
		},
	}
}

func TestHubRelaysToOtherParticipant(t *testing.T) {
	t.Parallel()
	h := newTestHub(testRooms())

	alice := newTestClient(h)
	bob := newTestClient(h)
	join(t, h, alice, "room1", "alice@example.com")
	join(t, h, bob, "room1", "bob@example.com")

	update, err := protocol.NewMessage(protocol.TypeCodeUpdate, "room1", protocol.CodeUpdatePayload{Code: "x"})
	if err != nil {
		t.Fatalf("build message: %v", err)
	}
	h.Inbound <- inbound{client: alice, msg: update}

	got := waitMsg(t, bob.Send)
	if got.Type != protocol.TypeCodeUpdate {
		t.Errorf("bob got %q, want %q", got.Type, protocol.TypeCodeUpdate)
	}
	expectNoMsg(t, alice.Send)
}

func TestHubRejectsNonParticipant(t *testing.T) {
	t.Parallel()
	h := newTestHub(testRooms())

	mallory := newTestClient(h)
	join(t, h, mallory, "room1", "mallory@example.com")

	got := waitMsg(t, mallory.Send)
	if got.Type != protocol.TypeError {
		t.Fatalf("got %q, want error", got.Type)
	}
}

func TestHubRejectsUnknownRoom(t *testing.T) {
	t.Parallel()
	h := newTestHub(testRooms())

	c := newTestClient(h)
	join(t, h, c, "missing", "alice@example.com")

	got := waitMsg(t, c.Send)
	if got.Type != protocol.TypeError {
		t.Fatalf("got %q, want error", got.Type)
	}
}

func TestHubRejectsPublishBeforeJoin(t *testing.T) {
	t.Parallel()
	h := newTestHub(testRooms())

	c := newTestClient(h)
	update, err := protocol.NewMessage(protocol.TypeCodeUpdate, "room1", protocol.CodeUpdatePayload{Code: "x"})
	if err != nil {
		t.Fatalf("build message: %v", err)
	}
	h.Inbound <- inbound{client: c, msg: update}

	got := waitMsg(t, c.Send)
	if got.Type != protocol.TypeError {
		t.Fatalf("got %q, want error", got.Type)
	}
}

func TestHubUnregisterNotifiesPeerAndClosesSend(t *testing.T) {
	t.Parallel()
	h := newTestHub(testRooms())

	alice := newTestClient(h)
	bob := newTestClient(h)
	join(t, h, alice, "room1", "alice@example.com")
	join(t, h, bob, "room1", "bob@example.com")

	h.Unregister <- alice

	got := waitMsg(t, bob.Send)
	if got.Type != protocol.TypePeerLeft {
		t.Errorf("bob got %q, want %q", got.Type, protocol.TypePeerLeft)
	}

	select {
	case _, ok := <-alice.Send:
		if ok {
			t.Error("expected alice's send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Error("alice's send channel was not closed")
	}
}
