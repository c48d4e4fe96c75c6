package relay

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/ktauqeer04/mock-interview/internal/protocol"
)

func newTestRelay() *Relay {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func codeMsg(code string) *protocol.Message {
	msg, _ := protocol.NewMessage(protocol.TypeCodeUpdate, "", protocol.CodeUpdatePayload{Code: code})
	return msg
}

func TestPublishReachesOnlyTheOtherSubscriber(t *testing.T) {
	t.Parallel()
	r := newTestRelay()

	aliceSink := make(chan *protocol.Message, 8)
	bobSink := make(chan *protocol.Message, 8)
	otherSink := make(chan *protocol.Message, 8)

	alice, err := r.Subscribe("room1", "alice", aliceSink)
	if err != nil {
		t.Fatalf("Subscribe alice: %v", err)
	}
	if _, err := r.Subscribe("room1", "bob", bobSink); err != nil {
		t.Fatalf("Subscribe bob: %v", err)
	}
	if _, err := r.Subscribe("room2", "carol", otherSink); err != nil {
		t.Fatalf("Subscribe carol: %v", err)
	}

	r.Publish(alice, codeMsg("x = 1"))

	if got := len(bobSink); got != 1 {
		t.Fatalf("bob received %d messages, want 1", got)
	}
	if got := len(aliceSink); got != 0 {
		t.Errorf("sender must not receive its own message, got %d", got)
	}
	if got := len(otherSink); got != 0 {
		t.Errorf("message leaked across rooms, got %d", got)
	}
}

func TestPerSenderOrderingPreserved(t *testing.T) {
	t.Parallel()
	r := newTestRelay()

	bobSink := make(chan *protocol.Message, 64)
	alice, err := r.Subscribe("room1", "alice", make(chan *protocol.Message, 1))
	if err != nil {
		t.Fatalf("Subscribe alice: %v", err)
	}
	if _, err := r.Subscribe("room1", "bob", bobSink); err != nil {
		t.Fatalf("Subscribe bob: %v", err)
	}

	const n = 32
	for i := range n {
		r.Publish(alice, codeMsg(fmt.Sprintf("v%d", i)))
	}

	for i := range n {
		msg := <-bobSink
		var payload protocol.CodeUpdatePayload
		if err := msg.DecodePayload(&payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if want := fmt.Sprintf("v%d", i); payload.Code != want {
			t.Fatalf("message %d out of order: got %q, want %q", i, payload.Code, want)
		}
	}
}

func TestThirdSubscriberRejected(t *testing.T) {
	t.Parallel()
	r := newTestRelay()

	if _, err := r.Subscribe("room1", "alice", make(chan *protocol.Message, 1)); err != nil {
		t.Fatalf("Subscribe alice: %v", err)
	}
	if _, err := r.Subscribe("room1", "bob", make(chan *protocol.Message, 1)); err != nil {
		t.Fatalf("Subscribe bob: %v", err)
	}
	if _, err := r.Subscribe("room1", "carol", make(chan *protocol.Message, 1)); !errors.Is(err, ErrRoomOccupied) {
		t.Errorf("third subscribe: got %v, want ErrRoomOccupied", err)
	}
}

func TestUnsubscribeNotifiesPeer(t *testing.T) {
	t.Parallel()
	r := newTestRelay()

	bobSink := make(chan *protocol.Message, 8)
	alice, err := r.Subscribe("room1", "alice", make(chan *protocol.Message, 8))
	if err != nil {
		t.Fatalf("Subscribe alice: %v", err)
	}
	if _, err := r.Subscribe("room1", "bob", bobSink); err != nil {
		t.Fatalf("Subscribe bob: %v", err)
	}

	r.Unsubscribe(alice)

	select {
	case msg := <-bobSink:
		if msg.Type != protocol.TypePeerLeft {
			t.Errorf("got %q, want %q", msg.Type, protocol.TypePeerLeft)
		}
	default:
		t.Fatal("peer-left notification not delivered")
	}

	// Late publishes from the departed subscription are dropped.
	r.Publish(alice, codeMsg("late"))
	if got := len(bobSink); got != 0 {
		t.Errorf("late publish delivered %d messages, want 0", got)
	}

	// Double unsubscribe is harmless.
	r.Unsubscribe(alice)
}

func TestRoomFreedAfterLastUnsubscribe(t *testing.T) {
	t.Parallel()
	r := newTestRelay()

	alice, err := r.Subscribe("room1", "alice", make(chan *protocol.Message, 1))
	if err != nil {
		t.Fatalf("Subscribe alice: %v", err)
	}
	bob, err := r.Subscribe("room1", "bob", make(chan *protocol.Message, 1))
	if err != nil {
		t.Fatalf("Subscribe bob: %v", err)
	}
	r.Unsubscribe(alice)
	r.Unsubscribe(bob)

	// The slot opens up again for a fresh pair.
	if _, err := r.Subscribe("room1", "carol", make(chan *protocol.Message, 1)); err != nil {
		t.Errorf("resubscribe after room emptied: %v", err)
	}
}
