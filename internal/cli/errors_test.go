package cli

import (
	"errors"
	"testing"
)

func TestSessionErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *SessionError
		want string
	}{
		{
			name: "without details",
			err:  NewError("join room channel", ErrSignalingError),
			want: "join room channel: signaling server error",
		},
		{
			name: "with details",
			err:  WrapError("session ended", ErrPeerDisconnected, "peer closed the tab"),
			want: "session ended: peer disconnected (peer closed the tab)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionErrorUnwrapsSentinel(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrPeerDisconnected,
		ErrSignalingError,
		ErrConnectionFailed,
		ErrSessionCancelled,
	}
	for _, sentinel := range sentinels {
		err := WrapError("op", sentinel, "details")
		if !errors.Is(err, sentinel) {
			t.Errorf("errors.Is(%v, %v) = false, want true", err, sentinel)
		}
	}
	if errors.Is(NewError("op", ErrPeerDisconnected), ErrSignalingError) {
		t.Error("unrelated sentinel matched")
	}
}
