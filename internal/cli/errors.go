package cli

import (
	"errors"
	"fmt"

	"github.com/ktauqeer04/mock-interview/internal/ui"
)

var (
	ErrPeerDisconnected = errors.New("peer disconnected")
	ErrSignalingError   = errors.New("signaling server error")
	ErrConnectionFailed = errors.New("connection failed")
	ErrSessionCancelled = errors.New("session cancelled by user")
)

// SessionError annotates a failure with the operation that produced it.
type SessionError struct {
	Op      string
	Err     error
	Details string
}

func (e *SessionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

func NewError(op string, err error) *SessionError {
	return &SessionError{Op: op, Err: err}
}

func WrapError(op string, err error, details string) *SessionError {
	return &SessionError{Op: op, Err: err, Details: details}
}

func PrintErr(err error) {
	ui.PrintError(err.Error())
}
