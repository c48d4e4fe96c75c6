// Package api is the CLI's client for the room REST surface. Status codes map
// back onto the room error taxonomy so callers can branch with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ktauqeer04/mock-interview/internal/config"
	"github.com/ktauqeer04/mock-interview/internal/question"
	"github.com/ktauqeer04/mock-interview/internal/room"
	"github.com/ktauqeer04/mock-interview/internal/store"
)

// Client talks to the room server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client against the configured server.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL(),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type emailRequest struct {
	Email string `json:"email"`
}

type resultRequest struct {
	Email      string `json:"email"`
	QuestionID int    `json:"questionId"`
	Solved     bool   `json:"solved"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateRoom opens a fresh room owned by email.
func (c *Client) CreateRoom(ctx context.Context, email string) (*store.Room, error) {
	var created store.Room
	err := c.do(ctx, http.MethodPost, "/rooms", emailRequest{Email: email}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// JoinRoom enters an existing room as the second participant.
func (c *Client) JoinRoom(ctx context.Context, roomID, email string) (*store.Room, error) {
	var joined store.Room
	err := c.do(ctx, http.MethodPost, "/rooms/"+roomID+"/join", emailRequest{Email: email}, &joined)
	if err != nil {
		return nil, err
	}
	return &joined, nil
}

// GetRoom fetches the current room state.
func (c *Client) GetRoom(ctx context.Context, roomID string) (*store.Room, error) {
	var found store.Room
	err := c.do(ctx, http.MethodGet, "/rooms/"+roomID, nil, &found)
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// Question fetches the room's assigned question.
func (c *Client) Question(ctx context.Context, roomID string) (*question.Question, error) {
	var q question.Question
	err := c.do(ctx, http.MethodGet, "/rooms/"+roomID+"/question", nil, &q)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ReportResult records whether the participant solved the question.
func (c *Client) ReportResult(ctx context.Context, roomID, email string, questionID int, solved bool) error {
	return c.do(ctx, http.MethodPost, "/rooms/"+roomID+"/result",
		resultRequest{Email: email, QuestionID: questionID, Solved: solved}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.asError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// asError rebuilds a room taxonomy error from the response.
func (c *Client) asError(resp *http.Response) error {
	var body errorResponse
	json.NewDecoder(resp.Body).Decode(&body)
	if body.Error == "" {
		body.Error = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", room.ErrInvalidInput, body.Error)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", room.ErrNotFound, body.Error)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", room.ErrSelfJoin, body.Error)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", room.ErrRoomFull, body.Error)
	case http.StatusGone:
		return fmt.Errorf("%w: %s", room.ErrExpired, body.Error)
	default:
		return fmt.Errorf("server error: %s", body.Error)
	}
}
