// Package server exposes the room REST surface and the websocket endpoint.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/ktauqeer04/mock-interview/internal/hub"
	"github.com/ktauqeer04/mock-interview/internal/protocol"
	"github.com/ktauqeer04/mock-interview/internal/question"
	"github.com/ktauqeer04/mock-interview/internal/room"
)

// Configure the websocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  64 * 1024, // 64 KB
	WriteBufferSize: 64 * 1024, // 64 KB

	// The CLI client carries no browser origin, and rooms are only reachable
	// with an unguessable id.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server holds the handler dependencies.
type Server struct {
	manager *room.Manager
	bank    *question.Bank
	hub     *hub.Hub
	logger  *slog.Logger
}

// New creates the HTTP surface over the room manager and hub.
func New(manager *room.Manager, bank *question.Bank, h *hub.Hub, logger *slog.Logger) *Server {
	return &Server{manager: manager, bank: bank, hub: h, logger: logger}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebSocket)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rooms", s.handleCreateRoom).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomId}", s.handleGetRoom).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/join", s.handleJoinRoom).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomId}/question", s.handleGetQuestion).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/result", s.handleReportResult).Methods(http.MethodPost)
	return r
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

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := s.manager.CreateRoom(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	found, err := s.manager.GetRoom(r.Context(), roomID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	joined, err := s.manager.JoinRoom(r.Context(), roomID, req.Email)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, joined)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	found, err := s.manager.GetRoom(r.Context(), roomID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	q, ok := s.bank.ByID(found.QuestionID)
	if !ok {
		// No question until the second participant joins.
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "question not assigned yet"})
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleReportResult(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.manager.RecordResult(r.Context(), roomID, req.Email, req.QuestionID, req.Solved); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleWebSocket upgrades the connection and hands it to the hub.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &hub.Client{
		Hub:  s.hub,
		Conn: conn,
		Send: make(chan *protocol.Message, 256),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

// writeError maps the room error taxonomy onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, room.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, room.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, room.ErrSelfJoin):
		status = http.StatusForbidden
	case errors.Is(err, room.ErrRoomFull):
		status = http.StatusConflict
	case errors.Is(err, room.ErrExpired):
		status = http.StatusGone
	default:
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
