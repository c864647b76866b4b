// Package api exposes the outreach conversation as an HTTP surface:
// session creation, per-turn messages, and session close with follow-ups.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmesol/outreach-ai/internal/conversation"
	"github.com/pharmesol/outreach-ai/internal/directory"
	"github.com/pharmesol/outreach-ai/internal/followup"
	"github.com/pharmesol/outreach-ai/internal/observability/metrics"
	"github.com/pharmesol/outreach-ai/pkg/logging"
)

// Handler handles HTTP requests for conversation sessions.
type Handler struct {
	directory  *directory.Client
	sessions   *SessionStore
	service    *conversation.Service
	dispatcher *followup.Dispatcher
	logger     *logging.Logger
	metrics    *metrics.ConversationMetrics
}

// NewHandler creates a new sessions handler. The metrics argument may be nil.
func NewHandler(dir *directory.Client, sessions *SessionStore, service *conversation.Service, dispatcher *followup.Dispatcher, logger *logging.Logger, m *metrics.ConversationMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		directory:  dir,
		sessions:   sessions,
		service:    service,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    m,
	}
}

// HealthCheck handles GET /health requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateSessionRequest is the body for POST /sessions.
type CreateSessionRequest struct {
	Phone string `json:"phone"`
}

// CreateSessionResponse is the response for POST /sessions.
type CreateSessionResponse struct {
	SessionID         string `json:"session_id"`
	Phone             string `json:"phone"`
	ReturningCustomer bool   `json:"returning_customer"`
	PharmacyName      string `json:"pharmacy_name,omitempty"`
	Greeting          string `json:"greeting"`
}

// CreateSession handles POST /sessions: recognizes the caller against the
// pharmacy directory and opens a conversation with a greeting.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Phone == "" {
		http.Error(w, "phone is required", http.StatusBadRequest)
		return
	}

	records, err := h.directory.FetchAll(r.Context())
	if err != nil {
		h.logger.Error("directory fetch failed", "error", err)
		http.Error(w, "pharmacy directory unavailable", http.StatusBadGateway)
		return
	}

	pharmacy, found := directory.FindByPhone(records, req.Phone)
	if found {
		h.metrics.ObserveDirectoryLookup("match")
	} else {
		h.metrics.ObserveDirectoryLookup("miss")
	}

	state := conversation.NewState(req.Phone, pharmacy)

	greeting, err := h.service.Greeting(state)
	if err != nil {
		h.logger.Error("greeting failed", "error", err)
		http.Error(w, "failed to open session", http.StatusInternalServerError)
		return
	}
	state.AppendBot(greeting)

	session := h.sessions.Create(state)
	h.logger.Info("session opened",
		"session_id", session.ID,
		"phone", req.Phone,
		"returning_customer", state.IsReturningCustomer(),
	)

	resp := CreateSessionResponse{
		SessionID:         session.ID,
		Phone:             req.Phone,
		ReturningCustomer: state.IsReturningCustomer(),
		Greeting:          greeting,
	}
	if pharmacy != nil {
		resp.PharmacyName = pharmacy.Name
	}
	writeJSON(w, http.StatusCreated, resp)
}

// MessageRequest is the body for POST /sessions/{sessionID}/messages.
type MessageRequest struct {
	Message string `json:"message"`
}

// MessageResponse is the response for POST /sessions/{sessionID}/messages.
type MessageResponse struct {
	Reply string `json:"reply"`
	Stage string `json:"stage"`
}

// PostMessage handles POST /sessions/{sessionID}/messages: one conversation
// turn.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	session.Lock()
	reply, err := h.service.ProcessMessage(r.Context(), session.State, req.Message)
	stage := session.State.Stage
	session.Unlock()
	if err != nil {
		h.logger.Error("turn failed", "error", err, "session_id", session.ID)
		http.Error(w, "failed to process message", http.StatusInternalServerError)
		return
	}
	h.sessions.Touch(session.ID)

	writeJSON(w, http.StatusOK, MessageResponse{
		Reply: reply,
		Stage: stage,
	})
}

// CloseSessionResponse is the response for POST /sessions/{sessionID}/close.
type CloseSessionResponse struct {
	Actions  []string `json:"actions"`
	Messages int      `json:"messages"`
}

// CloseSession handles POST /sessions/{sessionID}/close: runs the follow-up
// actions for the final state and discards the session.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	session.Lock()
	defer session.Unlock()

	executed, err := h.dispatcher.Run(r.Context(), session.State)
	if err != nil {
		h.logger.Error("follow-up dispatch failed", "error", err, "session_id", session.ID)
		http.Error(w, "failed to run follow-up actions", http.StatusInternalServerError)
		return
	}

	h.sessions.Delete(session.ID)
	h.logger.Info("session closed",
		"session_id", session.ID,
		"actions", len(executed),
		"messages", len(session.State.Messages),
	)

	if executed == nil {
		executed = []string{}
	}
	writeJSON(w, http.StatusOK, CloseSessionResponse{
		Actions:  executed,
		Messages: len(session.State.Messages),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
