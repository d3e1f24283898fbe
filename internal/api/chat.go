package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/strandsagents/agent-api/internal/agent"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the body of a successful POST /chat.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type chatHandler struct {
	agent  ChatAgent
	logger *slog.Logger
}

// chat handles POST /chat: one blocking agent call per request.
func (h *chatHandler) chat(w http.ResponseWriter, r *http.Request) {
	if h.agent == nil {
		writeError(w, http.StatusServiceUnavailable,
			errAgentUnavailable, "Agent not initialized", h.logger)
		return
	}

	var req ChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest,
			errInvalidRequest, "invalid request body", h.logger)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = agent.DefaultSessionID
	}

	resp, err := h.agent.Execute(r.Context(), sessionID, req.Message)
	if err != nil {
		h.writeAgentError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Response:  resp.FinalText,
		SessionID: sessionID,
	}, h.logger)
}

// chatSimple handles POST /chat/simple?message=...; no session handling,
// every call lands in the default session.
func (h *chatHandler) chatSimple(w http.ResponseWriter, r *http.Request) {
	if h.agent == nil {
		writeError(w, http.StatusServiceUnavailable,
			errAgentUnavailable, "Agent not initialized", h.logger)
		return
	}

	message := r.URL.Query().Get("message")

	resp, err := h.agent.Execute(r.Context(), agent.DefaultSessionID, message)
	if err != nil {
		h.writeAgentError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": resp.FinalText}, h.logger)
}

// writeAgentError maps agent errors onto the closed error taxonomy.
// Downstream failure detail is logged, never echoed to the caller.
func (h *chatHandler) writeAgentError(w http.ResponseWriter, err error) {
	if errors.Is(err, agent.ErrEmptyMessage) {
		writeError(w, http.StatusBadRequest,
			errInvalidRequest, "message is required", h.logger)
		return
	}

	h.logger.Error("agent call failed", "error", err)
	writeError(w, http.StatusInternalServerError,
		errAgentError, "agent failed to produce a response", h.logger)
}
