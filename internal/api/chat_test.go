package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/strandsagents/agent-api/internal/agent"
)

func chatBody(t *testing.T, req ChatRequest) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	return bytes.NewReader(b)
}

func TestChat_NilAgent(t *testing.T) {
	h := &chatHandler{agent: nil, logger: testLogger()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat", chatBody(t, ChatRequest{Message: "hi"}))

	h.chat(w, r)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("chat() status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	if resp.Error != errAgentUnavailable {
		t.Errorf("error code = %q, want %q", resp.Error, errAgentUnavailable)
	}
}

func TestChat_DefaultSession(t *testing.T) {
	stub := &stubAgent{response: "hello there"}
	h := &chatHandler{agent: stub, logger: testLogger()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat", chatBody(t, ChatRequest{Message: "hi"}))

	h.chat(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("chat() status = %d, want %d\nbody: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp ChatResponse
	decodeBody(t, w, &resp)

	if resp.Response != "hello there" {
		t.Errorf("response = %q, want %q", resp.Response, "hello there")
	}
	if resp.SessionID != agent.DefaultSessionID {
		t.Errorf("session_id = %q, want %q", resp.SessionID, agent.DefaultSessionID)
	}
	if stub.lastSessionID != agent.DefaultSessionID {
		t.Errorf("agent called with session %q, want %q", stub.lastSessionID, agent.DefaultSessionID)
	}
}

func TestChat_SessionEchoed(t *testing.T) {
	stub := &stubAgent{response: "ok"}
	h := &chatHandler{agent: stub, logger: testLogger()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat",
		chatBody(t, ChatRequest{Message: "hi", SessionID: "user-42"}))

	h.chat(w, r)

	var resp ChatResponse
	decodeBody(t, w, &resp)

	if resp.SessionID != "user-42" {
		t.Errorf("session_id = %q, want %q", resp.SessionID, "user-42")
	}
	if stub.lastSessionID != "user-42" {
		t.Errorf("agent called with session %q, want %q", stub.lastSessionID, "user-42")
	}
}

func TestChat_InvalidBody(t *testing.T) {
	h := &chatHandler{agent: &stubAgent{}, logger: testLogger()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))

	h.chat(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("chat() status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	h := &chatHandler{agent: &stubAgent{err: agent.ErrEmptyMessage}, logger: testLogger()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat", chatBody(t, ChatRequest{}))

	h.chat(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("chat() status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestChat_DownstreamErrorNotLeaked(t *testing.T) {
	secret := "api key sk-12345 rejected by provider"
	h := &chatHandler{agent: &stubAgent{err: errors.New(secret)}, logger: testLogger()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat", chatBody(t, ChatRequest{Message: "hi"}))

	h.chat(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("chat() status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	if resp.Error != errAgentError {
		t.Errorf("error code = %q, want %q", resp.Error, errAgentError)
	}
	if strings.Contains(w.Body.String(), "sk-12345") {
		t.Errorf("downstream error detail leaked to caller: %s", w.Body.String())
	}
}

func TestChatSimple_QueryParameter(t *testing.T) {
	stub := &stubAgent{response: "42"}
	h := &chatHandler{agent: stub, logger: testLogger()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat/simple?message=what+is+6*7", nil)

	h.chatSimple(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("chatSimple() status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]string
	decodeBody(t, w, &resp)

	if resp["response"] != "42" {
		t.Errorf("response = %q, want %q", resp["response"], "42")
	}
	if _, ok := resp["session_id"]; ok {
		t.Error("simple endpoint must not return session_id")
	}
	if stub.lastMessage != "what is 6*7" {
		t.Errorf("agent called with message %q, want %q", stub.lastMessage, "what is 6*7")
	}
}

func TestChatSimple_NilAgent(t *testing.T) {
	h := &chatHandler{agent: nil, logger: testLogger()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat/simple?message=hi", nil)

	h.chatSimple(w, r)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("chatSimple() status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
