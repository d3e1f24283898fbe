package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/strandsagents/agent-api/internal/agent"
	"github.com/strandsagents/agent-api/internal/tools"
)

// stubAgent is a canned ChatAgent for handler tests.
type stubAgent struct {
	response string
	err      error

	lastSessionID string
	lastMessage   string
}

func (s *stubAgent) Execute(_ context.Context, sessionID, message string) (*agent.Response, error) {
	s.lastSessionID = sessionID
	s.lastMessage = message
	if s.err != nil {
		return nil, s.err
	}
	return &agent.Response{FinalText: s.response}, nil
}

// stubLister is a canned ToolLister.
type stubLister struct {
	descs []tools.Descriptor
}

func (s *stubLister) Descriptors() []tools.Descriptor {
	return s.descs
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// decodeBody unmarshals the recorded response body into v.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response body: %v\nbody: %s", err, w.Body.String())
	}
}
