package api

import (
	"log/slog"
	"net/http"
)

// HealthResponse is the fixed-shape body of GET / and GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	AgentReady bool   `json:"agent_ready"`
}

type healthHandler struct {
	version string
	agent   ChatAgent
	logger  *slog.Logger
}

// summary serves both GET / and GET /health. The body is identical on every
// call; agent_ready reports whether an agent handle was wired at startup.
func (h *healthHandler) summary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "healthy",
		Version:    h.version,
		AgentReady: h.agent != nil,
	}, h.logger)
}
