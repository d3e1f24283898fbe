package api

import (
	"log/slog"
	"net/http"

	"github.com/strandsagents/agent-api/internal/tools"
)

type toolsHandler struct {
	tools  ToolLister
	logger *slog.Logger
}

// list handles GET /tools. The response is read from the live tool registry
// on every call, so it always matches what the agent can actually invoke.
func (h *toolsHandler) list(w http.ResponseWriter, _ *http.Request) {
	descs := []tools.Descriptor{}
	if h.tools != nil {
		descs = h.tools.Descriptors()
	}
	writeJSON(w, http.StatusOK, descs, h.logger)
}
