// Package app wires the application together: Genkit initialization, tool
// registration and agent construction happen here, once, at startup. The
// resulting App is handed to the HTTP layer; there is no process-wide
// mutable state.
package app

import (
	"log/slog"

	"github.com/firebase/genkit/go/genkit"

	"github.com/strandsagents/agent-api/internal/agent"
	"github.com/strandsagents/agent-api/internal/config"
	"github.com/strandsagents/agent-api/internal/tools"
)

// App holds the initialized application dependencies.
type App struct {
	Config   *config.Config
	Genkit   *genkit.Genkit
	Agent    *agent.Agent
	Registry *tools.Registry

	logger      *slog.Logger
	otelCleanup func()
}

// Close releases application resources. Safe to call on a partially
// initialized App.
func (a *App) Close() error {
	if a.otelCleanup != nil {
		a.otelCleanup()
	}
	return nil
}
