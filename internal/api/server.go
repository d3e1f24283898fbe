package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/strandsagents/agent-api/internal/agent"
	"github.com/strandsagents/agent-api/internal/tools"
)

// Server timeouts. ReadHeaderTimeout guards against Slowloris-style
// connections; WriteTimeout is generous because one model call backs every
// chat request.
const (
	ReadHeaderTimeout = 10 * time.Second
	ReadTimeout       = 30 * time.Second
	WriteTimeout      = 2 * time.Minute
	IdleTimeout       = 2 * time.Minute
	ShutdownTimeout   = 10 * time.Second
)

// maxBodyBytes caps request bodies at 1MB.
const maxBodyBytes = 1 << 20

// ChatAgent is the conversational engine behind the chat endpoints.
// *agent.Agent satisfies it; tests substitute stubs.
type ChatAgent interface {
	Execute(ctx context.Context, sessionID, message string) (*agent.Response, error)
}

// ToolLister reports the registered tools for the listing endpoint.
// *tools.Registry satisfies it.
type ToolLister interface {
	Descriptors() []tools.Descriptor
}

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger      *slog.Logger
	Agent       ChatAgent  // nil: chat endpoints answer 503
	Tools       ToolLister // nil: /tools answers an empty list
	Version     string     // reported by the health endpoints
	ModelName   string     // reported by /v1 endpoints when the client omits one
	CORSOrigins []string   // allowed origins; "*" allows any
}

// Server is the JSON API HTTP server.
type Server struct {
	handler http.Handler
	logger  *slog.Logger
}

// NewServer creates a server with all routes registered.
//
// A nil Agent is valid: every agent-backed endpoint then answers 503, which
// is the contract during startup or after a failed initialization.
func NewServer(cfg ServerConfig) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	hh := &healthHandler{version: version, agent: cfg.Agent, logger: logger}
	ch := &chatHandler{agent: cfg.Agent, logger: logger}
	th := &toolsHandler{tools: cfg.Tools, logger: logger}
	oh := &openAIHandler{agent: cfg.Agent, defaultModel: cfg.ModelName, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", hh.summary)
	mux.HandleFunc("GET /health", hh.summary)
	mux.HandleFunc("POST /chat", ch.chat)
	mux.HandleFunc("POST /chat/simple", ch.chatSimple)
	mux.HandleFunc("GET /tools", th.list)
	mux.HandleFunc("POST /v1/chat/completions", oh.completions)
	mux.HandleFunc("GET /v1/models", oh.models)

	handler := chain(mux,
		recoveryMiddleware(logger),
		requestIDMiddleware(),
		loggingMiddleware(logger),
		corsMiddleware(cfg.CORSOrigins),
	)

	return &Server{handler: handler, logger: logger}, nil
}

// Handler returns the server's HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run starts the HTTP server on addr and blocks until ctx is cancelled or
// the listener fails. Cancellation triggers a graceful shutdown.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
