package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/core/tracing"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/strandsagents/agent-api/internal/agent"
	"github.com/strandsagents/agent-api/internal/config"
	"github.com/strandsagents/agent-api/internal/tools"
)

// shutdownFlushTimeout bounds the final span flush on Close.
const shutdownFlushTimeout = 5 * time.Second

// Setup creates and initializes the application.
// Returns an App with embedded cleanup; call Close() to release.
//
// A missing provider API key logs a warning but does not block startup
// (the first model call fails instead); a failed Genkit or agent
// construction does fail startup.
func Setup(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, retErr error) {
	a := &App{Config: cfg, logger: logger}

	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	if !cfg.HasAPIKey() {
		logger.Warn("provider API key not set, agent calls will fail",
			"env_var", cfg.APIKeyEnvVar())
	}

	a.otelCleanup = provideTracing(ctx, cfg, logger)

	g, err := provideGenkit(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	kit, err := tools.NewKit(tools.WithLogger(logger.With("component", "tools")))
	if err != nil {
		return nil, fmt.Errorf("creating tool kit: %w", err)
	}
	if err := kit.Register(g); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}
	a.Registry = tools.NewRegistry(g)

	ag, err := agent.New(agent.Config{
		Genkit:             g,
		Logger:             logger.With("component", "agent"),
		ModelName:          cfg.ProviderModel(),
		SystemPrompt:       cfg.SystemPrompt,
		Tools:              a.Registry.All(),
		MaxTurns:           cfg.MaxTurns,
		MaxHistoryMessages: cfg.MaxHistoryMessages,
	})
	if err != nil {
		return nil, fmt.Errorf("creating agent: %w", err)
	}
	a.Agent = ag

	return a, nil
}

// provideGenkit initializes Genkit with the configured model provider
// plugin. The plugins read their credentials (OPENAI_API_KEY,
// GEMINI_API_KEY) from the environment themselves.
func provideGenkit(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*genkit.Genkit, error) {
	var g *genkit.Genkit

	switch cfg.Provider {
	case config.ProviderGoogleAI:
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with googleai provider")
		}
	default: // "openai"
		g = genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with openai provider")
		}
	}

	logger.Info("initialized genkit", "provider", cfg.Provider, "model", cfg.ModelName)
	return g, nil
}

// provideTracing registers an OTLP HTTP span exporter with Genkit's tracer
// provider when an endpoint is configured. Returns the cleanup function;
// tracing failures degrade to a warning, never a startup error.
func provideTracing(ctx context.Context, cfg *config.Config, logger *slog.Logger) func() {
	if cfg.OTLPEndpoint == "" {
		return func() {}
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(), // local collector, no TLS
	)
	if err != nil {
		logger.Warn("creating OTLP exporter, tracing disabled", "error", err)
		return func() {}
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter)
	tracing.TracerProvider().RegisterSpanProcessor(processor)

	logger.Debug("trace export enabled", "endpoint", cfg.OTLPEndpoint)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
		defer cancel()
		if err := processor.Shutdown(shutdownCtx); err != nil {
			logger.Warn("flushing spans on shutdown", "error", err)
		}
	}
}
