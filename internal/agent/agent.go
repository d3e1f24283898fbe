// Package agent wraps Genkit generation behind a small conversational
// surface: one Execute call per user turn, with per-session history kept in
// memory.
//
// Concurrency contract: an Agent is safe for concurrent Execute calls.
// Histories of distinct session IDs are fully isolated. Two concurrent turns
// on the same session do not corrupt state, but their histories may
// interleave in arrival order; callers that need strict turn ordering must
// serialize their own requests.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// DefaultSessionID groups turns of callers that do not name a session.
const DefaultSessionID = "default"

// fallbackResponse is returned when the model produces no text and requested
// no tools.
const fallbackResponse = "I apologize, but I couldn't generate a response. Please try rephrasing your question."

// Sentinel errors for agent operations.
var (
	// ErrEmptyMessage indicates the caller supplied no message text.
	ErrEmptyMessage = errors.New("empty message")

	// ErrExecutionFailed indicates the underlying model call failed.
	ErrExecutionFailed = errors.New("agent execution failed")
)

// Response is the result of one agent turn.
type Response struct {
	FinalText    string            // model's final text output
	ToolRequests []*ai.ToolRequest // tool requests made during the turn
}

// Config contains all required parameters for the Agent.
type Config struct {
	Genkit *genkit.Genkit
	Logger *slog.Logger

	// ModelName is the provider-qualified model reference,
	// e.g. "openai/gpt-4o-mini".
	ModelName string

	// SystemPrompt is sent with every generation.
	SystemPrompt string

	// Tools the model may invoke. Must already be registered with Genkit.
	Tools []ai.ToolRef

	// MaxTurns caps the agentic loop (model -> tool -> model). Default 5.
	MaxTurns int

	// MaxHistoryMessages bounds per-session history. Default 100.
	MaxHistoryMessages int
}

func (cfg Config) validate() error {
	if cfg.Genkit == nil {
		return errors.New("genkit instance is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.ModelName == "" {
		return errors.New("model name is required")
	}
	return nil
}

// Agent is the conversational engine behind every HTTP endpoint.
//
// All configuration is captured immutably at construction; the only mutable
// state is the session history store, which carries its own lock.
type Agent struct {
	g            *genkit.Genkit
	logger       *slog.Logger
	modelName    string
	systemPrompt string
	toolRefs     []ai.ToolRef
	toolNames    string // cached comma-separated list for logging
	maxTurns     int
	sessions     *sessionStore
}

// New creates an Agent with the given configuration.
func New(cfg Config) (*Agent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 5
	}
	maxHistory := cfg.MaxHistoryMessages
	if maxHistory <= 0 {
		maxHistory = 100
	}

	names := make([]string, len(cfg.Tools))
	for i, t := range cfg.Tools {
		names[i] = t.Name()
	}

	a := &Agent{
		g:            cfg.Genkit,
		logger:       cfg.Logger,
		modelName:    cfg.ModelName,
		systemPrompt: cfg.SystemPrompt,
		toolRefs:     cfg.Tools,
		toolNames:    strings.Join(names, ", "),
		maxTurns:     maxTurns,
		sessions:     newSessionStore(maxHistory),
	}

	a.logger.Info("agent initialized",
		"model", a.modelName,
		"tools", len(a.toolRefs),
		"maxTurns", a.maxTurns,
	)

	return a, nil
}

// Execute runs one conversational turn: the message is appended to the
// session's history, the model is invoked (possibly calling tools), and the
// exchange is stored back into the session.
//
// The call blocks until the model responds or ctx is cancelled; no timeout
// is applied here beyond what the caller's context carries.
func (a *Agent) Execute(ctx context.Context, sessionID, message string) (*Response, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	a.logger.Debug("executing agent turn",
		"session_id", sessionID,
		"tools", a.toolNames,
		"messageLength", len(message),
	)

	// History is deep-copied: Genkit's renderMessages mutates message
	// content in place, so concurrent turns must never share objects.
	messages := deepCopyMessages(a.sessions.History(sessionID))
	messages = append(messages, ai.NewUserMessage(ai.NewTextPart(message)))

	resp, err := genkit.Generate(ctx, a.g,
		ai.WithModelName(a.modelName),
		ai.WithSystem(a.systemPrompt),
		ai.WithMessages(messages...),
		ai.WithTools(a.toolRefs...),
		ai.WithMaxTurns(a.maxTurns),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" && len(resp.ToolRequests()) == 0 {
		a.logger.Warn("model returned empty response", "session_id", sessionID)
		text = fallbackResponse
	}

	a.sessions.Append(sessionID,
		ai.NewUserMessage(ai.NewTextPart(message)),
		ai.NewModelMessage(ai.NewTextPart(text)),
	)

	return &Response{
		FinalText:    text,
		ToolRequests: resp.ToolRequests(),
	}, nil
}

// deepCopyMessages creates independent copies of the given messages.
// Tool request/response payloads (type any) are shared by reference; Genkit
// only mutates the Content slice, not tool data.
func deepCopyMessages(msgs []*ai.Message) []*ai.Message {
	if msgs == nil {
		return nil
	}
	copied := make([]*ai.Message, len(msgs))
	for i, msg := range msgs {
		parts := make([]*ai.Part, len(msg.Content))
		for j, part := range msg.Content {
			p := *part
			parts[j] = &p
		}
		copied[i] = &ai.Message{
			Role:     msg.Role,
			Content:  parts,
			Metadata: shallowCopyMap(msg.Metadata),
		}
	}
	return copied
}

func shallowCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
