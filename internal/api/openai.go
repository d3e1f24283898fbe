package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// compatSessionID is the fixed conversational session shared by every
// OpenAI-compatible call, regardless of caller. Clients that need isolated
// conversations should use POST /chat with their own session_id.
const compatSessionID = "openai-compat"

// defaultModelID is the synthetic model identifier advertised by /v1/models
// and echoed when a completion request omits the model field.
const defaultModelID = "strands-agent"

// ChatCompletionRequest is the OpenAI-compatible request body.
// Temperature, MaxTokens and Stream are accepted for client compatibility;
// generation parameters are fixed server-side and streaming is not offered.
type ChatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []CompletionMessage `json:"messages"`
	Temperature *float64            `json:"temperature,omitempty"`
	MaxTokens   *int                `json:"max_tokens,omitempty"`
	Stream      bool                `json:"stream,omitempty"`
}

// CompletionMessage is a single message in the OpenAI messages array.
type CompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse is the non-streaming OpenAI completion response.
type ChatCompletionResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
	Usage   CompletionUsage    `json:"usage"`
}

// CompletionChoice is one choice in a completion response.
type CompletionChoice struct {
	Index        int               `json:"index"`
	Message      CompletionMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

// CompletionUsage holds token usage counts. Counts are computed by
// whitespace splitting, not a tokenizer. The numbers are an approximation
// for client bookkeeping, not a billing figure.
type CompletionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Model is one entry of the OpenAI models listing.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the OpenAI models listing envelope.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// openAIError is the OpenAI-style error envelope used by the /v1 endpoints.
type openAIError struct {
	Error openAIErrorDetail `json:"error"`
}

type openAIErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

type openAIHandler struct {
	agent        ChatAgent
	defaultModel string
	logger       *slog.Logger
}

// completions handles POST /v1/chat/completions.
//
// The last message with role "user" is forwarded to the agent under the
// shared compat session; the agent's text comes back as a single choice
// with finish_reason "stop".
func (h *openAIHandler) completions(w http.ResponseWriter, r *http.Request) {
	if h.agent == nil {
		h.writeError(w, http.StatusServiceUnavailable,
			"server_error", errAgentUnavailable, "Agent not initialized")
		return
	}

	var req ChatCompletionRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest,
			"invalid_request_error", errInvalidRequest, "invalid request body")
		return
	}

	userMessage, ok := lastUserMessage(req.Messages)
	if !ok {
		h.writeError(w, http.StatusBadRequest,
			"invalid_request_error", "no_user_message",
			"messages must contain at least one message with role \"user\"")
		return
	}

	resp, err := h.agent.Execute(r.Context(), compatSessionID, userMessage)
	if err != nil {
		h.logger.Error("agent call failed", "error", err, "endpoint", "/v1/chat/completions")
		h.writeError(w, http.StatusInternalServerError,
			"server_error", errAgentError, "agent failed to produce a response")
		return
	}

	model := req.Model
	if model == "" {
		model = h.defaultModel
	}
	if model == "" {
		model = defaultModelID
	}

	promptTokens := countTokens(userMessage)
	completionTokens := countTokens(resp.FinalText)

	writeJSON(w, http.StatusOK, ChatCompletionResponse{
		ID:      "chatcmpl-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []CompletionChoice{{
			Index: 0,
			Message: CompletionMessage{
				Role:    "assistant",
				Content: resp.FinalText,
			},
			FinishReason: "stop",
		}},
		Usage: CompletionUsage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	}, h.logger)
}

// models handles GET /v1/models: a single synthetic entry with a fresh
// creation timestamp per call.
func (h *openAIHandler) models(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ModelList{
		Object: "list",
		Data: []Model{{
			ID:      defaultModelID,
			Object:  "model",
			Created: time.Now().Unix(),
			OwnedBy: "strands-agents",
		}},
	}, h.logger)
}

func (h *openAIHandler) writeError(w http.ResponseWriter, status int, typ, code, message string) {
	writeJSON(w, status, openAIError{Error: openAIErrorDetail{
		Message: message,
		Type:    typ,
		Code:    code,
	}}, h.logger)
}

// lastUserMessage returns the content of the last message with role "user".
func lastUserMessage(messages []CompletionMessage) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content, true
		}
	}
	return "", false
}

// countTokens approximates a token count by splitting on whitespace.
func countTokens(s string) int {
	return len(strings.Fields(s))
}
