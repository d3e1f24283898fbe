// Package api provides the HTTP surface of the agent service.
//
// Endpoints:
//
//	GET  /                    health summary (status, version, agent_ready)
//	GET  /health              same as /
//	POST /chat                chat with the agent (JSON body)
//	POST /chat/simple         chat via ?message= query parameter
//	GET  /tools               list registered tools (live registry)
//	POST /v1/chat/completions OpenAI-compatible chat completions
//	GET  /v1/models           OpenAI-compatible model listing
//
// Error mapping is deterministic: a missing agent yields 503, malformed
// input 400, and downstream failures 500 with a generic body. Raw error
// text from the model provider is logged, never echoed to callers.
//
// File structure:
//   - server.go: server construction, routes, lifecycle
//   - middleware.go: recovery, request ID, logging, CORS
//   - health.go: health endpoints
//   - chat.go: chat endpoints
//   - tools.go: tool listing
//   - openai.go: OpenAI-compatible endpoints
//   - response.go: JSON response helpers
package api
