// Package tools provides tool registration and management for the agent.
//
// The Kit bundles the callable capabilities the agent may invoke during
// response generation:
//
//   - calculator:  evaluate arithmetic expressions
//   - currentTime: current date and time, optional timezone
//   - sendSMS:     SMS dispatch (stub sender by default)
//
// Tools are registered into Genkit via genkit.DefineTool; the Registry then
// answers "what tools exist" by asking Genkit directly. There is no
// hand-maintained tool list anywhere: adding a tool to the Kit makes it
// appear in both the agent's tool set and the /tools listing.
package tools
