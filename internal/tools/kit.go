package tools

import (
	"fmt"
	"time"

	"github.com/firebase/genkit/go/genkit"
)

// Logger defines the logging interface the Kit needs (optional).
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Kit provides the collection of tools registered for the agent.
type Kit struct {
	sms    SMSSender
	now    func() time.Time
	logger Logger
}

// Option is a functional option for configuring optional Kit features.
type Option func(*Kit) error

// WithLogger sets an optional logger.
func WithLogger(logger Logger) Option {
	return func(k *Kit) error {
		k.logger = logger
		return nil
	}
}

// WithSMSSender replaces the default stub sender, e.g. with a Twilio-backed
// implementation.
func WithSMSSender(s SMSSender) Option {
	return func(k *Kit) error {
		if s == nil {
			return fmt.Errorf("sms sender must not be nil")
		}
		k.sms = s
		return nil
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(k *Kit) error {
		if now == nil {
			return fmt.Errorf("clock must not be nil")
		}
		k.now = now
		return nil
	}
}

// NewKit creates a new tool kit.
func NewKit(opts ...Option) (*Kit, error) {
	kit := &Kit{
		sms: stubSender{},
		now: time.Now,
	}

	for _, opt := range opts {
		if err := opt(kit); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	return kit, nil
}

// Register registers all tools from the Kit into Genkit.
// The agent resolves its tool set through the Registry afterwards.
func (k *Kit) Register(g *genkit.Genkit) error {
	if g == nil {
		return fmt.Errorf("genkit instance is required")
	}

	genkit.DefineTool(g, "calculator",
		"Perform mathematical calculations and evaluate expressions. "+
			"Supports arithmetic operators (+, -, *, /, %, **), comparisons and "+
			"parentheses. Example: (2+3)*4.",
		k.Calculate)

	genkit.DefineTool(g, "currentTime",
		"Get the current date and time. "+
			"Optionally accepts an IANA timezone name (e.g. \"Europe/Zurich\"); "+
			"defaults to the server's local time.",
		k.CurrentTime)

	genkit.DefineTool(g, "sendSMS",
		"Send an SMS message to a phone number in E.164 format "+
			"(e.g. +1234567890). Returns a delivery confirmation.",
		k.SendSMS)

	k.log("registered tool kit", "tools", 3)
	return nil
}

func (k *Kit) log(msg string, args ...any) {
	if k.logger != nil {
		k.logger.Info(msg, args...)
	}
}
