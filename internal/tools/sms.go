package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
)

// SMSSender dispatches SMS messages on behalf of the sendSMS tool.
// Implementations must be safe for concurrent use.
type SMSSender interface {
	// Send delivers message to phone and returns a human-readable confirmation.
	Send(ctx context.Context, phone, message string) (string, error)
}

// stubSender formats a confirmation without performing any external call.
// It stands in until a real gateway (e.g. Twilio) is wired via WithSMSSender.
type stubSender struct{}

func (stubSender) Send(_ context.Context, phone, message string) (string, error) {
	return fmt.Sprintf("SMS sent to %s: %s", phone, message), nil
}

// SendSMSInput is the input schema for the sendSMS tool.
type SendSMSInput struct {
	Phone   string `json:"phone" jsonschema_description:"Phone number in E.164 format, e.g. +1234567890"`
	Message string `json:"message" jsonschema_description:"Message text to send"`
}

// SendSMS sends an SMS message via the configured sender.
func (k *Kit) SendSMS(ctx *ai.ToolContext, input SendSMSInput) (string, error) {
	if !strings.HasPrefix(input.Phone, "+") {
		return "", &ToolError{
			ErrorType: "InvalidPhoneNumber",
			Message:   fmt.Sprintf("phone number %q is not in E.164 format", input.Phone),
		}
	}
	if input.Message == "" {
		return "", &ToolError{
			ErrorType: "EmptyMessage",
			Message:   "message must not be empty",
		}
	}

	confirmation, err := k.sms.Send(ctx.Context, input.Phone, input.Message)
	if err != nil {
		return "", &ToolError{
			ErrorType: "DeliveryFailed",
			Message:   err.Error(),
		}
	}

	return confirmation, nil
}
