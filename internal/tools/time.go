package tools

import (
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
)

// timeFormat matches what the model receives, e.g. "2026-08-25 14:03:07 (Tuesday)".
const timeFormat = "2006-01-02 15:04:05 (Monday)"

// CurrentTimeInput is the input schema for the currentTime tool.
type CurrentTimeInput struct {
	Timezone string `json:"timezone,omitempty" jsonschema_description:"Optional IANA timezone name, e.g. Europe/Zurich. Defaults to server local time."`
}

// CurrentTime returns the current date and time, optionally converted to the
// requested timezone.
func (k *Kit) CurrentTime(_ *ai.ToolContext, input CurrentTimeInput) (string, error) {
	now := k.now()

	if input.Timezone != "" {
		loc, err := time.LoadLocation(input.Timezone)
		if err != nil {
			return "", &ToolError{
				ErrorType: "UnknownTimezone",
				Message:   fmt.Sprintf("unknown timezone %q", input.Timezone),
			}
		}
		now = now.In(loc)
	}

	return now.Format(timeFormat), nil
}
