package tools

// Descriptor describes a registered tool for listing purposes.
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToolError is a structured error format for model consumption.
// Returning a typed error lets the model understand what went wrong and
// retry with corrected arguments.
type ToolError struct {
	ErrorType string `json:"error_type"` // e.g. "InvalidExpression", "UnknownTimezone"
	Message   string `json:"message"`
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e == nil {
		return "<nil ToolError>"
	}
	switch {
	case e.ErrorType == "" && e.Message == "":
		return "<empty ToolError>"
	case e.ErrorType == "":
		return e.Message
	case e.Message == "":
		return e.ErrorType
	}
	return e.ErrorType + ": " + e.Message
}
