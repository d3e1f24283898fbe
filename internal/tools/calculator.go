package tools

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/firebase/genkit/go/ai"
)

// CalculateInput is the input schema for the calculator tool.
type CalculateInput struct {
	Expression string `json:"expression" jsonschema_description:"Mathematical expression to evaluate, e.g. (2+3)*4"`
}

// Calculate evaluates a mathematical expression and returns the result as a
// string. Invalid expressions produce a ToolError so the model can correct
// its arguments instead of giving up.
func (k *Kit) Calculate(_ *ai.ToolContext, input CalculateInput) (string, error) {
	if input.Expression == "" {
		return "", &ToolError{
			ErrorType: "InvalidExpression",
			Message:   "expression must not be empty",
		}
	}

	program, err := expr.Compile(input.Expression)
	if err != nil {
		return "", &ToolError{
			ErrorType: "InvalidExpression",
			Message:   fmt.Sprintf("cannot parse %q: %v", input.Expression, err),
		}
	}

	result, err := expr.Run(program, nil)
	if err != nil {
		return "", &ToolError{
			ErrorType: "EvaluationFailed",
			Message:   fmt.Sprintf("evaluating %q: %v", input.Expression, err),
		}
	}

	return fmt.Sprintf("%v", result), nil
}
