// Package tool exposes the calculator and the unit converter as tools with
// JSON arguments, suitable for declaring to a language model and dispatching
// its function calls.
package tool

import (
	"context"
	"fmt"
)

// Tool is a named operation called with JSON-encoded arguments.
type Tool interface {
	// Name is the unique name used to route calls.
	Name() string
	// Description is a short description shown to models.
	Description() string
	// Parameters is a JSON schema describing the arguments.
	Parameters() map[string]any
	// Call invokes the tool. Failures of the requested operation, like an
	// invalid expression, are reported in the output text. Call returns an
	// error only for malformed arguments or a canceled context.
	Call(ctx context.Context, args []byte) (string, error)
}

// Error codes used by ToolError.
const (
	// ValidationError means the arguments did not match the tool's schema.
	ValidationError = "VALIDATION_ERROR"
	// ExecutionError means the tool failed while running.
	ExecutionError = "EXECUTION_ERROR"
	// NotFoundError means no tool has the requested name.
	NotFoundError = "NOT_FOUND"
)

// ToolError is an error from a tool call.
type ToolError struct {
	// Tool is the name of the tool.
	Tool string
	// Message describes the failure.
	Message string
	// Code is one of the error code constants.
	Code string
	// Details is the underlying error, if any.
	Details error
}

// NewToolError creates a ToolError.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}

func (err *ToolError) Error() string {
	return fmt.Sprintf("tool error [%s] in %s: %s", err.Code, err.Tool, err.Message)
}

func (err *ToolError) Unwrap() error {
	return err.Details
}

// Declaration is the JSON form of a tool offered to a model.
type Declaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Declare returns the declaration of t.
func Declare(t Tool) Declaration {
	return Declaration{Name: t.Name(), Description: t.Description(), Parameters: t.Parameters()}
}

// object builds an object schema.
func object(required []string, props map[string]any) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func prop(typ, desc string) map[string]any {
	return map[string]any{"type": typ, "description": desc}
}
