package domain

import "encoding/json"

// Function names known to the local invoker.
const (
	FunctionDelay    = "delay"
	FunctionCounter  = "counter"
	FunctionDivider  = "divider"
	FunctionMD5      = "md5"
	FunctionRepeater = "repeater"
)

// Invocation is a single call of a named function with a JSON-compatible input.
type Invocation struct {
	Function string
	Input    any

	// Limit caps how many elements of a streaming output are consumed (0 = all).
	Limit int
}

// InvocationError is a failure raised by the function itself, as opposed to
// a technical failure to invoke it.
type InvocationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// InvocationResult is the observed outcome of one invocation.
type InvocationResult struct {
	Function  string           `json:"function"`
	Output    json.RawMessage  `json:"output,omitempty"`
	LatencyMS int64            `json:"latency_ms"`
	Error     *InvocationError `json:"error,omitempty"`
}

// NewInvocationError maps a function failure to its serializable form.
func NewInvocationError(err error) *InvocationError {
	if err == nil {
		return nil
	}
	return &InvocationError{Kind: KindOf(err), Message: err.Error()}
}
