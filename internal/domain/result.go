package domain

// Result is the uniform value returned by every public controller operation.
// Failures are always expressed here; nothing escapes the controller boundary
// as a panic or raw error.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// OK builds a successful result.
func OK(message string, data map[string]any) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Fail builds a failed result with an error detail.
func Fail(message, detail string) Result {
	return Result{Success: false, Message: message, Error: detail}
}
