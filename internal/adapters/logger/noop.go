package logger

// Noop discards all log output.
type Noop struct{}

// NewNoop creates a logger that does nothing.
func NewNoop() *Noop { return &Noop{} }

func (*Noop) Debug(string) {}

func (*Noop) Error(string) {}
