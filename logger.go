package genstream

// Logger receives diagnostics from the pipeline. Implementations must be
// safe for concurrent use.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(err error)
}

// NopLogger discards everything. It is the default wherever a Logger is
// optional.
type NopLogger struct{}

func (NopLogger) Debug(string) {}
func (NopLogger) Info(string)  {}
func (NopLogger) Warn(string)  {}
func (NopLogger) Error(error)  {}

// Interface compliance check.
var _ Logger = NopLogger{}
