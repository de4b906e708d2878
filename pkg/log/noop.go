package log

var (
	_ Logger = NoopLogger{}
	_ Logger = (*ZerologAdapter)(nil)
	_ Logger = (*SlogAdapter)(nil)
)

// NoopLogger discards everything. It is the default when a caller of
// pkg/fairframe passes no logger.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (NoopLogger) Debug(string, ...Field) {}
func (NoopLogger) Info(string, ...Field)  {}
func (NoopLogger) Warn(string, ...Field)  {}
func (NoopLogger) Error(string, ...Field) {}
