package cascade

import "time"

// LogEvent describes one engine operation or matcher evaluation.
type LogEvent struct {
	Op       string
	Mode     Mode
	Before   int
	After    int
	Dropped  int
	Engine   string
	Expr     string
	Duration time.Duration
	Err      error
}

// Logger records engine events.
type Logger interface {
	LogEvent(LogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(LogEvent)

// LogEvent implements Logger.
func (f LoggerFunc) LogEvent(event LogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogEvent(LogEvent) {}

// WithLogger attaches a logger to the engine.
func WithLogger(logger Logger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}
