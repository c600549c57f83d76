package atoll

import (
	"context"
	"log"
	"log/slog"
)

// Logger is logger type expected to be passed in options.
type Logger interface {
	Report(event LogEvent, sess *Session)
}

// SlogLogger reports session events through a structured log/slog logger.
type SlogLogger struct {
	logger *slog.Logger
	ctx    context.Context
}

func NewSlogLogger(logger *slog.Logger) SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogLogger{
		logger: logger,
		ctx:    context.Background(),
	}
}

func (l *SlogLogger) WithContext(ctx context.Context) SlogLogger {
	return SlogLogger{
		logger: l.logger,
		ctx:    ctx,
	}
}

func (l SlogLogger) Report(event LogEvent, sess *Session) {
	attrs := event.LogAttrs()

	if sess != nil {
		keys := make(map[string]bool, len(attrs))
		for _, a := range attrs {
			keys[a.Key] = true
		}

		if !keys["session_state"] {
			attrs = append(attrs, slog.String("session_state", sess.stateToString()))
		}
		if sess.opts.IOWorkers > 0 && !keys["io_workers"] {
			attrs = append(attrs, slog.Int("io_workers", sess.opts.IOWorkers))
		}
		if sess.Keyspace() != "" && !keys["keyspace"] {
			attrs = append(attrs, slog.String("keyspace", sess.Keyspace()))
		}
	}

	l.logger.LogAttrs(l.ctx, event.LogLevel(), event.Message(), attrs...)
}

// SimpleLogger reports session events through the standard log package.
type SimpleLogger struct{}

func (l SimpleLogger) Report(event LogEvent, sess *Session) {
	log.Printf("[%s] %s [event=%s]", event.LogLevel(), event.Message(), event.EventName())

	for _, attr := range event.LogAttrs() {
		if attr.Key == "error" {
			log.Printf("  Error: %v", attr.Value.Any())
		}
	}
}
