package remote

import (
	"context"
	"io"
	"log/slog"
)

// CallEvent records metadata about a single remote store request.
type CallEvent struct {
	Op         string
	Method     string
	Path       string
	RequestID  string
	StatusCode int
	LatencyMs  int64
	Err        error
}

// Observer receives events about remote calls for logging.
type Observer interface {
	OnCallComplete(ctx context.Context, event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(context.Context, CallEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver returns an Observer that writes call events through logger.
// A nil logger yields a NoopObserver.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: logger}
}

// NewWriterObserver logs call events as slog text lines to w.
func NewWriterObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *logObserver) OnCallComplete(ctx context.Context, event CallEvent) {
	attrs := []any{
		"op", event.Op,
		"method", event.Method,
		"path", event.Path,
		"request_id", event.RequestID,
		"status", event.StatusCode,
		"latency_ms", event.LatencyMs,
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "remote_call", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "remote_call", attrs...)
}
