// Package log wires structured logging for tabreg binaries. It installs a
// JSON slog handler whose records carry the cockroachdb/errors stack trace
// of any error attribute, and a zerolog sink for library warnings.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
)

const (
	// ErrAttrKey is the attribute key for error values.
	ErrAttrKey = "error"
	// StacktraceAttrKey carries the stack trace extracted from an error.
	StacktraceAttrKey = "stacktrace"
)

// Setup installs the default slog logger at the given level, emitting JSON
// to stdout with stack traces attached to error attributes.
func Setup(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	slog.SetDefault(slog.New(wrapWithStacktrace(handler)))
}

// ToLevel converts a level name to a slog.Level. Unknown names panic:
// the level comes from a flag and a typo should stop the run immediately.
func ToLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level: %s", level))
	}
}

// Err is a helper to pass an error to slog as a structured attribute.
func Err(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// stacktraceHandler decorates records that carry an error attribute with the
// stack trace recorded by cockroachdb/errors.
type stacktraceHandler struct {
	handler slog.Handler
}

func wrapWithStacktrace(handler slog.Handler) slog.Handler {
	return &stacktraceHandler{handler: handler}
}

func (h *stacktraceHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.handler.Enabled(ctx, l)
}

func (h *stacktraceHandler) Handle(ctx context.Context, r slog.Record) error {
	var stacktrace string
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			if err, ok := attr.Value.Any().(error); ok {
				stacktrace = extractStacktrace(err)
			}
			return false
		}
		return true
	})
	if stacktrace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, stacktrace))
	}
	return h.handler.Handle(ctx, r)
}

func (h *stacktraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &stacktraceHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *stacktraceHandler) WithGroup(g string) slog.Handler {
	return &stacktraceHandler{handler: h.handler.WithGroup(g)}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
