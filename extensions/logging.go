package extensions

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// DiagramLogger wraps a slog.Logger with the handful of events a simcore
// caller typically wants visibility into: wiring, invalidation, and
// propagation. It does not hook into Cache or DiagramContext itself;
// call its methods from the surrounding code at the point each event
// happens.
type DiagramLogger struct {
	logger *slog.Logger
}

// NewDiagramLogger wraps handler in a DiagramLogger.
func NewDiagramLogger(handler slog.Handler) *DiagramLogger {
	return &DiagramLogger{logger: slog.New(handler)}
}

// LogConnect records a successful Connect call.
func (l *DiagramLogger) LogConnect(srcChild, srcPort, destChild, destPort int) {
	l.logger.Info("connected",
		"from", fmt.Sprintf("system[%d].out[%d]", srcChild, srcPort),
		"to", fmt.Sprintf("system[%d].in[%d]", destChild, destPort),
	)
}

// LogInvalidate records a cache ticket invalidation.
func (l *DiagramLogger) LogInvalidate(ticket int, err error) {
	if err != nil {
		l.logger.Error("invalidate failed", "ticket", ticket, "error", err)
		return
	}
	l.logger.Debug("invalidated", "ticket", ticket)
}

// LogPropagate records an output-invalidity propagation starting point.
func (l *DiagramLogger) LogPropagate(childIndex, portIndex int) {
	l.logger.Info("propagating invalid output",
		"from", fmt.Sprintf("system[%d].out[%d]", childIndex, portIndex),
	)
}

// SilentHandler is a slog.Handler that discards all log output. Useful in
// tests that exercise logging call sites without wanting the output.
type SilentHandler struct{}

func NewSilentHandler() *SilentHandler { return &SilentHandler{} }

func (h *SilentHandler) Enabled(ctx context.Context, level slog.Level) bool { return false }
func (h *SilentHandler) Handle(ctx context.Context, record slog.Record) error { return nil }
func (h *SilentHandler) WithAttrs(attrs []slog.Attr) slog.Handler             { return h }
func (h *SilentHandler) WithGroup(name string) slog.Handler                   { return h }

// HumanHandler is a slog.Handler that formats records as plain,
// line-oriented text rather than slog's default key=value pairs.
type HumanHandler struct {
	writer io.Writer
	level  slog.Level
}

// NewHumanHandler creates a human-readable handler writing to w at or
// above level.
func NewHumanHandler(w io.Writer, level slog.Level) *HumanHandler {
	return &HumanHandler{writer: w, level: level}
}

func (h *HumanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *HumanHandler) Handle(ctx context.Context, record slog.Record) error {
	if _, err := fmt.Fprintf(h.writer, "[%s] %s\n", record.Level, record.Message); err != nil {
		return err
	}
	var writeErr error
	record.Attrs(func(a slog.Attr) bool {
		if _, err := fmt.Fprintf(h.writer, "  %s: %v\n", a.Key, a.Value); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	return writeErr
}

func (h *HumanHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *HumanHandler) WithGroup(name string) slog.Handler       { return h }
