package logging

import (
	"context"

	"github.com/unveels/tryon/internal/ports"
)

// NoOpLogger discards all log entries.
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(context.Context, string, ...interface{}) {}
func (n *NoOpLogger) Info(context.Context, string, ...interface{})  {}
func (n *NoOpLogger) Warn(context.Context, string, ...interface{})  {}
func (n *NoOpLogger) Error(context.Context, string, ...interface{}) {}

// With implements ports.Logger.
func (n *NoOpLogger) With(...interface{}) ports.Logger { return n }

// NewNoOpLogger returns a ports.Logger that discards all log entries.
func NewNoOpLogger() ports.Logger {
	return &NoOpLogger{}
}

// OrNoOp returns logger, or a discarding logger when it is nil.
func OrNoOp(logger ports.Logger) ports.Logger {
	if logger == nil {
		return &NoOpLogger{}
	}
	return logger
}
