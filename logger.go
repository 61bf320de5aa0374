package vtcore

import "github.com/rs/zerolog"

// Logger is the ambient logging seam the console funnels unhandled-sequence
// diagnostics and report-queue overflow warnings through. The core never
// requires a concrete logger: NopLogger is the default, so embedders that
// don't care about diagnostics pay nothing for them.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// NopLogger discards everything. It is the zero-value-safe default logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Warnf(string, ...any)  {}

// ZerologAdapter adapts a zerolog.Logger to the Logger interface, for
// embedders that want structured diagnostics out of the box.
type ZerologAdapter struct {
	Log zerolog.Logger
}

func (z ZerologAdapter) Debugf(format string, args ...any) {
	z.Log.Debug().Msgf(format, args...)
}

func (z ZerologAdapter) Warnf(format string, args ...any) {
	z.Log.Warn().Msgf(format, args...)
}

var _ Logger = NopLogger{}
var _ Logger = ZerologAdapter{}
