package log

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Writer forwards every written line to a logger at a fixed level.
type Writer struct {
	level  zapcore.Level
	logger *zap.SugaredLogger
}

// NewWriter returns a Writer logging at level.
func NewWriter(l *zap.SugaredLogger, level zapcore.Level) *Writer {
	return &Writer{level: level, logger: l}
}

func (w *Writer) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	for _, line := range strings.Split(text, "\n") {
		w.logger.Logw(w.level, line)
	}

	return len(p), nil
}

// Close flushes the underlying logger.
func (w *Writer) Close() error {
	return w.logger.Sync()
}
