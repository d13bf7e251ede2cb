package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a logger writing to the console streams and, when
// logFile is not nil, to the log file.
func NewLogger(stdout, stderr io.Writer, logFile io.Writer, verbose bool) *zap.SugaredLogger {
	var cores []zapcore.Core

	if logFile != nil {
		cores = append(cores, fileCore(logFile))
	}

	cores = append(cores, stdoutCore(stdout, verbose), stderrCore(stderr, verbose))

	return zap.New(zapcore.NewTee(cores...)).Sugar()
}

// NewNop returns a logger that discards everything.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// OpenFile opens the log file for appending, creating it if needed.
// An empty path returns a nil file.
func OpenFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", path, err)
	}

	return f, nil
}

func fileCore(w io.Writer) zapcore.Core {
	all := zap.LevelEnablerFunc(func(zapcore.Level) bool { return true })

	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:     "ts",
		LevelKey:    "level",
		MessageKey:  "msg",
		EncodeTime:  zapcore.ISO8601TimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	})

	return zapcore.NewCore(encoder, zapcore.AddSync(w), all)
}

func stdoutCore(w io.Writer, verbose bool) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		if verbose {
			return l == zapcore.DebugLevel || l == zapcore.InfoLevel
		}

		return l == zapcore.InfoLevel
	})

	return zapcore.NewCore(consoleEncoder(verbose), zapcore.AddSync(w), levels)
}

func stderrCore(w io.Writer, verbose bool) zapcore.Core {
	return zapcore.NewCore(consoleEncoder(verbose), zapcore.AddSync(w), zapcore.WarnLevel)
}

// consoleEncoder prefixes messages with the level only in verbose mode.
func consoleEncoder(verbose bool) zapcore.Encoder {
	levelKey := ""
	if verbose {
		levelKey = "level"
	}

	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         levelKey,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "\t",
	})
}
