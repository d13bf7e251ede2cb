package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Levels(t *testing.T) {
	cases := []struct {
		name           string
		verbose        bool
		expectedStdout string
		expectedStderr string
	}{
		{
			name:           "quiet",
			expectedStdout: "info msg\n",
			expectedStderr: "warn msg\nerror msg\n",
		},
		{
			name:           "verbose",
			verbose:        true,
			expectedStdout: "DEBUG\tdebug msg\nINFO\tinfo msg\n",
			expectedStderr: "WARN\twarn msg\nERROR\terror msg\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			logger := NewLogger(&stdout, &stderr, nil, tc.verbose)
			logger.Debug("debug msg")
			logger.Info("info msg")
			logger.Warn("warn msg")
			logger.Error("error msg")

			assert.Equal(t, tc.expectedStdout, stdout.String())
			assert.Equal(t, tc.expectedStderr, stderr.String())
		})
	}
}

func TestNewLogger_File(t *testing.T) {
	var stdout, stderr, file bytes.Buffer

	logger := NewLogger(&stdout, &stderr, &file, false)
	logger.Debug("debug msg")
	logger.Warnw("warn msg", "path", "items[*].id")

	lines := strings.Split(strings.TrimSpace(file.String()), "\n")
	require.Len(t, lines, 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &record))
	assert.Equal(t, "warn", record["level"])
	assert.Equal(t, "warn msg", record["msg"])
	assert.Equal(t, "items[*].id", record["path"])
	assert.NotEmpty(t, record["ts"])

	// The console never sees debug without verbose.
	assert.Empty(t, stdout.String())
}

func TestOpenFile(t *testing.T) {
	f, err := OpenFile("")
	require.NoError(t, err)
	assert.Nil(t, f)

	path := t.TempDir() + "/mapconf.log"
	f, err = OpenFile(path)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.NoError(t, f.Close())
}

func TestWriter(t *testing.T) {
	var stdout, stderr bytes.Buffer

	logger := NewLogger(&stdout, &stderr, nil, false)
	w := NewWriter(logger, zapcore.WarnLevel)

	n, err := w.Write([]byte("first\nsecond\n"))
	require.NoError(t, err)
	assert.Equal(t, 13, n)
	assert.Equal(t, "first\nsecond\n", stderr.String())
	assert.Empty(t, stdout.String())
}
