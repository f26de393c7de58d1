package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logDir           = "logs"
	fileBufferSize   = 32 * 1024
	fileQueueSize    = 1000
	fileFlushPeriod  = 2 * time.Second
	levelEnvVariable = "LOG_LEVEL"
)

type Options struct {
	// Name selects logs/<name>.log. Empty disables the file writer.
	Name string
	// Console mirrors entries to Console (stderr when nil) as text.
	Console       bool
	ConsoleWriter io.Writer
	Level         string
}

// NewLogger builds the process logger. The returned closer flushes and closes
// the log file; it is never nil.
func NewLogger(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(parseLevel(opts.Level))
	logger.SetOutput(io.Discard)

	var closer io.Closer = nopCloser{}
	if opts.Name != "" {
		logFile := filepath.Clean(filepath.Join(logDir, opts.Name+".log"))
		if !strings.HasPrefix(logFile, logDir+string(filepath.Separator)) {
			return nil, nil, fmt.Errorf("invalid log file path %q: must be in %s directory", logFile, logDir)
		}
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create logs directory: %w", err)
		}
		asyncWriter, err := NewAsyncFileWriter(logFile, fileBufferSize)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize async log writer: %w", err)
		}
		logger.SetOutput(asyncWriter)
		closer = asyncWriter
	}

	if opts.Console {
		out := opts.ConsoleWriter
		if out == nil {
			out = os.Stderr
		}
		logger.AddHook(NewConsoleHook(out))
	}

	return logger, closer, nil
}

// parseLevel prefers the explicit level, then LOG_LEVEL, then info.
func parseLevel(level string) logrus.Level {
	if level == "" {
		level = os.Getenv(levelEnvVariable)
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
