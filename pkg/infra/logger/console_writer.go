package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors every entry to a writer in human readable form, leaving
// the JSON formatter in charge of the file output.
type ConsoleHook struct {
	mu        sync.Mutex
	out       io.Writer
	formatter logrus.Formatter
}

func NewConsoleHook(out io.Writer) *ConsoleHook {
	return &ConsoleHook{
		out: out,
		formatter: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		},
	}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(line)
	return err
}

func (h *ConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
