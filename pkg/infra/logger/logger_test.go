package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Setenv(levelEnvVariable, "")
	assert.Equal(t, logrus.InfoLevel, parseLevel(""))
	assert.Equal(t, logrus.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, logrus.InfoLevel, parseLevel("loud"))

	t.Setenv(levelEnvVariable, "debug")
	assert.Equal(t, logrus.DebugLevel, parseLevel(""))
	assert.Equal(t, logrus.WarnLevel, parseLevel("warn"))
}

func TestNewLogger_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := NewLogger(Options{Console: true, ConsoleWriter: &buf, Level: "info"})
	require.NoError(t, err)
	defer closer.Close()

	log.WithField("app_id", "com.example.app").Info("analyzed")
	log.Debug("hidden")

	assert.Contains(t, buf.String(), "analyzed")
	assert.Contains(t, buf.String(), "app_id=com.example.app")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestAsyncFileWriter_FlushesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	w, err := NewAsyncFileWriter(path, 64)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := w.Write([]byte("line\n"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, bytes.Count(data, []byte("line\n")))
}
