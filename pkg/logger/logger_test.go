package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Output: &buf})

	log.Info().Str("component", "test").Msg("hello")

	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.Contains(t, buf.String(), `"component":"test"`)
}

func TestNew_AllLogLevels(t *testing.T) {
	testCases := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			New(Config{Level: tc.level, Output: &bytes.Buffer{}})
			assert.Equal(t, tc.expected, zerolog.GlobalLevel())
		})
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestNew_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Pretty: true, Output: &buf})

	log.Info().Msg("pretty message")

	assert.Contains(t, buf.String(), "pretty message")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestOpenFile_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riskdesk.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("first\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("second\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f2, err := OpenFile(path)
	require.NoError(t, err)
	defer f2.Close()
	info, err := f2.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(len("first\nsecond\n")), info.Size())
}
