package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdpreview/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
		{"surrounding space", " warn ", log.WarnLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(testCase.level)
			require.NotNil(t, logger)
			assert.Equal(t, testCase.expected, logger.GetLevel())
		})
	}
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", logging.FieldTheme, "dark")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "theme=dark")
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	logger := logging.NewInteractive()
	require.NotNil(t, logger)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.Equal(t, "mdpreview", logger.GetPrefix())
}

func TestDefaultAndSetLevel(t *testing.T) {
	// Not parallel because it modifies global state.
	original := logging.Default()
	require.NotNil(t, original)
	defer logging.SetDefault(original)

	testLogger := logging.New("info")
	logging.SetDefault(testLogger)
	assert.Same(t, testLogger, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()))
}

func TestWithFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := logging.NewWriter(&buf, "info")

	ctx, logger := logging.WithFields(logging.WithLogger(context.Background(), base), logging.FieldPath, "doc.md")
	assert.Same(t, logger, logging.FromContext(ctx))

	logging.FromContext(ctx).Info("reloaded")
	assert.Contains(t, buf.String(), "reloaded")
	assert.Contains(t, buf.String(), "path=doc.md")
}
