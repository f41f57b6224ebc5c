package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdpreview/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	assert.False(t, styles.ColorEnabled())
	assert.Equal(t, "test", styles.Bold.Render("test"), "No-color Bold should not add formatting")
	assert.Equal(t, "test", styles.Failure.Render("test"), "No-color Failure should not add formatting")
	assert.Empty(t, styles.Swatch("#ffffff"))
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	assert.True(t, styles.ColorEnabled())
	assert.NotEmpty(t, styles.Written.Render("x"))
	assert.NotEmpty(t, styles.Swatch("#0d1117"))
	assert.Empty(t, styles.Swatch(""))
}

func TestIsColorEnabled_Modes(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, &buf), "always mode should return true")
	assert.False(t, pretty.IsColorEnabled(pretty.ColorNever, os.Stdout), "never mode should return false")
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, &buf), "auto mode with non-TTY should return false")
	assert.False(t, pretty.IsColorEnabled("unknown", &buf), "unknown mode behaves like auto")
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, os.Stdout), "NO_COLOR should disable colors")
}
