package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	t.Setenv("FORMATCONV_TEST_BOOL", "")
	assert.True(t, envBool("FORMATCONV_TEST_BOOL", true))

	t.Setenv("FORMATCONV_TEST_BOOL", "false")
	assert.False(t, envBool("FORMATCONV_TEST_BOOL", true))

	t.Setenv("FORMATCONV_TEST_BOOL", "not-a-bool")
	assert.True(t, envBool("FORMATCONV_TEST_BOOL", true), "invalid values fall back")
}

func TestEnvInt(t *testing.T) {
	t.Setenv("FORMATCONV_TEST_INT", "95")
	assert.Equal(t, 95, envInt("FORMATCONV_TEST_INT", 90))

	t.Setenv("FORMATCONV_TEST_INT", "0")
	assert.Equal(t, 90, envInt("FORMATCONV_TEST_INT", 90), "non-positive values fall back")

	t.Setenv("FORMATCONV_TEST_INT", "abc")
	assert.Equal(t, 90, envInt("FORMATCONV_TEST_INT", 90))
}

func TestEnvInt64(t *testing.T) {
	t.Setenv("FORMATCONV_TEST_SIZE", "1048576")
	assert.Equal(t, int64(1<<20), envInt64("FORMATCONV_TEST_SIZE", 0))

	t.Setenv("FORMATCONV_TEST_SIZE", "0")
	assert.Equal(t, int64(0), envInt64("FORMATCONV_TEST_SIZE", 42), "zero disables the cap")

	t.Setenv("FORMATCONV_TEST_SIZE", "-1")
	assert.Equal(t, int64(42), envInt64("FORMATCONV_TEST_SIZE", 42), "negative values fall back")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FORMATCONV_MAX_INPUT_SIZE", "")
	t.Setenv("FORMATCONV_MAX_INLINE_SIZE", "")
	t.Setenv("FORMATCONV_INCLUDE_INFO", "")
	t.Setenv("FORMATCONV_JPEG_QUALITY", "")

	got := loadConfig()
	assert.Equal(t, int64(32<<20), got.MaxInputSize)
	assert.Equal(t, int64(4<<20), got.MaxInlineSize)
	assert.True(t, got.IncludeInfo)
	assert.Equal(t, 90, got.JPEGQuality)
}
