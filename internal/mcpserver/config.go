package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// MaxInputSize caps conversion payloads in bytes. Zero disables
	// the cap.
	MaxInputSize int64
	// MaxInlineSize caps inline value inputs in bytes; larger
	// payloads must come in via file.
	MaxInlineSize int64
	// IncludeInfo controls whether info-level issues are returned.
	IncludeInfo bool
	// JPEGQuality is the default quality for JPEG re-encodes.
	JPEGQuality int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from FORMATCONV_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInputSize:  envInt64("FORMATCONV_MAX_INPUT_SIZE", 32<<20),
		MaxInlineSize: envInt64("FORMATCONV_MAX_INLINE_SIZE", 4<<20),
		IncludeInfo:   envBool("FORMATCONV_INCLUDE_INFO", true),
		JPEGQuality:   envInt("FORMATCONV_JPEG_QUALITY", 90),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		slog.Warn("invalid size env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
