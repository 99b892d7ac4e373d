package mcpserver

import (
	"encoding/base64"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/erraggy/formatconv/internal/options"
)

// valueInput represents the two ways a conversion payload can be
// provided to a tool. Exactly one of Value or File must be set.
type valueInput struct {
	Value         string `json:"value,omitempty"          jsonschema:"Inline value to convert"`
	File          string `json:"file,omitempty"           jsonschema:"Path to a file whose contents are the value to convert"`
	ValueEncoding string `json:"value_encoding,omitempty" jsonschema:"Encoding of the inline value: text (default) or base64 for binary payloads"`
}

// resolve loads the payload bytes and reports whether they should be
// treated as text. File contents are text when valid UTF-8; inline
// values are text unless value_encoding says otherwise.
func (v valueInput) resolve() ([]byte, bool, error) {
	err := options.ValidateSingleInputSource(
		"one of value or file must be provided",
		"only one of value or file may be provided",
		v.Value != "", v.File != "")
	if err != nil {
		return nil, false, err
	}

	if v.File != "" {
		raw, err := os.ReadFile(v.File)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read input file: %w", err)
		}
		return raw, utf8.Valid(raw), nil
	}

	if int64(len(v.Value)) > cfg.MaxInlineSize {
		return nil, false, fmt.Errorf("inline value size %d bytes exceeds maximum %d bytes; use file input instead, or set FORMATCONV_MAX_INLINE_SIZE to increase",
			len(v.Value), cfg.MaxInlineSize)
	}

	switch v.ValueEncoding {
	case "", "text":
		return []byte(v.Value), true, nil
	case "base64":
		raw, err := base64.StdEncoding.DecodeString(v.Value)
		if err != nil {
			return nil, false, fmt.Errorf("value_encoding is base64 but value does not decode: %w", err)
		}
		return raw, false, nil
	default:
		return nil, false, fmt.Errorf("unknown value_encoding %q (expected text or base64)", v.ValueEncoding)
	}
}
