package formats

import (
	"encoding/base64"
	"encoding/hex"
	"html"
	"net/url"

	"github.com/erraggy/formatconv/converrors"
	"github.com/erraggy/formatconv/registry"
)

// RegisterEncoding installs the encoding family: reversible text and
// byte transcodings such as base64, hex, URL escaping, and HTML
// entity escaping.
func RegisterEncoding(reg *registry.Registry) error {
	return registerUnits(reg,
		registry.NewUnit(registry.Def{
			Source:      "text",
			Target:      "base64",
			Family:      "encoding",
			Description: "encode text as standard base64",
			Convert: func(value any, _ registry.Options) (any, error) {
				return base64.StdEncoding.EncodeToString([]byte(value.(string))), nil
			},
			Inverse: func(value any, _ registry.Options) (any, error) {
				raw, err := base64.StdEncoding.DecodeString(value.(string))
				if err != nil {
					return nil, validationErr("base64", "text", "invalid base64 input", err)
				}
				return string(raw), nil
			},
		}),
		registry.NewUnit(registry.Def{
			Source:      "text",
			Target:      "base64url",
			Family:      "encoding",
			Description: "encode text as URL-safe base64",
			Convert: func(value any, _ registry.Options) (any, error) {
				return base64.URLEncoding.EncodeToString([]byte(value.(string))), nil
			},
			Inverse: func(value any, _ registry.Options) (any, error) {
				raw, err := base64.URLEncoding.DecodeString(value.(string))
				if err != nil {
					return nil, validationErr("base64url", "text", "invalid URL-safe base64 input", err)
				}
				return string(raw), nil
			},
		}),
		registry.NewUnit(registry.Def{
			Source:      "text",
			Target:      "hex",
			Family:      "encoding",
			Description: "encode text as lowercase hex",
			Convert: func(value any, _ registry.Options) (any, error) {
				return hex.EncodeToString([]byte(value.(string))), nil
			},
			Inverse: func(value any, _ registry.Options) (any, error) {
				raw, err := hex.DecodeString(value.(string))
				if err != nil {
					return nil, validationErr("hex", "text", "invalid hex input", err)
				}
				return string(raw), nil
			},
		}),
		registry.NewUnit(registry.Def{
			Source:      "text",
			Target:      "url",
			Family:      "encoding",
			Description: "percent-encode text for use in a URL query",
			Convert: func(value any, _ registry.Options) (any, error) {
				return url.QueryEscape(value.(string)), nil
			},
			Inverse: func(value any, _ registry.Options) (any, error) {
				out, err := url.QueryUnescape(value.(string))
				if err != nil {
					return nil, validationErr("url", "text", "invalid percent-encoding", err)
				}
				return out, nil
			},
		}),
		registry.NewUnit(registry.Def{
			Source:      "text",
			Target:      "html",
			Family:      "encoding",
			Description: "escape text as HTML entities",
			Convert: func(value any, _ registry.Options) (any, error) {
				return html.EscapeString(value.(string)), nil
			},
			Inverse: func(value any, _ registry.Options) (any, error) {
				return html.UnescapeString(value.(string)), nil
			},
		}),
		registry.NewUnit(registry.Def{
			Source:      "bytes",
			Target:      "base64",
			Family:      "encoding",
			Input:       registry.ShapeBytes,
			Output:      registry.ShapeText,
			Description: "encode raw bytes as standard base64",
			Convert: func(value any, _ registry.Options) (any, error) {
				return base64.StdEncoding.EncodeToString(value.([]byte)), nil
			},
			Inverse: func(value any, _ registry.Options) (any, error) {
				raw, err := base64.StdEncoding.DecodeString(value.(string))
				if err != nil {
					return nil, validationErr("base64", "bytes", "invalid base64 input", err)
				}
				return raw, nil
			},
		}),
		registry.NewUnit(registry.Def{
			Source:      "base64",
			Target:      "hex",
			Family:      "encoding",
			Description: "transcode base64 text to lowercase hex",
			Convert: func(value any, _ registry.Options) (any, error) {
				raw, err := base64.StdEncoding.DecodeString(value.(string))
				if err != nil {
					return nil, validationErr("base64", "hex", "invalid base64 input", err)
				}
				return hex.EncodeToString(raw), nil
			},
			Inverse: func(value any, _ registry.Options) (any, error) {
				raw, err := hex.DecodeString(value.(string))
				if err != nil {
					return nil, validationErr("hex", "base64", "invalid hex input", err)
				}
				return base64.StdEncoding.EncodeToString(raw), nil
			},
		}),
		registry.NewUnit(registry.Def{
			Source:      "bytes",
			Target:      "hex",
			Family:      "encoding",
			Input:       registry.ShapeBytes,
			Output:      registry.ShapeText,
			Description: "encode raw bytes as lowercase hex",
			Convert: func(value any, _ registry.Options) (any, error) {
				return hex.EncodeToString(value.([]byte)), nil
			},
			Inverse: func(value any, _ registry.Options) (any, error) {
				raw, err := hex.DecodeString(value.(string))
				if err != nil {
					return nil, validationErr("hex", "bytes", "invalid hex input", err)
				}
				return raw, nil
			},
		}),
	)
}

func validationErr(source, target, message string, cause error) error {
	return &converrors.ValidationError{
		Source:  source,
		Target:  target,
		Message: message,
		Cause:   cause,
	}
}

func conversionErr(source, target, message string, cause error) error {
	return &converrors.ConversionError{
		Source:  source,
		Target:  target,
		Message: message,
		Cause:   cause,
	}
}
