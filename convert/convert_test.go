package convert

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/formatconv/converrors"
	"github.com/erraggy/formatconv/registry"
)

// testRegistry registers a small unit set exercising reversible,
// one-way, and lossy behavior.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()

	require.NoError(t, reg.Register(registry.NewUnit(registry.Def{
		Source: "text",
		Target: "base64",
		Family: "encoding",
		Convert: func(value any, _ registry.Options) (any, error) {
			return base64.StdEncoding.EncodeToString([]byte(value.(string))), nil
		},
		Inverse: func(value any, _ registry.Options) (any, error) {
			raw, err := base64.StdEncoding.DecodeString(value.(string))
			if err != nil {
				return nil, &converrors.ValidationError{Source: "base64", Target: "text", Message: "decode failed", Cause: err}
			}
			return string(raw), nil
		},
	})))

	require.NoError(t, reg.Register(registry.NewUnit(registry.Def{
		Source: "decimal",
		Target: "binary",
		Family: "number",
		Convert: func(value any, _ registry.Options) (any, error) {
			n, err := strconv.ParseInt(value.(string), 10, 64)
			if err != nil {
				return nil, &converrors.ValidationError{Source: "decimal", Target: "binary", Message: "not a decimal numeral", Cause: err}
			}
			return strconv.FormatInt(n, 2), nil
		},
		Inverse: func(value any, _ registry.Options) (any, error) {
			n, err := strconv.ParseInt(value.(string), 2, 64)
			if err != nil {
				return nil, &converrors.ValidationError{Source: "binary", Target: "decimal", Message: "not a binary numeral", Cause: err}
			}
			return strconv.FormatInt(n, 10), nil
		},
	})))

	require.NoError(t, reg.Register(registry.NewUnit(registry.Def{
		Source: "text",
		Target: "sha256",
		Family: "digest",
		OneWay: true,
		Convert: func(value any, _ registry.Options) (any, error) {
			sum := sha256.Sum256([]byte(value.(string)))
			return fmt.Sprintf("%x", sum), nil
		},
	})))

	require.NoError(t, reg.Register(registry.NewUnit(registry.Def{
		Source: "png",
		Target: "jpeg",
		Family: "image",
		Input:  registry.ShapeBytes,
		Output: registry.ShapeBytes,
		Lossy:  true,
		Convert: func(value any, _ registry.Options) (any, error) {
			return value, nil
		},
	})))

	return reg
}

func TestConvertTextToBase64(t *testing.T) {
	reg := testRegistry(t)

	result, err := Convert(reg, "Hello World", "text", "base64", nil)
	require.NoError(t, err)
	assert.Equal(t, "SGVsbG8gV29ybGQ=", result.Output)
	assert.Equal(t, "text", result.SourceFormat)
	assert.Equal(t, "base64", result.TargetFormat)
	assert.False(t, result.Derived)
	assert.True(t, result.Success)
	assert.Empty(t, result.Issues)
}

func TestConvertDerivedReverse(t *testing.T) {
	reg := testRegistry(t)

	result, err := Convert(reg, "SGVsbG8gV29ybGQ=", "base64", "text", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", result.Output)
	assert.True(t, result.Derived)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, SeverityInfo, result.Issues[0].Severity)
	assert.Equal(t, 1, result.InfoCount)
	assert.True(t, result.Success)
}

func TestConvertDecimalToBinary(t *testing.T) {
	reg := testRegistry(t)

	result, err := Convert(reg, "42", "decimal", "binary", nil)
	require.NoError(t, err)
	assert.Equal(t, "101010", result.Output)

	back, err := Convert(reg, "101010", "binary", "decimal", nil)
	require.NoError(t, err)
	assert.Equal(t, "42", back.Output)
	assert.True(t, back.Derived)
}

func TestConvertDigestOneWay(t *testing.T) {
	reg := testRegistry(t)

	result, err := Convert(reg, "password123", "text", "sha256", nil)
	require.NoError(t, err)
	assert.Equal(t, "ef92b778bafe771e89245b89ecbc08a44a4e166c06659911881f383d4473e94f", result.Output)

	_, err = Convert(reg, result.Output, "sha256", "text", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, converrors.ErrUnsupportedConversion),
		"digest reverses are never derived")
}

func TestConvertLossyWarning(t *testing.T) {
	reg := testRegistry(t)

	result, err := Convert(reg, []byte{0x89, 0x50}, "png", "jpeg", nil)
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, SeverityWarning, result.Issues[0].Severity)
	assert.Equal(t, "png -> jpeg", result.Issues[0].Pair)
	assert.Equal(t, 1, result.WarningCount)
	assert.True(t, result.HasWarnings())
	assert.True(t, result.Success, "warnings do not fail the conversion")
}

func TestConvertUnsupportedPair(t *testing.T) {
	reg := testRegistry(t)

	_, err := Convert(reg, "anything", "text", "unknown-format", nil)
	require.Error(t, err)

	var unsupported *converrors.UnsupportedConversionError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "unknown-format", unsupported.Target)
	assert.NotEmpty(t, unsupported.Known)
}

func TestConvertValidationError(t *testing.T) {
	reg := testRegistry(t)

	_, err := Convert(reg, "not!!base64", "base64", "text", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, converrors.ErrValidation))
}

func TestConvertShapeMismatch(t *testing.T) {
	reg := testRegistry(t)

	_, err := Convert(reg, []byte("Hello World"), "text", "base64", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, converrors.ErrValidation))
	assert.Contains(t, err.Error(), "expected text input, got bytes")
}

func TestConvertNormalizesFormats(t *testing.T) {
	reg := testRegistry(t)

	result, err := Convert(reg, "Hello World", "  TEXT ", "Base64", nil)
	require.NoError(t, err)
	assert.Equal(t, "SGVsbG8gV29ybGQ=", result.Output)
}

func TestConvertEmptyFormat(t *testing.T) {
	reg := testRegistry(t)

	_, err := Convert(reg, "Hello World", "", "base64", nil)
	assert.True(t, errors.Is(err, converrors.ErrValidation))
}

func TestConvertMaxInputSize(t *testing.T) {
	reg := testRegistry(t)

	t.Run("dispatcher limit", func(t *testing.T) {
		d := New(reg)
		d.MaxInputSize = 4

		_, err := d.Convert("Hello World", "text", "base64", nil)
		require.Error(t, err)

		var tooLarge *converrors.PayloadTooLargeError
		require.True(t, errors.As(err, &tooLarge))
		assert.Equal(t, int64(4), tooLarge.Limit)
		assert.Equal(t, int64(11), tooLarge.Actual)
	})

	t.Run("per-call option overrides", func(t *testing.T) {
		d := New(reg)
		d.MaxInputSize = 4

		opts := registry.Options{registry.OptMaxInputSize: int64(64)}
		_, err := d.Convert("Hello World", "text", "base64", opts)
		assert.NoError(t, err)
	})

	t.Run("zero means unlimited", func(t *testing.T) {
		_, err := Convert(reg, "Hello World", "text", "base64", nil)
		assert.NoError(t, err)
	})
}

func TestConvertIncludeInfoFiltering(t *testing.T) {
	reg := testRegistry(t)
	d := New(reg)
	d.IncludeInfo = false

	result, err := d.Convert("SGVsbG8gV29ybGQ=", "base64", "text", nil)
	require.NoError(t, err)
	assert.True(t, result.Derived)
	assert.Empty(t, result.Issues)
	assert.Zero(t, result.InfoCount)
}

func TestConvertWrapsUnclassifiedErrors(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(registry.NewUnit(registry.Def{
		Source: "text",
		Target: "broken",
		Convert: func(any, registry.Options) (any, error) {
			return nil, errors.New("kaboom")
		},
	})))

	_, err := Convert(reg, "x", "text", "broken", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, converrors.ErrConversion))

	var convErr *converrors.ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.EqualError(t, convErr.Cause, "kaboom")
}

func TestConvertNilRegistry(t *testing.T) {
	d := &Dispatcher{}
	_, err := d.Convert("x", "text", "base64", nil)
	assert.True(t, errors.Is(err, converrors.ErrValidation))
}
