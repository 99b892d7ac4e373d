package registry

import (
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/formatconv/converrors"
)

func textToBase64Unit() *Func {
	return NewUnit(Def{
		Source:      "text",
		Target:      "base64",
		Family:      "encoding",
		Input:       ShapeText,
		Output:      ShapeText,
		Description: "encode text as standard base64",
		Convert: func(value any, _ Options) (any, error) {
			return base64.StdEncoding.EncodeToString([]byte(value.(string))), nil
		},
		Inverse: func(value any, _ Options) (any, error) {
			raw, err := base64.StdEncoding.DecodeString(value.(string))
			if err != nil {
				return nil, &converrors.ValidationError{Source: "base64", Target: "text", Message: "decode failed", Cause: err}
			}
			return string(raw), nil
		},
	})
}

func sha256Stub() *Func {
	return NewUnit(Def{
		Source:      "text",
		Target:      "sha256",
		Family:      "digest",
		Input:       ShapeText,
		Output:      ShapeText,
		Description: "SHA-256 digest of text",
		OneWay:      true,
		Convert: func(value any, _ Options) (any, error) {
			return fmt.Sprintf("%x", value), nil
		},
	})
}

func TestRegisterAndResolve(t *testing.T) {
	reg := New()
	unit := textToBase64Unit()
	require.NoError(t, reg.Register(unit))

	got, err := reg.Resolve(NewKey("text", "base64"))
	require.NoError(t, err)
	assert.Same(t, unit, got.(*Func))

	out, err := got.Convert("Hello World", nil)
	require.NoError(t, err)
	assert.Equal(t, "SGVsbG8gV29ybGQ=", out)
}

func TestRegisterDerivesReverse(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(textToBase64Unit()))

	rkey := NewKey("base64", "text")
	rev, err := reg.Resolve(rkey)
	require.NoError(t, err, "reverse direction is derived automatically")
	assert.True(t, reg.Derived(rkey))
	assert.False(t, reg.Derived(NewKey("text", "base64")))

	out, err := rev.Convert("SGVsbG8gV29ybGQ=", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", out)
	assert.Equal(t, 2, reg.Len())
}

func TestRegisterIdempotent(t *testing.T) {
	reg := New()
	unit := textToBase64Unit()
	require.NoError(t, reg.Register(unit))
	require.NoError(t, reg.Register(unit), "re-registering the identical unit is a no-op")
	assert.Equal(t, 2, reg.Len())
}

func TestRegisterDuplicateDistinctUnit(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(textToBase64Unit()))

	err := reg.Register(textToBase64Unit())
	require.Error(t, err)
	assert.True(t, errors.Is(err, converrors.ErrDuplicateConversion))

	var dup *converrors.DuplicateConversionError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "text", dup.Source)
	assert.Equal(t, "base64", dup.Target)
}

func TestExplicitReplacesDerived(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(textToBase64Unit()))
	require.True(t, reg.Derived(NewKey("base64", "text")))

	explicit := NewUnit(Def{
		Source: "base64",
		Target: "text",
		Family: "encoding",
		Convert: func(value any, _ Options) (any, error) {
			raw, err := base64.StdEncoding.DecodeString(value.(string))
			if err != nil {
				return nil, err
			}
			return string(raw), nil
		},
	})
	require.NoError(t, reg.Register(explicit), "explicit unit replaces a derived one")
	assert.False(t, reg.Derived(NewKey("base64", "text")))

	got, err := reg.Resolve(NewKey("base64", "text"))
	require.NoError(t, err)
	assert.Same(t, explicit, got.(*Func))
}

func TestExplicitBeatsDerived(t *testing.T) {
	reg := New()
	explicit := NewUnit(Def{
		Source: "base64",
		Target: "text",
		Family: "encoding",
		Convert: func(value any, _ Options) (any, error) {
			raw, err := base64.StdEncoding.DecodeString(value.(string))
			if err != nil {
				return nil, err
			}
			return string(raw), nil
		},
	})
	require.NoError(t, reg.Register(explicit))
	require.NoError(t, reg.Register(textToBase64Unit()))

	got, err := reg.Resolve(NewKey("base64", "text"))
	require.NoError(t, err)
	assert.Same(t, explicit, got.(*Func), "an existing explicit unit is never displaced by a derived one")
	assert.False(t, reg.Derived(NewKey("base64", "text")))
}

func TestOneWayDerivesNoReverse(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(sha256Stub()))

	_, err := reg.Resolve(NewKey("sha256", "text"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, converrors.ErrUnsupportedConversion))
	assert.Equal(t, 1, reg.Len())
}

func TestLossyDerivesNoReverse(t *testing.T) {
	lossy := NewUnit(Def{
		Source: "png",
		Target: "jpeg",
		Family: "image",
		Lossy:  true,
		Convert: func(value any, _ Options) (any, error) {
			return value, nil
		},
		Inverse: func(value any, _ Options) (any, error) {
			return value, nil
		},
	})
	assert.Nil(t, lossy.Reverse(), "lossy units never derive a reverse")

	reg := New()
	require.NoError(t, reg.Register(lossy))
	assert.Equal(t, 1, reg.Len())
}

func TestResolveUnsupported(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(textToBase64Unit()))

	_, err := reg.ResolvePair("text", "unknown-format")
	require.Error(t, err)

	var unsupported *converrors.UnsupportedConversionError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "text", unsupported.Source)
	assert.Equal(t, "unknown-format", unsupported.Target)
	assert.Equal(t, []string{"base64", "text"}, unsupported.Known)
}

func TestResolvePairNormalizes(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(textToBase64Unit()))

	_, err := reg.ResolvePair(" TEXT ", "Base64")
	assert.NoError(t, err)
}

func TestRegisterNilUnit(t *testing.T) {
	reg := New()
	err := reg.Register(nil)
	assert.True(t, errors.Is(err, converrors.ErrValidation))
}

func TestListOrdering(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(sha256Stub()))
	require.NoError(t, reg.Register(textToBase64Unit()))
	require.NoError(t, reg.Register(NewUnit(Def{
		Source: "decimal",
		Target: "binary",
		Family: "number",
		OneWay: true,
		Convert: func(value any, _ Options) (any, error) {
			return value, nil
		},
	})))

	want := []Key{
		NewKey("text", "sha256"),
		NewKey("base64", "text"),
		NewKey("text", "base64"),
		NewKey("decimal", "binary"),
	}
	assert.Equal(t, want, reg.List(), "ordered by family then source then target")
	assert.Equal(t, want, reg.List(), "order is stable across calls")
}

func TestEntriesMetadata(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(textToBase64Unit()))
	require.NoError(t, reg.Register(sha256Stub()))

	entries := reg.Entries()
	require.Len(t, entries, 3)

	byKey := make(map[Key]Entry, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e
	}

	forward := byKey[NewKey("text", "base64")]
	assert.Equal(t, "encoding", forward.Family)
	assert.Equal(t, "encode text as standard base64", forward.Description)
	assert.True(t, forward.Reversible)
	assert.False(t, forward.Derived)
	assert.False(t, forward.OneWay)

	derived := byKey[NewKey("base64", "text")]
	assert.True(t, derived.Reversible)
	assert.True(t, derived.Derived)

	digest := byKey[NewKey("text", "sha256")]
	assert.Equal(t, "digest", digest.Family)
	assert.False(t, digest.Reversible)
	assert.True(t, digest.OneWay)
}

func TestFormats(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(textToBase64Unit()))
	require.NoError(t, reg.Register(sha256Stub()))

	assert.Equal(t, []string{"base64", "sha256", "text"}, reg.Formats())
}

func TestNewUnitPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewUnit(Def{Source: "", Target: "base64", Convert: func(any, Options) (any, error) { return nil, nil }})
	}, "empty source")
	assert.Panics(t, func() {
		NewUnit(Def{Source: "text", Target: "base64"})
	}, "missing convert func")
	assert.Panics(t, func() {
		NewUnit(Def{
			Source:  "text",
			Target:  "sha256",
			OneWay:  true,
			Convert: func(any, Options) (any, error) { return nil, nil },
			Inverse: func(any, Options) (any, error) { return nil, nil },
		})
	}, "one-way with inverse")
}

func TestUnitConvertRejectsWrongShape(t *testing.T) {
	unit := textToBase64Unit()

	out, err := unit.Convert([]byte("Hello World"), nil)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, converrors.ErrValidation)
	assert.Contains(t, err.Error(), "expected text input, got bytes")

	var verr *converrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "text", verr.Source)
	assert.Equal(t, "base64", verr.Target)

	// structured values are rejected the same way
	_, err = unit.Convert(map[string]any{"a": 1}, nil)
	assert.ErrorIs(t, err, converrors.ErrValidation)
}

func TestDerivedUnitMetadata(t *testing.T) {
	unit := textToBase64Unit()
	rev, ok := unit.Reverse().(*Func)
	require.True(t, ok)

	assert.Equal(t, NewKey("base64", "text"), rev.Key())
	assert.Equal(t, "encoding", rev.Family())
	assert.True(t, rev.Derived())
	assert.Equal(t, unit.Output(), rev.Input())
	assert.Equal(t, unit.Input(), rev.Output())
}
