package registry

import "strings"

// FormatID is an opaque, case-normalized identifier naming a data format,
// such as "text", "base64", or "png". Equality is exact string match after
// normalization. Family-specific options (image quality, CSV delimiter)
// travel in Options, never in the identifier.
type FormatID string

// Normalize lowercases and trims a raw format name into a FormatID.
func Normalize(s string) FormatID {
	return FormatID(strings.ToLower(strings.TrimSpace(s)))
}

// String returns the identifier as a plain string.
func (f FormatID) String() string {
	return string(f)
}

// Key is an ordered pair of FormatIDs identifying one conversion direction.
// (A, B) and (B, A) are distinct keys even when both directions exist.
type Key struct {
	// Source is the format converted from
	Source FormatID
	// Target is the format converted to
	Target FormatID
}

// NewKey builds a Key from raw format names, normalizing both.
func NewKey(source, target string) Key {
	return Key{Source: Normalize(source), Target: Normalize(target)}
}

// Swap returns the key for the opposite conversion direction.
func (k Key) Swap() Key {
	return Key{Source: k.Target, Target: k.Source}
}

// String returns the key as "source -> target".
func (k Key) String() string {
	return string(k.Source) + " -> " + string(k.Target)
}

// Shape declares the kind of value a unit accepts or produces.
type Shape int

const (
	// ShapeText is a Go string holding a textual representation.
	ShapeText Shape = iota

	// ShapeBytes is a raw []byte payload, such as encoded image data.
	ShapeBytes

	// ShapeStructured is an in-memory structured value (maps, slices,
	// scalars), such as a decoded document.
	ShapeStructured
)

// String returns the string representation of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeText:
		return "text"
	case ShapeBytes:
		return "bytes"
	case ShapeStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// ShapeOf reports the shape of a runtime value as seen by the dispatcher.
func ShapeOf(value any) Shape {
	switch value.(type) {
	case string:
		return ShapeText
	case []byte:
		return ShapeBytes
	default:
		return ShapeStructured
	}
}
