package formats

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/erraggy/formatconv/registry"
)

// RegisterCharset installs the charset family: reversible transcodings
// between UTF-8 text and legacy byte encodings. The forward direction
// takes text and produces raw bytes in the target charset.
func RegisterCharset(reg *registry.Registry) error {
	return registerUnits(reg,
		charsetUnit("latin1", charmap.ISO8859_1, "transcode UTF-8 text to ISO 8859-1 bytes"),
		charsetUnit("windows1252", charmap.Windows1252, "transcode UTF-8 text to Windows-1252 bytes"),
		charsetUnit("utf16", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), "transcode UTF-8 text to little-endian UTF-16 bytes with BOM"),
	)
}

// charsetUnit builds a text -> charset unit whose derived reverse
// decodes charset bytes back to UTF-8 text.
func charsetUnit(name string, enc encoding.Encoding, desc string) *registry.Func {
	return registry.NewUnit(registry.Def{
		Source:      "text",
		Target:      name,
		Family:      "charset",
		Input:       registry.ShapeText,
		Output:      registry.ShapeBytes,
		Description: desc,
		Convert: func(value any, _ registry.Options) (any, error) {
			out, err := enc.NewEncoder().Bytes([]byte(value.(string)))
			if err != nil {
				return nil, conversionErr("text", name, "text contains characters not representable in "+name, err)
			}
			return out, nil
		},
		Inverse: func(value any, _ registry.Options) (any, error) {
			out, err := enc.NewDecoder().Bytes(value.([]byte))
			if err != nil {
				return nil, validationErr(name, "text", "invalid "+name+" byte sequence", err)
			}
			return string(out), nil
		},
	})
}
