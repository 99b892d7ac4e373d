package formats

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash/crc32"

	"github.com/erraggy/formatconv/registry"
)

// digestAlgos maps digest format identifiers to their sum functions.
// Output is the conventional lowercase hex rendering.
var digestAlgos = []struct {
	name string
	sum  func([]byte) string
}{
	{"md5", func(b []byte) string { return fmt.Sprintf("%x", md5.Sum(b)) }},
	{"sha1", func(b []byte) string { return fmt.Sprintf("%x", sha1.Sum(b)) }},
	{"sha256", func(b []byte) string { return fmt.Sprintf("%x", sha256.Sum256(b)) }},
	{"sha512", func(b []byte) string { return fmt.Sprintf("%x", sha512.Sum512(b)) }},
	{"crc32", func(b []byte) string { return fmt.Sprintf("%08x", crc32.ChecksumIEEE(b)) }},
}

// RegisterDigest installs the digest family: one-way hashes of text and
// raw bytes. Digests are destructive, so no reverse direction ever
// exists for them.
func RegisterDigest(reg *registry.Registry) error {
	units := make([]*registry.Func, 0, 2*len(digestAlgos))
	for _, algo := range digestAlgos {
		units = append(units,
			digestUnit("text", algo.name, algo.sum),
			digestUnit("bytes", algo.name, algo.sum),
		)
	}
	return registerUnits(reg, units...)
}

func digestUnit(source, name string, sum func([]byte) string) *registry.Func {
	input := registry.ShapeText
	if source == "bytes" {
		input = registry.ShapeBytes
	}
	return registry.NewUnit(registry.Def{
		Source:      source,
		Target:      name,
		Family:      "digest",
		Input:       input,
		Output:      registry.ShapeText,
		OneWay:      true,
		Description: fmt.Sprintf("%s digest of %s as lowercase hex", name, source),
		Convert: func(value any, _ registry.Options) (any, error) {
			switch v := value.(type) {
			case string:
				return sum([]byte(v)), nil
			case []byte:
				return sum(v), nil
			default:
				return nil, validationErr(source, name, "digest input must be text or bytes", nil)
			}
		},
	})
}
