// Package formatconv provides a uniform engine for converting values between
// named data formats: text and binary encodings, character sets, number bases,
// one-way cryptographic digests, structured-data documents, and raster images.
//
// # Overview
//
// The library consists of three primary packages:
//
//   - registry: the conversion catalog mapping (source, target) format pairs
//     to converter units, with automatic reverse derivation
//   - convert: the dispatch façade that resolves a requested pair, validates
//     the input, and delegates to the matched unit
//   - formats: the built-in format families that populate a registry
//
// Structured errors live in the converrors package and support errors.Is and
// errors.As for programmatic handling. The compare package sits beside the
// engine and measures the similarity of two texts; it takes two inputs and
// has no target format, so it is not part of the registry.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/formatconv
//
// # Quick Start
//
// Build a registry with the built-in format families and convert a value:
//
//	reg := registry.New()
//	if err := formats.RegisterAll(reg); err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := convert.Convert(reg, "Hello World", "text", "base64", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Output) // SGVsbG8gV29ybGQ=
//
// # Registry Package
//
// The registry package defines the FormatID, Key, Shape, and Unit types and
// the Registry catalog. A registry is an explicit value: construct one per
// process (or per test) and pass it to collaborators. Registering a
// reversible unit for (A, B) derives a unit for (B, A) from the unit's
// inverse primitive when one is supplied; explicitly registered units always
// take precedence over derived ones.
//
//	reg := registry.New()
//	err := reg.Register(unit)
//	u, err := reg.Resolve(registry.NewKey("base64", "text"))
//	keys := reg.List() // deterministic: family order, then lexical
//
// The registry also offers best-effort content sniffing for the benefit of
// interactive callers:
//
//	candidates := reg.DetectFormat(raw) // never fails; may be empty
//
// # Convert Package
//
// The convert package is the single public entry point collaborators call.
// It resolves the requested format pair, enforces input shape and size
// constraints, delegates to the unit, and reports exactly which conversion
// executed along with any informational or lossy-conversion issues.
//
//	d := convert.New(reg)
//	result, err := d.Convert(pngBytes, "png", "jpeg", registry.Options{"quality": 95})
//	if err != nil {
//		var unsupported *converrors.UnsupportedConversionError
//		if errors.As(err, &unsupported) {
//			// offer the caller reg.List()
//		}
//	}
//
// # Formats Package
//
// The formats package registers the built-in families in a fixed order:
// encoding (base64, hex, url, html), charset (latin1, windows-1252, utf-16),
// number (decimal, binary, octal, hex, roman), digest (md5, sha1, sha256,
// sha512, crc32), data (json, yaml, csv, xml), and image (png, jpeg, gif,
// bmp, tiff, webp). Each family exposes a pure RegisterX(reg) function, so
// a subset registry is one call away.
//
// Digest formats are one-directional by nature and never resolve in reverse.
// Lossy directions (for example webp decode, which has no ecosystem encoder)
// are registered one-way and are never synthesized automatically.
//
// # Command Line Interface
//
// The formatconv command provides convert, list, detect, compare, and mcp
// subcommands:
//
//	formatconv convert -s text -t base64 "Hello World"
//	formatconv convert -s png -t jpeg -o out.jpg --file in.png --quality 95
//	formatconv list
//	formatconv compare --diff --file-a v1.txt --file-b v2.txt
//	formatconv mcp
//
// The mcp subcommand serves the engine's operations as Model Context
// Protocol tools over stdio.
package formatconv
