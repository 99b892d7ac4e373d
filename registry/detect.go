package registry

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// DetectFormat inspects raw content and returns candidate format
// identifiers ordered from most to least specific, filtered to formats
// that appear in the registry. Detection is heuristic: callers should
// treat the first candidate as a suggestion, not a verdict. Empty input
// yields no candidates.
func (r *Registry) DetectFormat(raw []byte) []FormatID {
	if len(raw) == 0 {
		return nil
	}
	known := make(map[FormatID]bool)
	for _, f := range r.Formats() {
		known[FormatID(f)] = true
	}

	var out []FormatID
	add := func(f FormatID) {
		if !known[f] {
			return
		}
		for _, have := range out {
			if have == f {
				return
			}
		}
		out = append(out, f)
	}

	if f, ok := sniffImage(raw); ok {
		add(f)
		add("bytes")
		return out
	}
	if !utf8.Valid(raw) {
		add("bytes")
		return out
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		add("text")
		return out
	}

	for _, f := range sniffText(text) {
		add(f)
	}
	add("text")
	return out
}

// image magic numbers, longest prefix first where they overlap
var imageMagic = []struct {
	format FormatID
	prefix []byte
}{
	{"png", []byte("\x89PNG\r\n\x1a\n")},
	{"jpeg", []byte{0xFF, 0xD8, 0xFF}},
	{"gif", []byte("GIF8")},
	{"tiff", []byte("II*\x00")},
	{"tiff", []byte("MM\x00*")},
	{"bmp", []byte("BM")},
}

func sniffImage(raw []byte) (FormatID, bool) {
	for _, m := range imageMagic {
		if bytes.HasPrefix(raw, m.prefix) {
			return m.format, true
		}
	}
	if len(raw) >= 12 && bytes.HasPrefix(raw, []byte("RIFF")) && bytes.Equal(raw[8:12], []byte("WEBP")) {
		return "webp", true
	}
	return "", false
}

func sniffText(text string) []FormatID {
	var out []FormatID

	switch text[0] {
	case '{', '[':
		if json.Valid([]byte(text)) {
			out = append(out, "json")
		}
	case '<':
		out = append(out, "xml")
	}

	if isRadix(text, "01") {
		out = append(out, "binary")
	}
	if isRadix(text, "01234567") {
		out = append(out, "octal")
	}
	if isRadix(text, "0123456789") {
		out = append(out, "decimal")
	}
	if len(text)%2 == 0 && isRadix(strings.ToLower(text), "0123456789abcdef") {
		out = append(out, "hex")
	}
	if looksBase64(text) {
		out = append(out, "base64")
	}
	if looksCSV(text) {
		out = append(out, "csv")
	}
	if looksYAML(text) {
		out = append(out, "yaml")
	}
	return out
}

func isRadix(text, digits string) bool {
	for _, r := range text {
		if !strings.ContainsRune(digits, r) {
			return false
		}
	}
	return true
}

func looksBase64(text string) bool {
	if len(text) < 4 || len(text)%4 != 0 {
		return false
	}
	for i, r := range text {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '/':
		case r == '=':
			// padding only in the last two positions
			if i < len(text)-2 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func looksCSV(text string) bool {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return false
	}
	cols := strings.Count(lines[0], ",")
	if cols == 0 {
		return false
	}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Count(line, ",") != cols {
			return false
		}
	}
	return true
}

func looksYAML(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "- ") {
			return true
		}
		if i := strings.Index(trimmed, ": "); i > 0 {
			return true
		}
		if strings.HasSuffix(trimmed, ":") && !strings.ContainsAny(trimmed, " \t") {
			return true
		}
		return false
	}
	return false
}
