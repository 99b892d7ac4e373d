package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/formatconv/registry"
)

// Option keys understood by the number family.
const (
	// OptUppercase renders hex numeral output in uppercase.
	OptUppercase = "uppercase"
	// OptPrefix prepends the conventional radix prefix (0b, 0o, 0x)
	// to the output numeral.
	OptPrefix = "prefix"
	// OptWidth zero-pads the output numeral to at least this many
	// digits, excluding any prefix.
	OptWidth = "width"
)

// RegisterNumber installs the number family: reversible radix
// conversions between numeral strings, plus decimal to roman numerals.
// Numerals are non-negative. Inputs tolerate the conventional radix
// prefix for their base.
func RegisterNumber(reg *registry.Registry) error {
	return registerUnits(reg,
		radixUnit("decimal", "binary", 10, 2),
		radixUnit("decimal", "octal", 10, 8),
		radixUnit("decimal", "hex", 10, 16),
		radixUnit("binary", "octal", 2, 8),
		romanUnit(),
	)
}

var radixPrefixes = map[int]string{2: "0b", 8: "0o", 16: "0x"}

// radixUnit builds a reversible numeral conversion between two bases.
func radixUnit(source, target string, sourceBase, targetBase int) *registry.Func {
	return registry.NewUnit(registry.Def{
		Source:      source,
		Target:      target,
		Family:      "number",
		Description: fmt.Sprintf("convert a %s numeral to %s", source, target),
		Convert:     radixConvert(source, target, sourceBase, targetBase),
		Inverse:     radixConvert(target, source, targetBase, sourceBase),
	})
}

func radixConvert(source, target string, sourceBase, targetBase int) registry.ConvertFunc {
	return func(value any, opts registry.Options) (any, error) {
		n, err := parseNumeral(value.(string), sourceBase)
		if err != nil {
			return nil, validationErr(source, target, fmt.Sprintf("not a valid %s numeral", source), err)
		}
		return formatNumeral(n, targetBase, opts), nil
	}
}

func parseNumeral(text string, base int) (uint64, error) {
	text = strings.TrimSpace(text)
	if prefix, ok := radixPrefixes[base]; ok {
		text = strings.TrimPrefix(strings.ToLower(text), prefix)
	}
	return strconv.ParseUint(text, base, 64)
}

func formatNumeral(n uint64, base int, opts registry.Options) string {
	out := strconv.FormatUint(n, base)
	if base == 16 && opts.Bool(OptUppercase, false) {
		out = strings.ToUpper(out)
	}
	if width := opts.Int(OptWidth, 0); width > len(out) {
		out = strings.Repeat("0", width-len(out)) + out
	}
	if opts.Bool(OptPrefix, false) {
		if prefix, ok := radixPrefixes[base]; ok {
			out = prefix + out
		}
	}
	return out
}

var romanValues = []struct {
	value  uint64
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// romanUnit converts decimal numerals in 1..3999 to standard-form
// roman numerals and back.
func romanUnit() *registry.Func {
	return registry.NewUnit(registry.Def{
		Source:      "decimal",
		Target:      "roman",
		Family:      "number",
		Description: "convert a decimal numeral in 1..3999 to a roman numeral",
		Convert: func(value any, _ registry.Options) (any, error) {
			n, err := parseNumeral(value.(string), 10)
			if err != nil {
				return nil, validationErr("decimal", "roman", "not a valid decimal numeral", err)
			}
			if n < 1 || n > 3999 {
				return nil, validationErr("decimal", "roman", fmt.Sprintf("value %d out of roman numeral range 1..3999", n), nil)
			}
			var sb strings.Builder
			for _, rv := range romanValues {
				for n >= rv.value {
					sb.WriteString(rv.symbol)
					n -= rv.value
				}
			}
			return sb.String(), nil
		},
		Inverse: func(value any, _ registry.Options) (any, error) {
			text := strings.ToUpper(strings.TrimSpace(value.(string)))
			if text == "" {
				return nil, validationErr("roman", "decimal", "empty roman numeral", nil)
			}
			var n uint64
			rest := text
			for _, rv := range romanValues {
				for strings.HasPrefix(rest, rv.symbol) {
					n += rv.value
					rest = rest[len(rv.symbol):]
				}
			}
			if rest != "" || n > 3999 {
				return nil, validationErr("roman", "decimal", fmt.Sprintf("invalid roman numeral %q", text), nil)
			}
			// Reject non-standard forms such as IIII by round-tripping.
			var sb strings.Builder
			check := n
			for _, rv := range romanValues {
				for check >= rv.value {
					sb.WriteString(rv.symbol)
					check -= rv.value
				}
			}
			if sb.String() != text {
				return nil, validationErr("roman", "decimal", fmt.Sprintf("non-standard roman numeral %q", text), nil)
			}
			return strconv.FormatUint(n, 10), nil
		},
	})
}
