package formats

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/formatconv/registry"
)

// Option keys understood by the data family.
const (
	// OptIndent controls JSON output indentation in spaces. Zero
	// emits compact JSON.
	OptIndent = "indent"
	// OptDelimiter sets the CSV field delimiter. Must be a single
	// character; defaults to a comma.
	OptDelimiter = "delimiter"
)

// RegisterData installs the data family: structured document
// transcodings. JSON and YAML convert both ways; CSV converts to and
// from JSON arrays of records; XML flattens to JSON one way only since
// attribute and ordering information cannot round-trip.
func RegisterData(reg *registry.Registry) error {
	return registerUnits(reg,
		registry.NewUnit(registry.Def{
			Source:      "json",
			Target:      "yaml",
			Family:      "data",
			Description: "transcode a JSON document to YAML",
			Convert: func(value any, _ registry.Options) (any, error) {
				var doc any
				if err := json.Unmarshal([]byte(value.(string)), &doc); err != nil {
					return nil, conversionErr("json", "yaml", "unparseable JSON document", err)
				}
				out, err := yaml.Marshal(doc)
				if err != nil {
					return nil, conversionErr("json", "yaml", "YAML encoding failed", err)
				}
				return string(out), nil
			},
			Inverse: func(value any, opts registry.Options) (any, error) {
				var doc any
				if err := yaml.Unmarshal([]byte(value.(string)), &doc); err != nil {
					return nil, conversionErr("yaml", "json", "unparseable YAML document", err)
				}
				return marshalJSON(doc, "yaml", "json", opts)
			},
		}),
		registry.NewUnit(registry.Def{
			Source:      "csv",
			Target:      "json",
			Family:      "data",
			Description: "convert CSV with a header row to a JSON array of records",
			Convert: func(value any, opts registry.Options) (any, error) {
				delim, err := delimiterRune(opts, "csv", "json")
				if err != nil {
					return nil, err
				}
				records, err := readCSV(value.(string), delim)
				if err != nil {
					return nil, conversionErr("csv", "json", "unparseable CSV document", err)
				}
				if len(records) == 0 {
					return "[]", nil
				}
				header := records[0]
				rows := make([]map[string]string, 0, len(records)-1)
				for _, record := range records[1:] {
					row := make(map[string]string, len(header))
					for i, field := range record {
						if i < len(header) {
							row[header[i]] = field
						}
					}
					rows = append(rows, row)
				}
				return marshalJSON(rows, "csv", "json", opts)
			},
			Inverse: func(value any, opts registry.Options) (any, error) {
				delim, err := delimiterRune(opts, "json", "csv")
				if err != nil {
					return nil, err
				}
				var rows []map[string]any
				if err := json.Unmarshal([]byte(value.(string)), &rows); err != nil {
					return nil, conversionErr("json", "csv", "expected a JSON array of flat objects", err)
				}
				return writeCSV(rows, delim)
			},
		}),
		registry.NewUnit(registry.Def{
			Source:      "xml",
			Target:      "json",
			Family:      "data",
			OneWay:      true,
			Description: "flatten an XML document to JSON",
			Convert: func(value any, opts registry.Options) (any, error) {
				doc, err := xmlToValue(value.(string))
				if err != nil {
					return nil, conversionErr("xml", "json", "unparseable XML document", err)
				}
				return marshalJSON(doc, "xml", "json", opts)
			},
		}),
	)
}

func marshalJSON(doc any, source, target string, opts registry.Options) (any, error) {
	var (
		out []byte
		err error
	)
	if indent := opts.Int(OptIndent, 0); indent > 0 {
		out, err = json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, conversionErr(source, target, "JSON encoding failed", err)
	}
	return string(out), nil
}

// delimiterRune decodes the delimiter option into a single rune. An
// unset option reports 0, meaning the encoding/csv default comma.
func delimiterRune(opts registry.Options, source, target string) (rune, error) {
	delim := opts.String(OptDelimiter, "")
	if delim == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(delim)
	if r == utf8.RuneError || size != len(delim) {
		return 0, validationErr(source, target, fmt.Sprintf("delimiter must be a single character, got %q", delim), nil)
	}
	return r, nil
}

func readCSV(text string, delim rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	if delim != 0 {
		r.Comma = delim
	}
	return r.ReadAll()
}

// writeCSV renders JSON records as CSV with a header drawn from the
// sorted union of record keys. Missing fields become empty cells.
func writeCSV(rows []map[string]any, delim rune) (any, error) {
	keys := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			keys[k] = true
		}
	}
	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if delim != 0 {
		w.Comma = delim
	}
	if err := w.Write(header); err != nil {
		return nil, conversionErr("json", "csv", "CSV encoding failed", err)
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, k := range header {
			record[i] = fieldString(row[k])
		}
		if err := w.Write(record); err != nil {
			return nil, conversionErr("json", "csv", "CSV encoding failed", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, conversionErr("json", "csv", "CSV encoding failed", err)
	}
	return buf.String(), nil
}

func fieldString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		out, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(out)
	}
}

// xmlToValue decodes an XML document into nested maps. Repeated child
// elements collapse into arrays; attributes are kept under "@name" and
// bare character data under "#text".
func xmlToValue(text string) (any, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			value, err := xmlElement(dec, start)
			if err != nil {
				return nil, err
			}
			return map[string]any{start.Name.Local: value}, nil
		}
	}
}

func xmlElement(dec *xml.Decoder, start xml.StartElement) (any, error) {
	node := make(map[string]any)
	for _, attr := range start.Attr {
		node["@"+attr.Name.Local] = attr.Value
	}
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := xmlElement(dec, t)
			if err != nil {
				return nil, err
			}
			name := t.Name.Local
			switch existing := node[name].(type) {
			case nil:
				node[name] = child
			case []any:
				node[name] = append(existing, child)
			default:
				node[name] = []any{existing, child}
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			content := strings.TrimSpace(text.String())
			if len(node) == 0 {
				// leaf element
				return content, nil
			}
			if content != "" {
				node["#text"] = content
			}
			return node, nil
		}
	}
}
