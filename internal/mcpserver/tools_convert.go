package mcpserver

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/formatconv/convert"
	"github.com/erraggy/formatconv/formats"
	"github.com/erraggy/formatconv/registry"
)

type convertInput struct {
	Input   valueInput     `json:"input"             jsonschema:"The value to convert"`
	Source  string         `json:"source"            jsonschema:"Source format identifier (e.g. text\\, png\\, decimal)"`
	Target  string         `json:"target"            jsonschema:"Target format identifier (e.g. base64\\, jpeg\\, binary)"`
	Options map[string]any `json:"options,omitempty" jsonschema:"Converter options such as quality\\, uppercase\\, indent\\, delimiter"`
	Output  string         `json:"output,omitempty"  jsonschema:"File path to write the converted value. If omitted the value is returned inline\\, base64-encoded when binary."`
}

type convertIssue struct {
	Severity string `json:"severity"`
	Pair     string `json:"pair"`
	Message  string `json:"message"`
}

type convertOutput struct {
	Source        string         `json:"source"`
	Target        string         `json:"target"`
	Derived       bool           `json:"derived"`
	Success       bool           `json:"success"`
	IssueCount    int            `json:"issue_count"`
	Issues        []convertIssue `json:"issues,omitempty"`
	Value         string         `json:"value,omitempty"`
	ValueEncoding string         `json:"value_encoding,omitempty"`
	WrittenTo     string         `json:"written_to,omitempty"`
	WrittenBytes  int            `json:"written_bytes,omitempty"`
}

func makeConvertHandler(d *convert.Dispatcher) func(context.Context, *mcp.CallToolRequest, convertInput) (*mcp.CallToolResult, convertOutput, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, convertOutput, error) {
		if input.Source == "" || input.Target == "" {
			return errResult(fmt.Errorf("source and target formats are required")), convertOutput{}, nil
		}

		raw, _, err := input.Input.resolve()
		if err != nil {
			return errResult(err), convertOutput{}, nil
		}

		unit, err := d.Registry.ResolvePair(input.Source, input.Target)
		if err != nil {
			return errResult(err), convertOutput{}, nil
		}

		var value any
		switch unit.Input() {
		case registry.ShapeBytes:
			value = raw
		default:
			value = string(raw)
		}

		opts := registry.Options(input.Options)
		if unit.Input() == registry.ShapeBytes && opts.Int(formats.OptQuality, 0) == 0 && cfg.JPEGQuality != 90 {
			if opts == nil {
				opts = registry.Options{}
			}
			opts[formats.OptQuality] = cfg.JPEGQuality
		}

		result, err := d.Convert(value, input.Source, input.Target, opts)
		if err != nil {
			return errResult(err), convertOutput{}, nil
		}

		output := convertOutput{
			Source:     result.SourceFormat,
			Target:     result.TargetFormat,
			Derived:    result.Derived,
			Success:    result.Success,
			IssueCount: len(result.Issues),
		}
		output.Issues = makeSlice[convertIssue](len(result.Issues))
		for _, issue := range result.Issues {
			output.Issues = append(output.Issues, convertIssue{
				Severity: issue.Severity.String(),
				Pair:     issue.Pair,
				Message:  issue.Message,
			})
		}

		var data []byte
		switch out := result.Output.(type) {
		case string:
			data = []byte(out)
			output.ValueEncoding = "text"
		case []byte:
			data = out
			output.ValueEncoding = "base64"
		default:
			return errResult(fmt.Errorf("unexpected output type %T", result.Output)), convertOutput{}, nil
		}

		if input.Output != "" {
			if err := os.WriteFile(input.Output, data, 0o644); err != nil {
				return errResult(fmt.Errorf("failed to write output file: %w", err)), convertOutput{}, nil
			}
			output.WrittenTo = input.Output
			output.WrittenBytes = len(data)
			output.ValueEncoding = ""
			return nil, output, nil
		}

		if output.ValueEncoding == "base64" {
			output.Value = base64.StdEncoding.EncodeToString(data)
		} else {
			output.Value = string(data)
		}
		return nil, output, nil
	}
}
