package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/formatconv/registry"
)

type listInput struct {
	Source string `json:"source,omitempty" jsonschema:"Only list conversions from this format"`
	Target string `json:"target,omitempty" jsonschema:"Only list conversions to this format"`
	Family string `json:"family,omitempty" jsonschema:"Only list conversions in this format family (encoding\\, charset\\, number\\, digest\\, data\\, image)"`
}

type listEntry struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Family      string `json:"family,omitempty"`
	Description string `json:"description,omitempty"`
	Reversible  bool   `json:"reversible"`
	Derived     bool   `json:"derived"`
	OneWay      bool   `json:"one_way"`
}

type listOutput struct {
	Count       int         `json:"count"`
	Conversions []listEntry `json:"conversions"`
	Formats     []string    `json:"formats"`
}

func makeListHandler(reg *registry.Registry) func(context.Context, *mcp.CallToolRequest, listInput) (*mcp.CallToolResult, listOutput, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listOutput, error) {
		source := registry.Normalize(input.Source)
		target := registry.Normalize(input.Target)

		entries := reg.Entries()
		output := listOutput{
			Conversions: makeSlice[listEntry](len(entries)),
			Formats:     reg.Formats(),
		}
		for _, entry := range entries {
			if source != "" && entry.Key.Source != source {
				continue
			}
			if target != "" && entry.Key.Target != target {
				continue
			}
			if input.Family != "" && entry.Family != input.Family {
				continue
			}
			output.Conversions = append(output.Conversions, listEntry{
				Source:      string(entry.Key.Source),
				Target:      string(entry.Key.Target),
				Family:      entry.Family,
				Description: entry.Description,
				Reversible:  entry.Reversible,
				Derived:     entry.Derived,
				OneWay:      entry.OneWay,
			})
		}
		output.Count = len(output.Conversions)
		return nil, output, nil
	}
}
