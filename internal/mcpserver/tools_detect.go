package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/formatconv/registry"
)

type detectInput struct {
	Input valueInput `json:"input" jsonschema:"The value whose format should be detected"`
}

type detectOutput struct {
	Candidates []string `json:"candidates"`
	BestGuess  string   `json:"best_guess,omitempty"`
}

func makeDetectHandler(reg *registry.Registry) func(context.Context, *mcp.CallToolRequest, detectInput) (*mcp.CallToolResult, detectOutput, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, input detectInput) (*mcp.CallToolResult, detectOutput, error) {
		raw, _, err := input.Input.resolve()
		if err != nil {
			return errResult(err), detectOutput{}, nil
		}

		candidates := reg.DetectFormat(raw)
		output := detectOutput{
			Candidates: makeSlice[string](len(candidates)),
		}
		for _, c := range candidates {
			output.Candidates = append(output.Candidates, string(c))
		}
		if len(output.Candidates) > 0 {
			output.BestGuess = output.Candidates[0]
		}
		return nil, output, nil
	}
}
