package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/formatconv/compare"
)

type compareInput struct {
	First           valueInput `json:"first"                      jsonschema:"The first text to compare"`
	Second          valueInput `json:"second"                     jsonschema:"The second text to compare"`
	IncludeSegments bool       `json:"include_segments,omitempty" jsonschema:"Include the aligned change segments in the result"`
	IncludeDiff     bool       `json:"include_diff,omitempty"     jsonschema:"Include a line-oriented unified diff in the result"`
}

type compareStats struct {
	Chars int `json:"chars"`
	Words int `json:"words"`
	Lines int `json:"lines"`
}

type compareSegment struct {
	Op     string `json:"op"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

type compareOutput struct {
	Similarity  float64          `json:"similarity"`
	Identical   bool             `json:"identical"`
	FirstStats  compareStats     `json:"first_stats"`
	SecondStats compareStats     `json:"second_stats"`
	Segments    []compareSegment `json:"segments,omitempty"`
	Diff        string           `json:"diff,omitempty"`
}

func makeCompareHandler() func(context.Context, *mcp.CallToolRequest, compareInput) (*mcp.CallToolResult, compareOutput, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, compareOutput, error) {
		first, err := compareText("first", input.First)
		if err != nil {
			return errResult(err), compareOutput{}, nil
		}
		second, err := compareText("second", input.Second)
		if err != nil {
			return errResult(err), compareOutput{}, nil
		}

		c := compare.New()
		result := c.Compare(first, second)

		output := compareOutput{
			Similarity:  result.Similarity,
			Identical:   result.Identical,
			FirstStats:  statsOf(result.SourceStats),
			SecondStats: statsOf(result.TargetStats),
		}

		if input.IncludeSegments {
			output.Segments = makeSlice[compareSegment](len(result.Segments))
			for _, seg := range result.Segments {
				output.Segments = append(output.Segments, compareSegment{
					Op:     string(seg.Op),
					Source: seg.Source,
					Target: seg.Target,
				})
			}
		}

		if input.IncludeDiff && !result.Identical {
			diff, err := c.UnifiedDiff(first, second)
			if err != nil {
				return errResult(fmt.Errorf("failed to render diff: %w", err)), compareOutput{}, nil
			}
			output.Diff = diff
		}

		return nil, output, nil
	}
}

// compareText resolves one side of a comparison and requires it to be
// text; comparison has no meaning for binary payloads.
func compareText(side string, v valueInput) (string, error) {
	raw, isText, err := v.resolve()
	if err != nil {
		return "", fmt.Errorf("%s: %w", side, err)
	}
	if !isText {
		return "", fmt.Errorf("%s: comparison requires UTF-8 text input", side)
	}
	return string(raw), nil
}

func statsOf(stats compare.TextStats) compareStats {
	return compareStats{Chars: stats.Chars, Words: stats.Words, Lines: stats.Lines}
}
