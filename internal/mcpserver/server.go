// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes formatconv capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/formatconv"
	"github.com/erraggy/formatconv/convert"
	"github.com/erraggy/formatconv/registry"
)

const serverInstructions = `formatconv MCP server — converts values between text, number, encoding, digest, data, and image formats through a conversion registry.

Configuration: All defaults are configurable via FORMATCONV_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- FORMATCONV_MAX_INPUT_SIZE (default: 33554432) — maximum conversion payload in bytes; 0 disables the cap
- FORMATCONV_MAX_INLINE_SIZE (default: 4194304) — maximum inline value size in bytes; larger payloads must use file input
- FORMATCONV_INCLUDE_INFO (default: true) — include info-level conversion issues in results
- FORMATCONV_JPEG_QUALITY (default: 90) — default quality for JPEG re-encodes

Use list_conversions to discover supported format pairs, detect_format to guess the format of a value, convert to run a conversion, and compare_text to measure how similar two texts are. Binary payloads (images) must be provided via file input or base64-encoded inline with value_encoding=base64.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled. All tools dispatch against reg.
func Run(ctx context.Context, reg *registry.Registry) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "formatconv", Version: formatconv.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, reg)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server, reg *registry.Registry) {
	dispatcher := convert.New(reg)
	dispatcher.MaxInputSize = cfg.MaxInputSize
	dispatcher.IncludeInfo = cfg.IncludeInfo

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert a value from one format to another through the conversion registry. Provide the value inline or via file; binary payloads must use file input or value_encoding=base64. Pass converter options such as quality (jpeg), uppercase/prefix/width (numerals), indent (json), or delimiter (csv) in the options object. Use list_conversions first if unsure which pairs exist.",
	}, makeConvertHandler(dispatcher))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_conversions",
		Description: "List every supported conversion direction, ordered by format family then source and target. Each entry reports whether the direction is reversible, auto-derived from an inverse, or one-way (destructive, such as digests). Filter with source, target, or family.",
	}, makeListHandler(reg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_format",
		Description: "Guess the format of a value by inspecting its content. Returns candidate format identifiers ordered from most to least specific, restricted to formats the registry knows. Detection is heuristic; prefer stating the source format explicitly when known.",
	}, makeDetectHandler(reg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_text",
		Description: "Compare two texts and report a similarity percentage with per-text character, word, and line counts. Set include_segments for the aligned change spans (equal, deleted, inserted, modified) and include_diff for a line-oriented unified diff. Both inputs must be UTF-8 text.",
	}, makeCompareHandler())
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
