package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/githubnext/synchk/pkg/constants"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CheckSyntaxArgs is the input of the check_syntax tool.
type CheckSyntaxArgs struct {
	Path string `json:"path" jsonschema:"file or directory to check"`
}

// NewMCPServer returns a server exposing the check_syntax tool. Findings are
// tool output, not tool failures, so IsError is only set when the check
// itself could not run.
func NewMCPServer(opts CheckOptions) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: constants.CLIName, Version: GetVersion()}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_syntax",
		Description: "Check web source files (.php, .js, .css, .html, .htm, .json) for unmatched brackets, unclosed tags, missing semicolons and malformed JSON. Accepts a file or a directory.",
	}, func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[CheckSyntaxArgs]) (*mcp.CallToolResultFor[any], error) {
		path := params.Arguments.Path
		if path == "" {
			path = "."
		}

		findings, err := CheckTarget(path, opts)
		if err != nil {
			return &mcp.CallToolResultFor[any]{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			}, nil
		}

		report := NewReport(findings)
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}

		return &mcp.CallToolResultFor[any]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: string(data)},
				&mcp.TextContent{Text: summaryText(report.Summary.Total, report.Summary.Files)},
			},
		}, nil
	})

	return server
}

// RunMCPServer serves the check_syntax tool over stdio until the client
// disconnects or ctx is cancelled.
func RunMCPServer(ctx context.Context, opts CheckOptions) error {
	if err := NewMCPServer(opts).Run(ctx, mcp.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server stopped: %w", err)
	}
	return nil
}

func summaryText(total, files int) string {
	if total == 0 {
		return "No syntax errors found!"
	}
	return fmt.Sprintf("Found %d syntax error(s) in %d file(s).", total, files)
}
