package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func connectTestClient(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := NewMCPServer(DefaultCheckOptions())
	serverSession, err := server.Connect(ctx, serverTransport)
	if err != nil {
		t.Fatalf("failed to connect server: %v", err)
	}
	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "synchk-test", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport)
	if err != nil {
		t.Fatalf("failed to connect client: %v", err)
	}
	t.Cleanup(func() { session.Close() })

	return session
}

func TestMCPServer_ListTools(t *testing.T) {
	session := connectTestClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools() error: %v", err)
	}

	if len(result.Tools) != 1 || result.Tools[0].Name != "check_syntax" {
		var names []string
		for _, tool := range result.Tools {
			names = append(names, tool.Name)
		}
		t.Errorf("expected only check_syntax, got %v", names)
	}
}

func TestMCPServer_CheckSyntax(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.js":    "let a = 1\n",
		"page.html": "<p>ok</p>\n",
	})

	session := connectTestClient(t)

	tests := []struct {
		name        string
		path        string
		wantTotal   int
		wantSummary string
	}{
		{
			name:        "directory with findings",
			path:        dir,
			wantTotal:   1,
			wantSummary: "Found 1 syntax error(s) in 1 file(s).",
		},
		{
			name:        "clean file",
			path:        filepath.Join(dir, "page.html"),
			wantTotal:   0,
			wantSummary: "No syntax errors found!",
		},
		{
			name:        "missing file",
			path:        filepath.Join(dir, "absent.css"),
			wantTotal:   1,
			wantSummary: "Found 1 syntax error(s) in 1 file(s).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      "check_syntax",
				Arguments: map[string]any{"path": tt.path},
			})
			if err != nil {
				t.Fatalf("CallTool() error: %v", err)
			}
			if result.IsError {
				t.Fatalf("findings should not be reported as tool errors: %+v", result)
			}
			if len(result.Content) != 2 {
				t.Fatalf("expected report and summary content, got %d items", len(result.Content))
			}

			reportText, ok := result.Content[0].(*mcp.TextContent)
			if !ok {
				t.Fatalf("expected text content, got %T", result.Content[0])
			}
			var report Report
			if err := json.Unmarshal([]byte(reportText.Text), &report); err != nil {
				t.Fatalf("report is not valid JSON: %v", err)
			}
			if report.Summary.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", report.Summary.Total, tt.wantTotal)
			}

			summary, ok := result.Content[1].(*mcp.TextContent)
			if !ok || !strings.Contains(summary.Text, tt.wantSummary) {
				t.Errorf("summary = %v, want %q", result.Content[1], tt.wantSummary)
			}
		})
	}
}

func TestSummaryText(t *testing.T) {
	if got := summaryText(0, 0); got != "No syntax errors found!" {
		t.Errorf("summaryText(0, 0) = %q", got)
	}
	if got := summaryText(3, 2); got != "Found 3 syntax error(s) in 2 file(s)." {
		t.Errorf("summaryText(3, 2) = %q", got)
	}
}
