package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- helpers ---

func newTestMCPDeps(t *testing.T, gen *stubGenerator) MCPDeps {
	t.Helper()
	return MCPDeps{
		Profile:   testStore(t),
		Generator: gen,
		Version:   "test",
	}
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func makeReadResourceRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

// --- tests ---

func TestMCPTool_AskPortfolio(t *testing.T) {
	gen := &stubGenerator{reply: "Benjamin has worked with Go and TypeScript."}
	handler := mcpAskPortfolio(newTestMCPDeps(t, gen))

	req := makeCallToolRequest("ask_portfolio", map[string]interface{}{
		"question": "What are Benjamin's technical skills?",
	})

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}
	if got := toolText(t, result); got != gen.reply {
		t.Errorf("text = %q, want %q", got, gen.reply)
	}
}

func TestMCPTool_AskPortfolio_MissingQuestion(t *testing.T) {
	gen := &stubGenerator{reply: "x"}
	handler := mcpAskPortfolio(newTestMCPDeps(t, gen))

	for _, args := range []map[string]interface{}{
		{},
		{"question": "   "},
	} {
		result, err := handler(context.Background(), makeCallToolRequest("ask_portfolio", args))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Errorf("args %v: expected error result", args)
		}
	}
	if gen.calls.Load() != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls.Load())
	}
}

func TestMCPResource_Profile(t *testing.T) {
	deps := newTestMCPDeps(t, &stubGenerator{})
	handler := mcpResourceProfile(deps)

	contents, err := handler(context.Background(), makeReadResourceRequest("portfolio://profile"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	if tc.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q", tc.MIMEType)
	}

	var p map[string]any
	if err := json.Unmarshal([]byte(tc.Text), &p); err != nil {
		t.Fatalf("profile is not JSON: %v", err)
	}
	if p["name"] != "Benjamin Namo" {
		t.Errorf("name = %v", p["name"])
	}
}

func TestNewMCPServer_Registers(t *testing.T) {
	s := NewMCPServer(newTestMCPDeps(t, &stubGenerator{}))
	if s == nil {
		t.Fatal("NewMCPServer returned nil")
	}
}
