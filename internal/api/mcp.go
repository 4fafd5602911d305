package api

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/benjaminnamo/portfolio-chatbot/internal/profile"
	"github.com/benjaminnamo/portfolio-chatbot/internal/session"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Profile   *profile.Store
	Generator session.Generator
	Version   string
}

// NewMCPServer creates an MCP server exposing the portfolio assistant to
// MCP clients.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	name := deps.Profile.Get().FirstName()

	s := server.NewMCPServer(
		"folio",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("folio answers questions about "+name+"'s background, experience, projects, and skills."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ask_portfolio",
			mcp.WithDescription("Ask a question about "+name+"'s portfolio. Answers are short plain text."),
			mcp.WithString("question", mcp.Description("The question to ask"), mcp.Required()),
		),
		mcpAskPortfolio(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"portfolio://profile",
			"Portfolio Profile",
			mcp.WithResourceDescription("The profile the assistant answers from, as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceProfile(deps),
	)

	return s
}

func mcpAskPortfolio(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil {
			return mcpError("question is required"), nil
		}
		question = strings.TrimSpace(question)
		if question == "" {
			return mcpError("question is required"), nil
		}

		return mcpText(deps.Generator.Generate(ctx, question)), nil
	}
}

func mcpResourceProfile(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     deps.Profile.Snapshot(),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
