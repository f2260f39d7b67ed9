package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/saur-bh/resumebot/internal/pipeline"
	"github.com/saur-bh/resumebot/internal/profile"
	"github.com/saur-bh/resumebot/internal/storage"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Store     *storage.Store
	Profiles  *profile.Manager
	Responder *pipeline.Responder
}

// NewMCPServer creates an MCP server exposing the chatbot to agent clients:
// an ask tool backed by the same pipeline as the HTTP API, profile editing,
// data-source updates, and the profile as a readable resource.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"resumebot",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("resumebot is a portfolio chatbot answering questions about its owner's work, skills, and experience."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ask",
			mcp.WithDescription("Ask the portfolio chatbot a question and get the composed reply with attachments and follow-up suggestions."),
			mcp.WithString("message", mcp.Description("The question to ask"), mcp.Required()),
		),
		mcpAsk(deps),
	)

	s.AddTool(
		mcp.NewTool("update_profile_field",
			mcp.WithDescription("Update a single profile field (name, title, bio, skills, experience, projects, contact.email, contact.linkedin, contact.github)."),
			mcp.WithString("key", mcp.Description("Profile field key"), mcp.Required()),
			mcp.WithString("value", mcp.Description("Value to set"), mcp.Required()),
		),
		mcpUpdateProfileField(deps),
	)

	s.AddTool(
		mcp.NewTool("add_info",
			mcp.WithDescription("Append free text to a data section (resume, social_media, additional_info) used by AI answers."),
			mcp.WithString("section", mcp.Description("Target section, defaults to additional_info")),
			mcp.WithString("content", mcp.Description("The text to append"), mcp.Required()),
		),
		mcpAddInfo(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"bot://profile",
			"Profile",
			mcp.WithResourceDescription("Current profile as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceProfile(deps),
	)

	return s
}

func mcpAsk(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := req.RequireString("message")
		if err != nil {
			return mcpError("message is required"), nil
		}

		resp := deps.Responder.Respond(ctx, message, nil)

		b, err := json.Marshal(resp)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpUpdateProfileField(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := req.RequireString("key")
		if err != nil {
			return mcpError("key is required"), nil
		}
		value, err := req.RequireString("value")
		if err != nil {
			return mcpError("value is required"), nil
		}

		if err := deps.Profiles.SetField(key, value); err != nil {
			return mcpError(fmt.Sprintf("failed to set field: %v", err)), nil
		}

		return mcpText(fmt.Sprintf("Set %s = %s", key, value)), nil
	}
}

func mcpAddInfo(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := req.RequireString("content")
		if err != nil {
			return mcpError("content is required"), nil
		}

		section := req.GetString("section", storage.SectionAdditionalInfo)
		switch section {
		case storage.SectionResume, storage.SectionSocialMedia, storage.SectionAdditionalInfo:
		default:
			return mcpError(fmt.Sprintf("unknown section %q", section)), nil
		}

		if err := deps.Store.AppendSection(section, content); err != nil {
			return mcpError(fmt.Sprintf("failed to save: %v", err)), nil
		}

		return mcpText(fmt.Sprintf("Appended %d bytes to %s", len(content), section)), nil
	}
}

func mcpResourceProfile(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(deps.Profiles.Get())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal profile: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
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
