// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes QuickNote tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/quicknote/internal/apperr"
	"github.com/starford/quicknote/internal/noteservice"
)

// ShareFormatURI is the resource describing the share payload.
const ShareFormatURI = "quicknote://share-format"

// ShareFormat documents the text produced by share_note.
const ShareFormat = `# Share payload

Sharing a note produces plain text:

    <note text>
    (blank line)
     Create on : <Mon, 02 Jan 2006 at 03:04 PM>
      By :<app name>

The date is the note's last save time in the configured time zone.
`

// Server wraps the MCP server with QuickNote tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all QuickNote tools registered.
func New(svc *noteservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"QuickNote",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes in insertion order with their ids and last save date."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full text of a note."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new plain-text note. Empty text is ignored."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Note text")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Replace the text of an existing note. Empty text leaves it unchanged."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("text", mcp.Required(), mcp.Description("New note text")),
	), s.updateNote)

	s.mcp.AddTool(mcp.NewTool("delete_notes",
		mcp.WithDescription("Delete notes by id. Unknown ids are ignored."),
		mcp.WithArray("ids", mcp.Required(), mcp.Description("Note ids"),
			mcp.Items(map[string]any{"type": "number"})),
	), s.deleteNotes)

	s.mcp.AddTool(mcp.NewTool("share_note",
		mcp.WithDescription("Return the share text of a note. See the "+ShareFormatURI+" resource."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
	), s.shareNote)

	s.mcp.AddResource(
		mcp.NewResource(ShareFormatURI, "Share Format",
			mcp.WithResourceDescription("Layout of the text produced when a note is shared."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readShareFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func toolError(err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError("note not found")
	}
	return mcp.NewToolResultError(err.Error())
}

func requireID(req mcp.CallToolRequest) (int64, error) {
	v, err := req.RequireFloat("id")
	if err != nil {
		return 0, err
	}
	if v < 1 || v != float64(int64(v)) {
		return 0, fmt.Errorf("id must be a positive integer, got %v", v)
	}
	return int64(v), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(s.svc.Screen().Items, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.svc.GetNote(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(n.Text), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.svc.CreateNote(ctx, text)
	if err != nil {
		return toolError(err), nil
	}
	if n == nil {
		return mcp.NewToolResultText("nothing saved: text is empty"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %d", n.ID)), nil
}

func (s *Server) updateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	_, saved, err := s.svc.UpdateNote(ctx, id, text, "")
	if err != nil {
		return toolError(err), nil
	}
	if !saved {
		return mcp.NewToolResultText("nothing saved: text is empty"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated: %d", id)), nil
}

func (s *Server) deleteNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["ids"].([]any)
	if !ok {
		return mcp.NewToolResultError("ids must be an array of numbers"), nil
	}
	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		f, ok := v.(float64)
		if !ok || f != float64(int64(f)) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid id: %v", v)), nil
		}
		ids = append(ids, int64(f))
	}
	if err := s.svc.DeleteNotes(ctx, ids...); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d Note(s) Delete successfully !", len(ids))), nil
}

func (s *Server) shareNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := s.svc.ShareNote(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) readShareFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ShareFormatURI,
			MIMEType: "text/markdown",
			Text:     ShareFormat,
		},
	}, nil
}
