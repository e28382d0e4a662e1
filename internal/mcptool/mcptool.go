// Package mcptool exposes the protocol engine as MCP tools.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/engine"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/protocol"
)

const (
	ToolExecute  = "protocol_execute"
	ToolStatus   = "protocol_status"
	ToolConverse = "protocol_converse"
)

// #region tools
// Tools holds the handlers bound to one queue.
type Tools struct {
	queue     *engine.Queue
	responder engine.Responder
}

// NewServer builds an MCP server with the protocol tools registered.
func NewServer(q *engine.Queue, responder engine.Responder) *server.MCPServer {
	s := server.NewMCPServer("hecatestia", protocol.Version)
	Register(s, &Tools{queue: q, responder: responder})
	return s
}

// Register adds the tools to s. protocol_converse is only added when a
// responder is configured.
func Register(s *server.MCPServer, t *Tools) {
	s.AddTool(mcp.NewTool(ToolExecute,
		mcp.WithDescription("Runs one protocol input (command code, name, number or key) and returns the response record as JSON."),
		mcp.WithString("entrada", mcp.Required(), mcp.Description("Input line, e.g. RA, HEC, 06 or [15·13·18·5·18·1]")),
	), t.executeHandler)

	s.AddTool(mcp.NewTool(ToolStatus,
		mcp.WithDescription("Returns the session summary: level, XP, current acta and counters."),
	), t.statusHandler)

	if t.responder != nil {
		s.AddTool(mcp.NewTool(ToolConverse,
			mcp.WithDescription("Asks Testiateria a free-form question."),
			mcp.WithString("pregunta", mcp.Required(), mcp.Description("Question text")),
		), t.converseHandler)
	}
}
// #endregion tools

// #region handlers
func (t *Tools) executeHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Invalid args"), nil
	}
	input, _ := args["entrada"].(string)

	resp, err := t.queue.Submit(ctx, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Execute failed: %v", err)), nil
	}
	return jsonResult(resp)
}

func (t *Tools) statusHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := t.queue.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Status failed: %v", err)), nil
	}
	return jsonResult(st.Summary())
}

func (t *Tools) converseHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Invalid args"), nil
	}
	question, _ := args["pregunta"].(string)

	resp, err := t.queue.Converse(ctx, question, t.responder)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Converse failed: %v", err)), nil
	}
	return jsonResult(resp)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
// #endregion handlers

// #region serve
// ServeStdio runs the MCP server on stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
// #endregion serve
