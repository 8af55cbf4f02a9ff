// ABOUTME: MCP server exposing prompt enhancement as a boost_prompt tool
// ABOUTME: Speaks JSON-RPC 2.0 over stdin/stdout, one message per line

package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/promptboost/promptboost/internal/log"
)

// Generous line limit; prompts arrive as a single JSON-RPC line.
const maxLineBytes = 10 * 1024 * 1024

const toolName = "boost_prompt"

const toolDescription = "Rewrite a prompt into a clearer, more effective version " +
	"using the configured model. Returns the enhanced prompt text."

var toolSchema = json.RawMessage(`{
	"type": "object",
	"required": ["prompt"],
	"properties": {
		"prompt": {"type": "string", "description": "The prompt text to enhance"}
	}
}`)

// BoostFunc runs one prompt enhancement. It returns the enhanced text, or an
// error describing why no enhancement was produced.
type BoostFunc func(ctx context.Context, prompt string) (string, error)

// Server exposes the boost workflow over MCP.
type Server struct {
	boost   BoostFunc
	version string
	reader  *bufio.Scanner
	writer  io.Writer
}

// NewServer creates a stdio MCP server backed by the given boost function.
func NewServer(version string, boost BoostFunc) *Server {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, maxLineBytes), maxLineBytes)

	return &Server{
		boost:   boost,
		version: version,
		reader:  scanner,
		writer:  os.Stdout,
	}
}

// Serve reads JSON-RPC messages from stdin and dispatches them until EOF.
func (s *Server) Serve(ctx context.Context) error {
	for s.reader.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := s.reader.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeError(0, -32700, "Parse error")
			continue
		}

		s.handleRequest(ctx, &req)
	}

	return s.reader.Err()
}

func (s *Server) handleRequest(ctx context.Context, req *Request) {
	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		s.handleToolsCall(ctx, req)
	case "resources/list":
		s.handleResourcesList(req)
	case "notifications/initialized":
		// ACK; no response needed
	default:
		s.writeError(req.ID, -32601, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (s *Server) handleInitialize(req *Request) {
	result := InitializeResult{
		ProtocolVersion: "2024-11-05",
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{},
		},
		ServerInfo: ServerInfo{
			Name:    "promptboost",
			Version: s.version,
		},
	}
	s.writeResult(req.ID, result)
}

func (s *Server) handleToolsList(req *Request) {
	tools := []Tool{{
		Name:        toolName,
		Description: toolDescription,
		InputSchema: toolSchema,
	}}
	s.writeResult(req.ID, map[string]any{"tools": tools})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(req.ID, -32602, "invalid params")
		return
	}

	if params.Name != toolName {
		s.writeError(req.ID, -32602, fmt.Sprintf("unknown tool: %s", params.Name))
		return
	}

	prompt, _ := params.Arguments["prompt"].(string)
	if strings.TrimSpace(prompt) == "" {
		s.writeError(req.ID, -32602, "prompt must be a non-empty string")
		return
	}

	log.Info("mcp: boost_prompt request (%d chars)", len(prompt))

	text, err := s.boost(ctx, prompt)
	if err != nil {
		// Tool failures travel in the result body, not as protocol errors,
		// so calling models see the reason.
		log.Warn("mcp: boost_prompt failed: %v", err)
		s.writeResult(req.ID, ToolCallResult{
			Content: []ContentItem{{Type: "text", Text: err.Error()}},
			IsError: true,
		})
		return
	}

	s.writeResult(req.ID, ToolCallResult{
		Content: []ContentItem{{Type: "text", Text: text}},
	})
}

func (s *Server) handleResourcesList(req *Request) {
	s.writeResult(req.ID, map[string]any{"resources": []Resource{}})
}

func (s *Server) writeResult(id int64, result any) {
	data, _ := json.Marshal(result)
	resp := Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Result:  data,
	}
	out, _ := json.Marshal(resp)
	fmt.Fprintf(s.writer, "%s\n", out)
}

func (s *Server) writeError(id int64, code int, message string) {
	resp := Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	}
	out, _ := json.Marshal(resp)
	fmt.Fprintf(s.writer, "%s\n", out)
}
