package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/captmoose/internal/imaging"
	"github.com/ironsheep/captmoose/internal/logging"
	"github.com/ironsheep/captmoose/internal/moose"
	"github.com/ironsheep/captmoose/internal/store"
)

// Server handles MCP protocol communication
type Server struct {
	def      *moose.Def
	store    *store.Store
	swatches *imaging.Swatches
	opts     Options
}

// Options configures a Server.
type Options struct {
	// Canvas is used by moose_png unless the call overrides it.
	Canvas imaging.Options

	// LatestLimit caps moose_latest. Values below 1 mean 10.
	LatestLimit int

	// LegacyTrim makes moose_trim and moose_irc use the ragged crop by default.
	LegacyTrim bool

	Version string
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server backed by st. Every moose it accepts or returns
// uses the store's definition.
func New(st *store.Store, opts Options) (*Server, error) {
	swatches, err := imaging.NewSwatches(st.Def().Palette)
	if err != nil {
		return nil, err
	}
	if opts.LatestLimit < 1 {
		opts.LatestLimit = 10
	}
	if opts.Canvas.CellWidth < 1 || opts.Canvas.CellHeight < 1 {
		opts.Canvas = imaging.DefaultOptions()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Server{
		def:      st.Def(),
		store:    st,
		swatches: swatches,
		opts:     opts,
	}, nil
}

// Run serves requests from stdin and writes responses to stdout until
// stdin is closed or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes each
// response as one line to w.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			logging.Warn("Server", "Failed to parse request: %v", err)
			if err := encoder.Encode(s.errorResponse(nil, -32700, "Parse error", err.Error())); err != nil {
				logging.Error("Server", err, "Failed to encode response")
			}
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				logging.Error("Server", err, "Failed to encode response")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	logging.Debug("Server", "Request %v: %s", req.ID, req.Method)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "captmoose",
				"version": s.opts.Version,
			},
		},
	}
}
