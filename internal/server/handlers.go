package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/captmoose/internal/chat"
	"github.com/ironsheep/captmoose/internal/imaging"
	"github.com/ironsheep/captmoose/internal/logging"
	"github.com/ironsheep/captmoose/internal/moose"
	"github.com/ironsheep/captmoose/internal/store"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "moose_get", "moose_png").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ErrorData is the data of a failed tool call that has a known cause.
// Kind is a moose error kind ("dimension", "invalid_color", "empty_grid",
// "decode_range") or a store error kind ("not_found", "exists",
// "invalid_name").
type ErrorData struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		logging.Debug("Server", "Tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", errorData(err))
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "moose_palette":
		return s.handlePalette()

	// Core Operations
	case "moose_validate":
		return s.handleValidate(args)
	case "moose_fill":
		return s.handleFill(args)
	case "moose_encode":
		return s.handleEncode(args)
	case "moose_decode":
		return s.handleDecode(args)
	case "moose_trim":
		return s.handleTrim(args)
	case "moose_irc":
		return s.handleIRC(ctx, args)

	// Storage
	case "moose_get":
		return s.handleGet(ctx, args)
	case "moose_save":
		return s.handleSave(ctx, args)
	case "moose_random":
		return s.store.Random(ctx)
	case "moose_latest":
		return s.handleLatest(ctx, args)

	// Canvas
	case "moose_png":
		return s.handlePNG(ctx, args)
	case "moose_import":
		return s.handleImport(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// errorData classifies err for the error response. Unclassified errors are
// reported as their message.
func errorData(err error) interface{} {
	var me *moose.Error
	if errors.As(err, &me) {
		return ErrorData{Kind: string(me.Kind), Detail: me.Detail}
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrorData{Kind: "not_found", Detail: err.Error()}
	case errors.Is(err, store.ErrExists):
		return ErrorData{Kind: "exists", Detail: err.Error()}
	case errors.Is(err, store.ErrInvalidName):
		return ErrorData{Kind: "invalid_name", Detail: err.Error()}
	}
	return err.Error()
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Definition ===

type paletteResult struct {
	Height   int                  `json:"height"`
	Width    int                  `json:"width"`
	Swatches []imaging.SwatchInfo `json:"swatches"`
}

func (s *Server) handlePalette() (interface{}, error) {
	return &paletteResult{
		Height:   s.def.Height,
		Width:    s.def.Width,
		Swatches: s.swatches.Describe(),
	}, nil
}

// === Core Operation Handlers ===

type mooseArgs struct {
	Moose [][]string `json:"moose"`
}

type mooseResult struct {
	Moose *moose.Grid `json:"moose"`
}

func (s *Server) handleValidate(args json.RawMessage) (interface{}, error) {
	var a mooseArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.def.Validate(a.Moose)
	if err != nil {
		return nil, err
	}
	return &mooseResult{Moose: g}, nil
}

type fillArgs struct {
	Moose [][]string `json:"moose"`
	X     int        `json:"x"`
	Y     int        `json:"y"`
	Color string     `json:"color"`
}

type cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type fillResult struct {
	Moose  *moose.Grid `json:"moose"`
	Filled []cell      `json:"filled"`
}

func (s *Server) handleFill(args json.RawMessage) (interface{}, error) {
	var a fillArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.def.Validate(a.Moose)
	if err != nil {
		return nil, err
	}
	c, ok := s.def.Palette.IndexOf(a.Color)
	if !ok {
		return nil, &moose.Error{Kind: moose.InvalidColorError, Detail: fmt.Sprintf("%q is not a palette colour", a.Color)}
	}

	points, err := moose.FloodFill(g, a.X, a.Y, c)
	if err != nil {
		return nil, err
	}
	filled := make([]cell, len(points))
	for i, p := range points {
		filled[i] = cell{X: p.X, Y: p.Y}
	}
	return &fillResult{Moose: g, Filled: filled}, nil
}

type encodeResult struct {
	Image moose.Artifact `json:"image"`
}

func (s *Server) handleEncode(args json.RawMessage) (interface{}, error) {
	var a mooseArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.def.Validate(a.Moose)
	if err != nil {
		return nil, err
	}
	art, err := s.def.Encode(g)
	if err != nil {
		return nil, err
	}
	return &encodeResult{Image: art}, nil
}

type decodeImageArgs struct {
	Image moose.Artifact `json:"image"`
}

func (s *Server) handleDecode(args json.RawMessage) (interface{}, error) {
	var a decodeImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.def.Decode(a.Image)
	if err != nil {
		return nil, err
	}
	return &mooseResult{Moose: g}, nil
}

type trimArgs struct {
	Moose  [][]string `json:"moose"`
	Legacy *bool      `json:"legacy"`
}

type bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type trimResult struct {
	Moose  [][]string `json:"moose"`
	Bounds bounds     `json:"bounds"`
	Ragged bool       `json:"ragged"`
}

func (s *Server) handleTrim(args json.RawMessage) (interface{}, error) {
	var a trimArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.def.Validate(a.Moose)
	if err != nil {
		return nil, err
	}

	r, err := moose.ContentBounds(g)
	if err != nil {
		return nil, err
	}
	rows, err := s.trimmedRows(g, s.legacy(a.Legacy))
	if err != nil {
		return nil, err
	}

	names := make([][]string, len(rows))
	for y, row := range rows {
		names[y] = make([]string, len(row))
		for x, c := range row {
			names[y][x] = s.def.Palette.Name(c)
		}
	}
	return &trimResult{
		Moose:  names,
		Bounds: bounds{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()},
		Ragged: s.legacy(a.Legacy),
	}, nil
}

type ircArgs struct {
	Name   string     `json:"name"`
	Moose  [][]string `json:"moose"`
	Legacy *bool      `json:"legacy"`
}

type ircResult struct {
	Lines []string `json:"lines"`
	Plain []string `json:"plain"`
}

func (s *Server) handleIRC(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a ircArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.resolve(ctx, a.Name, a.Moose)
	if err != nil {
		return nil, err
	}
	rows, err := s.trimmedRows(g, s.legacy(a.Legacy))
	if err != nil {
		return nil, err
	}

	lines := chat.Strings(chat.RenderIRC(s.def.Palette, rows))
	plain := make([]string, len(lines))
	for i, l := range lines {
		plain[i] = chat.StripFormatting(l)
	}
	return &ircResult{Lines: lines, Plain: plain}, nil
}

// === Storage Handlers ===

type nameArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleGet(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a nameArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, strings.TrimSpace(a.Name))
}

type saveArgs struct {
	Name  string     `json:"name"`
	Moose [][]string `json:"moose"`
}

func (s *Server) handleSave(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a saveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(a.Name)
	if err := s.store.ValidateName(name); err != nil {
		return nil, err
	}
	g, err := s.def.Validate(a.Moose)
	if err != nil {
		return nil, err
	}
	return s.store.Create(ctx, name, g)
}

type latestArgs struct {
	Limit int `json:"limit"`
}

type latestResult struct {
	Moose []*store.Moose `json:"moose"`
	Total int            `json:"total"`
}

func (s *Server) handleLatest(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a latestArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Limit <= 0 || a.Limit > s.opts.LatestLimit {
		a.Limit = s.opts.LatestLimit
	}
	list, err := s.store.Latest(ctx, a.Limit)
	if err != nil {
		return nil, err
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &latestResult{Moose: list, Total: total}, nil
}

// === Canvas Handlers ===

type pngArgs struct {
	Name  string     `json:"name"`
	Moose [][]string `json:"moose"`
	Trim  bool       `json:"trim"`
	Grid  bool       `json:"grid"`
	Scale int        `json:"scale"`
}

func (s *Server) handlePNG(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pngArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1
	}
	g, err := s.resolve(ctx, a.Name, a.Moose)
	if err != nil {
		return nil, err
	}

	opts := s.opts.Canvas
	opts.Trim = a.Trim
	opts.Grid = a.Grid
	opts.Scale = a.Scale
	return imaging.RenderPNG(g, opts)
}

type importArgs struct {
	ImageBase64 string `json:"image_base64"`
	Name        string `json:"name"`
}

// handleImport quantises a picture onto the palette. With a name the result
// is also stored.
func (s *Server) handleImport(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a importArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.ImageBase64 == "" {
		return nil, fmt.Errorf("image_base64 is required")
	}
	name := strings.TrimSpace(a.Name)
	if name != "" {
		if err := s.store.ValidateName(name); err != nil {
			return nil, err
		}
	}

	img, err := imaging.DecodeImage(base64.NewDecoder(base64.StdEncoding, strings.NewReader(a.ImageBase64)))
	if err != nil {
		return nil, err
	}
	g, err := imaging.Quantize(s.def, img)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return &mooseResult{Moose: g}, nil
	}
	return s.store.Create(ctx, name, g)
}

// === Helpers ===

// resolve returns the stored moose called name, or else validates raw.
func (s *Server) resolve(ctx context.Context, name string, raw [][]string) (*moose.Grid, error) {
	if name = strings.TrimSpace(name); name != "" {
		m, err := s.store.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		return m.Grid, nil
	}
	if raw == nil {
		return nil, fmt.Errorf("either name or moose is required")
	}
	return s.def.Validate(raw)
}

func (s *Server) legacy(override *bool) bool {
	if override != nil {
		return *override
	}
	return s.opts.LegacyTrim
}

func (s *Server) trimmedRows(g *moose.Grid, legacy bool) ([][]moose.Color, error) {
	if legacy {
		return moose.TrimRagged(g)
	}
	t, err := moose.Trim(g)
	if err != nil {
		return nil, err
	}
	return t.Rows(), nil
}
