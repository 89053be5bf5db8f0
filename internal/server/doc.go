// Package server implements the MCP (Model Context Protocol) server for
// captmoose.
//
// This package provides a JSON-RPC 2.0 server that exposes the moose core
// and store as MCP tools, so an editor front end or an MCP client can
// validate, paint, store and render moose.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Definition:
//   - moose_palette: Size and palette
//
// Core Operations:
//   - moose_validate: Check a moose against the size and palette
//   - moose_fill: Paint bucket
//   - moose_encode: Rows of names to palette indices
//   - moose_decode: Palette indices to rows of names
//   - moose_trim: Crop to painted cells
//   - moose_irc: Chat lines with mIRC colour codes
//
// Storage:
//   - moose_get, moose_save, moose_random, moose_latest
//
// Canvas:
//   - moose_png: Paint as PNG
//   - moose_import: Quantise a picture onto the palette, optionally storing it
//
// A moose travels as rows of palette colour names, top row first.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with
// code -32000. When the cause is known the data is an object
// {"kind": ..., "detail": ...}; otherwise it is the error string.
// Malformed lines get a -32700 parse error with a null id.
//
// # Usage
//
//	srv, err := server.New(st, server.Options{Canvas: imaging.DefaultOptions()})
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
