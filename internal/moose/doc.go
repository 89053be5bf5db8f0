// Package moose implements the raster model shared by the editor, the JSON
// tool server and the chat renderer.
//
// A moose is a small fixed-size picture whose cells hold colours from an
// ordered palette. The package provides the grid type, the validation of
// untrusted input, the bucket (flood) fill, the compact palette-index codec
// used for storage and the trim used before rendering into text.
//
// # Coordinate System
//
// Cells are addressed as (x, y) with (0,0) in the top-left corner:
//   - X: column, 0 to Width-1
//   - Y: row, 0 to Height-1
//
// Grids are stored row-major, which is also the order of an encoded
// Artifact.
//
// # Palette Order
//
// The position of a swatch in the palette is the integer stored in an
// Artifact. Re-ordering the palette changes the meaning of every stored
// artifact and is not detected by Decode: the colours silently shift.
// Deployments that change the palette must version their stored data.
//
// # Thread Safety
//
// Palette and Def are immutable and safe to share. A Grid is a plain value
// with no locking; exactly one writer may mutate a grid at a time and
// callers that share grids across goroutines must serialise access.
//
// # Error Handling
//
// All failures are reported as *Error values whose Kind is one of
// DimensionError, InvalidColorError, EmptyGridError or DecodeRangeError.
// Use errors.Is with ErrDimension, ErrInvalidColor, ErrEmptyGrid or
// ErrDecodeRange to test for a kind.
package moose
