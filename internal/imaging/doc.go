// Package imaging paints moose onto raster images and turns pictures back
// into moose.
//
// It is the editor-facing boundary of captmoose: the web editor paints a
// moose as a canvas of solid cells, and this package produces the same
// picture as a PNG. All operations work with standard Go image.Image types
// and the usual coordinate system where (0,0) is the top-left corner, X
// increases rightward and Y increases downward.
//
// # Painting
//
// Render draws one CellWidth x CellHeight block per cell. Transparent
// cells stay transparent, so exports can be placed over any background.
// Optional cell borders match the editor grid. With Trim set the canvas is
// cropped to moose.ContentBounds before any upscaling.
//
// # Importing
//
// Quantize scales a picture to the moose size and maps every pixel to the
// nearest palette swatch, measured in CIE L*a*b* so that the match follows
// perceived colour rather than raw RGB distance.
//
// # Thread Safety
//
// Swatches is immutable after NewSwatches returns. Every other function is
// stateless and can be called concurrently.
package imaging
