// Package geometry provides the integer pixel geometry used by letter
// recognition: pixel sets, tolerance windows and rasterized template shapes.
//
// # Coordinate System
//
// All coordinates are 0-based with the origin at the top-left corner of the
// current frame, which is either the source image or the local frame of a
// single glyph instance:
//   - X increases rightward
//   - Y increases downward
//   - Rasterized shapes include their bounding coordinates
//
// # Tolerance Windows
//
// A Tolerance describes how far from a template pixel ink may lie and still
// count as covering it. It is a tagged value with two variants:
//   - Radius(r): the diamond of pixels with |dx|+|dy| <= r
//   - Rect(rx, ry): the rectangle with |dx| <= rx and |dy| <= ry
//
// Locality materializes the window around a centre pixel. Pixels with a
// negative coordinate are dropped; no upper bound is applied, so callers that
// need one clip the window themselves.
//
// # Thread Safety
//
// PixelSet is a plain map and is not safe for concurrent mutation. Sets that
// are only read, such as the ink of a segmented instance, may be shared freely
// between goroutines.
package geometry
