// Package imaging provides the raster side of letter recognition.
//
// It loads and caches source images, binarizes them with an Otsu threshold
// over BT.601 luma, grows ink by one pixel, and renders the diagnostic and
// annotated output images. All operations use a coordinate system where
// (0,0) is the top-left corner, X increases rightward and Y increases
// downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive (top-left) and Max is exclusive (bottom-right)
//
// Bitmaps and images produced here always start at (0,0), even when the
// source image bounds do not.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Bitmap values are not; a
// Bitmap that is only read may be shared between goroutines.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Regions outside image bounds
//   - File I/O errors during image loading or saving
//   - Unparseable font files
package imaging
