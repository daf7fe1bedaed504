// Package detection turns a binarized raster into glyph instances and answers
// yes/no questions about the strokes each instance contains.
//
// # Segmentation
//
// Segment partitions the ink of a Bitmap into 8-connected components. Every
// component becomes an Instance whose pixels are translated so that its
// bounding box starts at (0, 0). No component is discarded for being small;
// size policy belongs to the classifier.
//
// # Features
//
// A feature is an idealized template outline (a vertical stroke, a belly, a
// chevron) scaled to the instance bounding box, together with a tolerance
// window. The instance has the feature when every template pixel has ink
// somewhere inside its window. The test is one-sided: ink that lies away from
// the template never counts against it.
//
// The catalog is a fixed, ordered table. Catalog returns the names in that
// order and FindFeatures evaluates all of them.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Instance pixels are in the instance frame; Instance.Start places that frame
// in the source image.
package detection
