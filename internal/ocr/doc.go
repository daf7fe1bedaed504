// Package ocr recognizes the letters A through J by matching stroke features
// against a fixed table of letter signatures.
//
// A letter signature is a partial pattern: it names the features that must
// be present and the ones that must be absent, and ignores the rest. The
// table is ordered and the first signature consistent with an instance's
// feature vector wins. No two signatures agree on every feature they share,
// so for any feature vector the letter does not depend on that order beyond
// the first match rule.
//
// # Classification
//
// Classify applies, in order:
//
//  1. Guard rails: instances smaller than 10 pixels on a side, or with a
//     height to width ratio outside (0.3, 5), are not letters.
//  2. Rescaling: instances larger than 100 pixels on a side are redrawn at
//     100 pixels on their longer side so feature cost stays bounded.
//  3. Feature evaluation over the whole catalog.
//  4. First-match lookup in the signature table.
//
// An instance that fails any step is reported as None. That is a normal
// outcome, not an error.
//
// # Whole images
//
// Recognize binarizes an image, grows its ink by one pixel, segments it and
// classifies every instance on a pool of workers. A panic while classifying
// one instance is recovered and reported on that instance only.
package ocr
