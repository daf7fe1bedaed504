package ocr

import (
	"fmt"

	"github.com/konko2/letters-recognition/internal/detection"
	"github.com/konko2/letters-recognition/internal/imaging"
)

// None is the letter of an instance that was not recognized.
const None = "none"

const (
	minSide    = 10
	minAspect  = 0.3
	maxAspect  = 5.0
	targetSide = 100

	// rescaleCutoff is the luma below which a resized pixel is ink.
	rescaleCutoff = 130
)

// Result is the outcome of classifying one instance.
type Result struct {
	// Letter is the recognized letter, or None.
	Letter string `json:"letter"`

	// Recognized is false when Letter is None.
	Recognized bool `json:"recognized"`

	// Features is the vector the letter was matched on. Nil when the
	// instance was rejected before features were computed.
	Features detection.FeatureVector `json:"features,omitempty"`

	// Rescaled is true when features were computed on a reduced copy.
	Rescaled bool `json:"rescaled"`
}

// Eligible reports whether an instance of the given size can be a letter:
// both sides at least 10 pixels and height/width strictly between 0.3 and 5.
func Eligible(size detection.Size) bool {
	if size.Min() < minSide {
		return false
	}
	aspect := float64(size.H) / float64(size.W)
	return aspect > minAspect && aspect < maxAspect
}

// Rescale redraws inst at ratio times its size.
//
// The ink is painted black on a white canvas of the instance size, resized
// with a Lanczos filter and thresholded again: a resized pixel is ink when
// its luma is below 130. Each side becomes round(side * ratio), at least 1.
//
// Parameters:
//   - inst: the instance to redraw; it is not modified
//   - ratio: the scale factor, expected in (0, 1]
//
// Returns the redrawn instance, normalized to its new bounding box but
// keeping the original Start so it still maps to the same image region.
//
// # Errors
//
//   - Returns an error wrapping detection.ErrEmptyInstance when no resized
//     pixel is dark enough to stay ink (thin, sparse strokes on a large box)
func Rescale(inst detection.Instance, ratio float64) (detection.Instance, error) {
	bm := imaging.ScaleInk(inst.Pixels, inst.Size.W, inst.Size.H, ratio, rescaleCutoff)
	scaled, err := detection.NewInstance(bm.InkPixels())
	if err != nil {
		return detection.Instance{}, fmt.Errorf("failed to rescale %dx%d instance: %w", inst.Size.W, inst.Size.H, err)
	}
	scaled.Start = inst.Start
	return scaled, nil
}

// Prepare returns the instance features are evaluated on.
//
// Instances whose longer side is at most 100 pixels are returned unchanged.
// Larger ones are reduced with Rescale so that the longer side becomes 100,
// which keeps the fixed template tolerances meaningful and bounds the cost of
// feature evaluation.
//
// Parameters:
//   - inst: the instance to evaluate; it is not modified
//
// Returns the instance to evaluate and whether it was rescaled.
//
// # Errors
//
//   - Returns the Rescale error, with rescaled set to true, when the reduced
//     copy has no ink left
func Prepare(inst detection.Instance) (out detection.Instance, rescaled bool, err error) {
	ratio := float64(targetSide) / float64(inst.Size.Max())
	if ratio >= 1 {
		return inst, false, nil
	}
	scaled, err := Rescale(inst, ratio)
	if err != nil {
		return detection.Instance{}, true, err
	}
	return scaled, true, nil
}

// Classify recognizes one instance. It does not modify inst.
//
// Instances failing Eligible are rejected before any feature is computed.
// Otherwise the instance goes through Prepare, FindFeatures and Match, and
// the first letter in table order whose signature matches wins.
//
// Returns a Result whose Letter is None when nothing matched. Rejection by
// the guard rails and an unmatched vector are normal outcomes, not errors.
//
// # Errors
//
//   - Returns the Prepare error, together with a None result, when the
//     instance could not be rescaled
func Classify(inst detection.Instance) (Result, error) {
	if !Eligible(inst.Size) {
		return Result{Letter: None}, nil
	}

	inst, rescaled, err := Prepare(inst)
	if err != nil {
		return Result{Letter: None, Rescaled: rescaled}, err
	}

	features := detection.FindFeatures(inst)
	letter, ok := Match(features)
	return Result{
		Letter:     letter,
		Recognized: ok,
		Features:   features,
		Rescaled:   rescaled,
	}, nil
}
