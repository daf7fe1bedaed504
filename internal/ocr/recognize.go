package ocr

import (
	"context"
	"fmt"
	"image"
	"log"
	"runtime"
	"sync"

	"github.com/konko2/letters-recognition/internal/detection"
	"github.com/konko2/letters-recognition/internal/imaging"
)

// Options configures Recognize.
type Options struct {
	// Workers is the number of instances classified in parallel.
	// Zero or less means runtime.NumCPU().
	Workers int
}

// Bounds is an instance bounding box in image coordinates.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BoundsOf returns the bounding box of inst.
func BoundsOf(inst detection.Instance) Bounds {
	return Bounds{X: inst.Start.X, Y: inst.Start.Y, Width: inst.Size.W, Height: inst.Size.H}
}

// Rect converts b to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Recognition is the result for one instance of an image.
type Recognition struct {
	// Index is the position of the instance in segmentation order.
	Index int `json:"index"`

	// Bounds is the instance bounding box.
	Bounds Bounds `json:"bounds"`

	Result

	// Err is set when classification of this instance failed.
	Err string `json:"error,omitempty"`
}

// Report is the result of recognizing a whole image.
type Report struct {
	// Threshold is the Otsu threshold used to binarize the image.
	Threshold uint8 `json:"threshold"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// Letters holds one entry per instance, ordered top to bottom, then
	// left to right.
	Letters []Recognition `json:"letters"`
}

// Text returns the recognized letters in report order, skipping None.
func (r *Report) Text() string {
	var out []byte
	for _, l := range r.Letters {
		if l.Recognized {
			out = append(out, l.Letter...)
		}
	}
	return string(out)
}

// Annotations returns one annotation per recognized instance.
func (r *Report) Annotations() []imaging.Annotation {
	var out []imaging.Annotation
	for _, l := range r.Letters {
		if l.Recognized {
			out = append(out, imaging.Annotation{Bounds: l.Bounds.Rect(), Label: l.Letter})
		}
	}
	return out
}

// Segment binarizes img, grows the ink by one pixel and splits it into
// instances.
func Segment(img image.Image) (*imaging.Bitmap, []detection.Instance) {
	bm := imaging.ExpandInk(imaging.Binarize(img))
	return bm, detection.Segment(bm)
}

// Recognize finds and classifies every instance in img.
//
// Dispatch stops when ctx is cancelled and the context error is returned.
func Recognize(ctx context.Context, img image.Image, opts Options) (*Report, error) {
	bm, instances := Segment(img)

	letters, err := ClassifyAll(ctx, instances, opts)
	if err != nil {
		return nil, err
	}
	return &Report{
		Threshold: bm.Threshold,
		Width:     bm.Width,
		Height:    bm.Height,
		Letters:   letters,
	}, nil
}

// ClassifyAll classifies instances on a pool of workers and returns the
// results in input order.
//
// Parameters:
//   - ctx: cancellation stops dispatching further instances; instances already
//     handed to a worker finish
//   - instances: the regions to classify, typically from Segment
//   - opts: Workers bounds the pool size; zero or less selects runtime.NumCPU
//
// Each instance is isolated: a classification error or a panic marks only
// that Recognition, with Letter None and Err set, and is logged.
//
// # Errors
//
//   - Returns ctx.Err() when the context is cancelled before every instance
//     was dispatched; partial results are discarded
func ClassifyAll(ctx context.Context, instances []detection.Instance, opts Options) ([]Recognition, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(instances) {
		workers = len(instances)
	}

	results := make([]Recognition, len(instances))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = classifyOne(i, instances[i])
			}
		}()
	}

	var err error
dispatch:
	for i := range instances {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}

func classifyOne(index int, inst detection.Instance) (rec Recognition) {
	rec = Recognition{Index: index, Bounds: BoundsOf(inst)}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Classification of instance %d at (%d,%d) failed: %v", index, inst.Start.X, inst.Start.Y, r)
			rec.Result = Result{Letter: None}
			rec.Err = fmt.Sprint(r)
		}
	}()
	res, err := classify(inst)
	rec.Result = res
	if err != nil {
		log.Printf("Classification of instance %d at (%d,%d) failed: %v", index, inst.Start.X, inst.Start.Y, err)
		rec.Err = err.Error()
	}
	return rec
}

// classify is replaced in tests to exercise panic isolation.
var classify = Classify
