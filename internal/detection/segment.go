package detection

import (
	"sort"

	"github.com/konko2/letters-recognition/internal/geometry"
	"github.com/konko2/letters-recognition/internal/imaging"
)

// neighbours are the eight offsets of 8-connectivity.
var neighbours = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Segment splits the ink of bm into 8-connected instances.
//
// Instances are returned sorted by the top, then the left edge of their
// bounding box.
func Segment(bm *imaging.Bitmap) []Instance {
	return SegmentPixels(bm.InkPixels())
}

// SegmentPixels splits an ink set given in image coordinates into
// 8-connected instances. The input set is not modified.
func SegmentPixels(ink geometry.PixelSet) []Instance {
	pool := make(geometry.PixelSet, ink.Len())
	for p := range ink {
		pool.Add(p)
	}

	var instances []Instance
	for _, seed := range ink.Points() {
		if !pool.Has(seed) {
			continue
		}
		inst, err := NewInstance(flood(pool, seed))
		if err != nil {
			// flood always returns at least the seed
			continue
		}
		instances = append(instances, inst)
	}

	sort.SliceStable(instances, func(a, b int) bool {
		sa, sb := instances[a].Start, instances[b].Start
		if sa.Y != sb.Y {
			return sa.Y < sb.Y
		}
		return sa.X < sb.X
	})
	return instances
}

// flood removes the component containing seed from pool and returns it.
func flood(pool geometry.PixelSet, seed geometry.Pixel) geometry.PixelSet {
	component := geometry.NewPixelSet(seed)
	delete(pool, seed)

	queue := []geometry.Pixel{seed}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range neighbours {
			n := p.Add(d[0], d[1])
			if !pool.Has(n) {
				continue
			}
			delete(pool, n)
			component.Add(n)
			queue = append(queue, n)
		}
	}
	return component
}
