package atlas

import (
	"image"
	"sort"
)

// maxCanvas bounds the double-and-restart loop. A canvas this large means
// the glyph set cannot be baked.
const maxCanvas = 1 << 14

// Pack places rectangles of the given sizes onto a square power-of-two
// canvas using shelf packing. Rectangles are placed tallest first (ties
// keep input order), each shelf as tall as its first occupant. If a size
// does not fit, the canvas doubles and packing restarts. It returns the
// placements, parallel to sizes, and the final canvas edge.
func Pack(sizes []image.Point) ([]image.Point, int, error) {
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sizes[order[a]].Y > sizes[order[b]].Y
	})

	canvas := 1
	for _, s := range sizes {
		for canvas < s.X || canvas < s.Y {
			canvas *= 2
		}
	}

	pos := make([]image.Point, len(sizes))
restart:
	for {
		if canvas > maxCanvas {
			return nil, 0, ErrAtlasOverflow
		}
		x, y, shelf := 0, 0, 0
		for _, i := range order {
			s := sizes[i]
			if x+s.X > canvas {
				// next shelf
				y += shelf
				x, shelf = 0, 0
			}
			if s.Y > shelf {
				shelf = s.Y
			}
			if y+shelf > canvas {
				canvas *= 2
				continue restart
			}
			pos[i] = image.Point{X: x, Y: y}
			x += s.X
		}
		return pos, canvas, nil
	}
}
