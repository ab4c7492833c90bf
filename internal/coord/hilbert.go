package coord

import "sort"

// hilbertIndex maps (x, y) on an n x n grid to its distance along the
// Hilbert curve. n must be a power of two.
func hilbertIndex(x, y, n uint64) uint64 {
	var d uint64
	for s := n / 2; s > 0; s /= 2 {
		var rx, ry uint64
		if x&s != 0 {
			rx = 1
		}
		if y&s != 0 {
			ry = 1
		}
		d += s * s * ((3 * rx) ^ ry)
		if ry == 0 {
			if rx == 1 {
				x = n - 1 - x
				y = n - 1 - y
			}
			x, y = y, x
		}
	}
	return d
}

// SortTilesHilbert orders tiles [z, x, y] of one zoom level along a Hilbert
// curve so that neighbours in the list are neighbours on the map.
//
// Baidu tile indices are signed, so the curve is laid over the bounding
// box of the input rather than the whole zoom level.
func SortTilesHilbert(tiles [][3]int) {
	if len(tiles) <= 1 {
		return
	}
	minX, minY := tiles[0][1], tiles[0][2]
	maxX, maxY := minX, minY
	for _, t := range tiles[1:] {
		minX, maxX = min(minX, t[1]), max(maxX, t[1])
		minY, maxY = min(minY, t[2]), max(maxY, t[2])
	}
	n := uint64(1)
	for n < uint64(max(maxX-minX, maxY-minY)+1) {
		n <<= 1
	}

	keys := make([]uint64, len(tiles))
	for i, t := range tiles {
		keys[i] = hilbertIndex(uint64(t[1]-minX), uint64(t[2]-minY), n)
	}
	sort.Sort(byHilbert{tiles: tiles, keys: keys})
}

type byHilbert struct {
	tiles [][3]int
	keys  []uint64
}

func (s byHilbert) Len() int           { return len(s.tiles) }
func (s byHilbert) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s byHilbert) Swap(i, j int) {
	s.tiles[i], s.tiles[j] = s.tiles[j], s.tiles[i]
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
}
