package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shooter/geom"
)

// cellEntry is an entity and the rect it was inserted with.
type cellEntry struct {
	E    ecs.Entity
	Rect geom.Rect
}

// SpatialGrid buckets entity rects into fixed-size cells for broad-phase
// overlap queries. A rect is inserted into every cell it covers; positions
// outside the world are clamped into the border cells.
type SpatialGrid struct {
	cellSize int
	cols     int
	rows     int
	cells    [][]cellEntry
	seen     map[ecs.Entity]struct{}
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize int) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := width/cellSize + 1
	rows := height/cellSize + 1

	cells := make([][]cellEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]cellEntry, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
		seen:     make(map[ecs.Entity]struct{}),
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to every cell its rect covers. Empty rects are ignored.
func (g *SpatialGrid) Insert(e ecs.Entity, r geom.Rect) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	c0, r0, c1, r1 := g.span(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			idx := row*g.cols + col
			g.cells[idx] = append(g.cells[idx], cellEntry{E: e, Rect: r})
		}
	}
}

// QueryInto appends every inserted entity whose rect overlaps r to dst, each
// at most once, and returns the updated slice.
func (g *SpatialGrid) QueryInto(dst []ecs.Entity, r geom.Rect) []ecs.Entity {
	if r.W <= 0 || r.H <= 0 {
		return dst
	}
	clear(g.seen)

	c0, r0, c1, r1 := g.span(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, entry := range g.cells[row*g.cols+col] {
				if _, ok := g.seen[entry.E]; ok {
					continue
				}
				if geom.Overlaps(r, entry.Rect) {
					g.seen[entry.E] = struct{}{}
					dst = append(dst, entry.E)
				}
			}
		}
	}
	return dst
}

// span returns the clamped cell range covered by r.
func (g *SpatialGrid) span(r geom.Rect) (c0, r0, c1, r1 int) {
	c0 = clampInt(floorDiv(r.X, g.cellSize), 0, g.cols-1)
	c1 = clampInt(floorDiv(r.X+r.W-1, g.cellSize), 0, g.cols-1)
	r0 = clampInt(floorDiv(r.Y, g.cellSize), 0, g.rows-1)
	r1 = clampInt(floorDiv(r.Y+r.H-1, g.cellSize), 0, g.rows-1)
	return
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
