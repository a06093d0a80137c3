package worldsim

import "math"

// mooreOffsets lists the eight Moore-neighborhood offsets in a stable,
// implementation-defined order (top row left-to-right, middle row, bottom
// row), matching mad-ca's own double-loop neighbor scans.
var mooreOffsets = [8]Point{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Grid stores the 2D array of cells in row-major order, generalizing
// mad-ca's flat ByteGrid from a single uint8 per cell to a full Cell.
type Grid struct {
	W, H  int
	cells []Cell
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Grid{W: w, H: h, cells: make([]Cell, w*h)}
}

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns a pointer to the cell at (x, y). Callers must check InBounds
// first; At does not bounds-check.
func (g *Grid) At(x, y int) *Cell { return &g.cells[g.Index(x, y)] }

// Cells exposes the backing slice for bulk iteration.
func (g *Grid) Cells() []Cell { return g.cells }

// Center returns the grid's logical origin, (width/2, height/2).
func (g *Grid) Center() (float64, float64) {
	return float64(g.W) / 2, float64(g.H) / 2
}

// DistanceToCenter returns the Euclidean distance from the center of cell
// (x, y) to the grid's logical origin.
func (g *Grid) DistanceToCenter(x, y int) float64 {
	cx, cy := g.Center()
	dx := float64(x) + 0.5 - cx
	dy := float64(y) + 0.5 - cy
	return math.Hypot(dx, dy)
}

// Angle returns the polar angle, in [0, 2*pi), of cell (x, y) relative to
// the grid's logical origin.
func (g *Grid) Angle(x, y int) float64 {
	cx, cy := g.Center()
	dx := float64(x) + 0.5 - cx
	dy := float64(y) + 0.5 - cy
	a := math.Atan2(dy, dx)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// NeighborCell names one Moore-neighbor result: its coordinates and a
// pointer into the grid's backing storage.
type NeighborCell struct {
	X, Y int
	Cell *Cell
}

// Neighbors returns the in-bounds cells among the eight Moore offsets
// around (x, y). When includeVoid is false, cells with Exists=false are
// filtered out. The grid has no wrap-around; edge cells yield fewer than
// eight neighbors. buf is reused (and must not be retained across calls)
// to avoid an allocation per query in the hot per-tick sweeps.
func (g *Grid) Neighbors(x, y int, includeVoid bool, buf []NeighborCell) []NeighborCell {
	buf = buf[:0]
	for _, o := range mooreOffsets {
		nx, ny := x+o.X, y+o.Y
		if !g.InBounds(nx, ny) {
			continue
		}
		c := g.At(nx, ny)
		if !includeVoid && !c.Exists {
			continue
		}
		buf = append(buf, NeighborCell{X: nx, Y: ny, Cell: c})
	}
	return buf
}
