package worldsim

import (
	"math"
	"testing"
)

func TestGridIndexRoundTrip(t *testing.T) {
	g := NewGrid(10, 6)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := g.Index(x, y)
			if idx < 0 || idx >= len(g.cells) {
				t.Fatalf("Index(%d,%d) = %d out of range", x, y, idx)
			}
		}
	}
}

func TestGridInBounds(t *testing.T) {
	g := NewGrid(4, 4)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{3, 3, true},
		{-1, 0, false},
		{4, 0, false},
		{0, 4, false},
	}
	for _, c := range cases {
		if got := g.InBounds(c.x, c.y); got != c.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestGridNeighborsNoWraparound(t *testing.T) {
	g := NewGrid(3, 3)
	ns := g.Neighbors(0, 0, true, nil)
	if len(ns) != 3 {
		t.Fatalf("corner cell should have 3 neighbors, got %d", len(ns))
	}
	ns = g.Neighbors(1, 1, true, nil)
	if len(ns) != 8 {
		t.Fatalf("center cell of 3x3 should have 8 neighbors, got %d", len(ns))
	}
}

func TestGridNeighborsExcludeVoid(t *testing.T) {
	g := NewGrid(3, 3)
	g.At(1, 0).Exists = true
	g.At(0, 1).Exists = true
	ns := g.Neighbors(1, 1, false, nil)
	if len(ns) != 2 {
		t.Fatalf("expected 2 land neighbors, got %d", len(ns))
	}
}

func TestGridDistanceAndAngleAtCenter(t *testing.T) {
	g := NewGrid(10, 10)
	cx, cy := int(g.W/2), int(g.H/2)
	d := g.DistanceToCenter(cx, cy)
	if d > 1.5 {
		t.Fatalf("distance of near-center cell too large: %f", d)
	}
	// Cell (5,5) has its center at (5.5,5.5), half a cell right of and below
	// the origin (5,5), so its polar angle is pi/4.
	if a := g.Angle(cx, cy); math.Abs(a-math.Pi/4) > 1e-12 {
		t.Fatalf("angle of near-center cell = %f, want %f", a, math.Pi/4)
	}
}
