package worldsim

import (
	"slices"
	"testing"
)

func TestNewRejectsNonPositiveSize(t *testing.T) {
	if _, err := New(0, 10, DefaultParams()); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := New(10, -1, DefaultParams()); err == nil {
		t.Fatal("expected error for negative height")
	}
}

func TestNewSeedsLandDisk(t *testing.T) {
	e, err := NewSeeded(40, 40, DefaultParams(), 42)
	if err != nil {
		t.Fatalf("NewSeeded: %v", err)
	}
	var land, alpha int
	for _, c := range e.grid.Cells() {
		if c.Exists {
			land++
		}
		if c.CrystalState == CrystalAlpha {
			alpha++
		}
	}
	if land == 0 {
		t.Fatal("construction should seed a land disk")
	}
	if alpha == 0 {
		t.Fatal("construction should seed an Alpha core")
	}
}

func TestTickDeterministicForFixedSeed(t *testing.T) {
	run := func() []Cell {
		e, err := NewSeeded(24, 24, DefaultParams(), 7)
		if err != nil {
			t.Fatalf("NewSeeded: %v", err)
		}
		for i := 0; i < 50; i++ {
			e.Tick()
		}
		return append([]Cell(nil), e.grid.Cells()...)
	}

	a := run()
	b := run()

	if len(a) != len(b) {
		t.Fatalf("cell count mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Exists != b[i].Exists || a[i].MantleEnergy != b[i].MantleEnergy ||
			a[i].CrystalState != b[i].CrystalState || a[i].Temperature != b[i].Temperature {
			t.Fatalf("cell %d diverged between identically-seeded runs", i)
		}
	}
}

func TestTickAdvancesTimeStepAndCycleCount(t *testing.T) {
	e, err := NewSeeded(16, 16, DefaultParams(), 1)
	if err != nil {
		t.Fatalf("NewSeeded: %v", err)
	}
	for i := int64(1); i <= 1500; i++ {
		e.Tick()
		if e.TimeStep() != i {
			t.Fatalf("timeStep = %d, want %d", e.TimeStep(), i)
		}
	}
	if e.CycleCount() != 1 {
		t.Fatalf("cycleCount = %d, want 1 after 1500 ticks", e.CycleCount())
	}
}

func TestReadCellOutOfBounds(t *testing.T) {
	e, _ := NewSeeded(8, 8, DefaultParams(), 1)
	if _, ok := e.ReadCell(-1, 0); ok {
		t.Error("expected ok=false for out-of-bounds read")
	}
	if _, ok := e.ReadCell(100, 100); ok {
		t.Error("expected ok=false for out-of-bounds read")
	}
	if _, ok := e.ReadCell(4, 4); !ok {
		t.Error("expected ok=true for in-bounds read")
	}
}

func TestReplaceParamsKeepsSupplyPointCount(t *testing.T) {
	e, _ := NewSeeded(16, 16, DefaultParams(), 1)
	originalCount := len(e.supplyPoints)

	next := DefaultParams()
	next.EdgeSupplyPointCount = originalCount + 5
	e.ReplaceParams(next)

	if len(e.supplyPoints) != originalCount {
		t.Fatalf("supply point list should stay fixed at construction size, got %d want %d", len(e.supplyPoints), originalCount)
	}
	if e.params.EdgeSupplyPointCount != originalCount {
		t.Fatalf("ReplaceParams should not let edgeSupplyPointCount drift from its construction value")
	}
}

func TestSetSpawnPointNilClears(t *testing.T) {
	e, _ := NewSeeded(16, 16, DefaultParams(), 1)
	e.SetSpawnPoint(&Point{X: 3, Y: 3})
	if e.params.HumanSpawnPoint == nil {
		t.Fatal("expected spawn point to be set")
	}
	e.SetSpawnPoint(nil)
	if e.params.HumanSpawnPoint != nil {
		t.Fatal("expected spawn point to be cleared")
	}
}

func TestEraseCrystalClipsToAlphaBeta(t *testing.T) {
	e, _ := NewSeeded(16, 16, DefaultParams(), 1)
	c := e.grid.At(8, 8)
	c.Exists = true
	c.CrystalState = CrystalAlpha
	c.StoredEnergy = 50

	e.EraseCrystal(8, 8, 2)

	c = e.grid.At(8, 8)
	if c.CrystalState != CrystalEmpty || c.StoredEnergy != 0 {
		t.Fatalf("expected crystal erased, got state=%v energy=%f", c.CrystalState, c.StoredEnergy)
	}
}

func TestEraseCrystalOutOfBoundsNoPanic(t *testing.T) {
	e, _ := NewSeeded(8, 8, DefaultParams(), 1)
	e.EraseCrystal(-5, -5, 3)
	e.EraseCrystal(100, 100, 3)
}

func TestReplayDeterminismWithSlicesEqual(t *testing.T) {
	snapshot := func(e *Engine) []float64 {
		out := make([]float64, 0, e.grid.W*e.grid.H)
		for _, c := range e.grid.Cells() {
			out = append(out, c.MantleEnergy)
		}
		return out
	}

	e1, _ := NewSeeded(20, 20, DefaultParams(), 5)
	e2, _ := NewSeeded(20, 20, DefaultParams(), 5)
	for i := 0; i < 30; i++ {
		e1.Tick()
		e2.Tick()
	}
	if !slices.Equal(snapshot(e1), snapshot(e2)) {
		t.Fatal("two identically-seeded engines diverged after 30 ticks")
	}
}
