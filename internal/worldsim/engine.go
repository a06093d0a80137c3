package worldsim

import (
	"fmt"
	"math"

	"cataclysm/internal/core"
	"cataclysm/internal/noise"
)

// supplyPoint is a rotating angular energy source injecting into the
// land's radial edge band (spec.md §3, §4.2 step 5).
type supplyPoint struct {
	angle     float64
	phase     float64
	frequency float64
}

const supplyOscillationAmplitude = 0.015

// Engine is the single process-wide simulation instance. It owns the grid
// and advances all four layers in lockstep once per Tick; it is never
// mutated from more than one goroutine at a time (spec.md §5).
type Engine struct {
	grid   *Grid
	params Params
	rng    *core.RNG
	noise  *noise.Field

	timeStep   int64
	cycleCount int64

	noiseOffsetX, noiseOffsetY float64
	supplyPoints                []supplyPoint

	isFirstSpawn      bool
	bioExtinctionStep *int64
	nextSpeciesID     int

	// Scratch buffers reused across ticks to avoid per-tick allocation in
	// the hot sweeps.
	neighborBuf []NeighborCell
	mantleNext  []float64
	tempNext    []float64
}

// New constructs an engine over a width x height grid with a fixed,
// reproducible seed. Use NewSeeded to control the seed explicitly (the
// calibration harness and the test suite both need that); spec.md §5 notes
// seeding is an implementation choice and cross-run reproducibility is not
// promised.
func New(width, height int, params Params) (*Engine, error) {
	return NewSeeded(width, height, params, 1)
}

// NewSeeded constructs an engine with an explicit RNG/noise seed.
func NewSeeded(width, height int, params Params, seed int64) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("worldsim: width and height must be positive, got %dx%d", width, height)
	}

	params = params.Validate()
	minDim := width
	if height < minDim {
		minDim = height
	}
	if params.MinRadius <= 0 {
		params.MinRadius = 0.15 * float64(minDim)
	}
	if params.MaxRadius <= 0 || params.MaxRadius < params.MinRadius {
		params.MaxRadius = 0.48 * float64(minDim)
	}

	e := &Engine{
		grid:          NewGrid(width, height),
		params:        params,
		rng:           core.NewRNG(seed),
		noise:         noise.NewField(seed),
		isFirstSpawn:  true,
		nextSpeciesID: 1,
		neighborBuf:   make([]NeighborCell, 0, 8),
		mantleNext:    make([]float64, width*height),
		tempNext:      make([]float64, width*height),
	}

	e.initSupplyPoints()
	e.seedGrid()

	return e, nil
}

func (e *Engine) initSupplyPoints() {
	count := e.params.EdgeSupplyPointCount
	if count < 0 {
		count = 0
	}
	e.supplyPoints = make([]supplyPoint, count)
	for i := range e.supplyPoints {
		e.supplyPoints[i] = supplyPoint{
			angle:     e.rng.Range(0, 2*math.Pi),
			phase:     e.rng.Range(0, 2*math.Pi),
			frequency: e.rng.Range(0.03, 0.2),
		}
	}
}

// seedGrid establishes the initial landmass disk and its Alpha core, per
// spec.md §3's Lifecycle section.
func (e *Engine) seedGrid() {
	g := e.grid
	minDim := g.W
	if g.H < minDim {
		minDim = g.H
	}
	diskRadius := 0.4 * float64(minDim)

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			d := g.DistanceToCenter(x, y)
			if d > diskRadius {
				continue
			}
			c := g.At(x, y)
			c.Exists = true
			c.MantleEnergy = 60 + e.rng.Range(-10, 10)
			if d <= 3.0 {
				c.CrystalState = CrystalAlpha
				c.StoredEnergy = 10
			}
		}
	}
}

// Tick advances the simulation by one discrete step: the four updaters run
// strictly sequentially, each one's outputs visible to the next (spec.md
// §2, §5).
func (e *Engine) Tick() {
	e.timeStep++
	e.cycleCount = e.timeStep / 1000

	e.updateMantle()
	e.updateClimate()
	e.updateCrystal()
	e.updateBio()
}

// TimeStep returns the number of ticks executed so far.
func (e *Engine) TimeStep() int64 { return e.timeStep }

// CycleCount returns floor(timeStep / 1000).
func (e *Engine) CycleCount() int64 { return e.cycleCount }

// Size reports the grid dimensions.
func (e *Engine) Size() (int, int) { return e.grid.W, e.grid.H }

// GridCells exposes every cell for bulk read-only iteration (reporting,
// rendering, calibration scoring).
func (e *Engine) GridCells() []Cell { return e.grid.Cells() }

// ReadCell returns a read-only snapshot of the cell at (x, y). The second
// return value is false for an out-of-bounds query (spec.md §7: "silent
// no-op").
func (e *Engine) ReadCell(x, y int) (Cell, bool) {
	if !e.grid.InBounds(x, y) {
		return Cell{}, false
	}
	return *e.grid.At(x, y), true
}

// ReplaceParams hot-swaps the parameter block; it takes effect starting the
// next Tick. Construction-only fields (EdgeSupplyPointCount) have no
// effect here — the supply-point list is fixed at construction time
// (spec.md §6).
func (e *Engine) ReplaceParams(params Params) {
	params = params.Validate()
	minDim := e.grid.W
	if e.grid.H < minDim {
		minDim = e.grid.H
	}
	if params.MinRadius <= 0 {
		params.MinRadius = e.params.MinRadius
	}
	if params.MaxRadius <= 0 || params.MaxRadius < params.MinRadius {
		params.MaxRadius = e.params.MaxRadius
	}
	params.EdgeSupplyPointCount = e.params.EdgeSupplyPointCount
	e.params = params
}

// Params returns the currently active parameter block.
func (e *Engine) Params() Params { return e.params }

// SetSpawnPoint sets (or, with p == nil, clears) the forced human spawn
// location. It is a direct write against the live parameter block, bypassing
// the rest of ReplaceParams' validation, exactly like mad-ca's HUD-facing
// setters — an external editing op (spec.md §6).
func (e *Engine) SetSpawnPoint(p *Point) {
	if p == nil {
		e.params.HumanSpawnPoint = nil
		return
	}
	cp := *p
	e.params.HumanSpawnPoint = &cp
}

// EraseCrystal clears Alpha/Beta crystal state within brushSize of (x, y),
// bounds-checked and silently clipped at the grid edge (spec.md §6, §7).
func (e *Engine) EraseCrystal(x, y, brushSize int) {
	if brushSize < 0 {
		return
	}
	g := e.grid
	r2 := float64(brushSize) * float64(brushSize)
	for dy := -brushSize; dy <= brushSize; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.H {
			continue
		}
		for dx := -brushSize; dx <= brushSize; dx++ {
			nx := x + dx
			if nx < 0 || nx >= g.W {
				continue
			}
			if float64(dx*dx+dy*dy) > r2 {
				continue
			}
			c := g.At(nx, ny)
			if c.CrystalState == CrystalAlpha || c.CrystalState == CrystalBeta {
				c.CrystalState = CrystalEmpty
				c.StoredEnergy = 0
				c.IsAbsorbing = false
				c.CrystalEnergy = 0
				c.EnergyFlow = nil
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
