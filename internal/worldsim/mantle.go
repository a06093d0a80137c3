package worldsim

import (
	"math"
)

// updateMantle runs the geosphere layer: Phase A recomputes the energy
// field, Phase B lets accumulated energy reshape the landmass itself
// (spec.md §4.2).
func (e *Engine) updateMantle() {
	e.mantlePhaseA()
	e.mantlePhaseB()
	e.advanceSupplyPoints()
}

// mantlePhaseA updates every land cell's mantleEnergy: relaxation toward a
// noise-forced target, a neighbor diffusion blend, edge supply injection,
// and the Alpha-crystal draw; void cells are set to zero. Output is staged
// in e.mantleNext and committed once the whole sweep is done, so no cell
// sees a neighbor's updated value this tick.
func (e *Engine) mantlePhaseA() {
	g := e.grid
	p := e.params

	edgeOuter := p.MaxRadius - p.EdgeGenerationOffset
	edgeInner := edgeOuter - p.EdgeGenerationWidth

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := g.Index(x, y)
			c := g.At(x, y)
			if !c.Exists {
				e.mantleNext[idx] = 0
				continue
			}

			nx := float64(x)*0.1 + e.noiseOffsetX
			ny := float64(y)*0.1 + e.noiseOffsetY
			n := e.noise.Sample(nx, ny)
			target := p.MantleEnergyLevel * (1 + 0.1*n)

			relaxed := (1-p.MantleTimeScale)*c.MantleEnergy + p.MantleTimeScale*target

			blended := relaxed
			neighbors := g.Neighbors(x, y, false, e.neighborBuf)
			if len(neighbors) > 0 {
				var sum float64
				for _, nb := range neighbors {
					sum += nb.Cell.MantleEnergy
				}
				mean := sum / float64(len(neighbors))
				blended = (1-0.4)*relaxed + 0.4*mean
			}

			if math.IsNaN(blended) || math.IsInf(blended, 0) {
				blended = p.MantleEnergyLevel
			}

			d := g.DistanceToCenter(x, y)
			if d >= edgeInner && d <= edgeOuter {
				angle := g.Angle(x, y)
				best := 0.0
				for _, sp := range e.supplyPoints {
					delta := angularDistance(angle, sp.angle)
					if delta < math.Pi/4 {
						contribution := math.Cos(4 * delta)
						if contribution > best {
							best = contribution
						}
					}
				}
				blended += p.EdgeGenerationEnergy * best
			}

			if c.CrystalState == CrystalAlpha {
				blended -= p.MantleAbsorption * blended
			}

			e.mantleNext[idx] = blended
		}
	}

	for i := range g.cells {
		g.cells[i].MantleEnergy = e.mantleNext[i]
	}

	e.noiseOffsetX += p.DistortionSpeed
	e.noiseOffsetY += p.DistortionSpeed * 0.77
}

// angularDistance returns the absolute angular separation between a and b,
// both in [0, 2*pi), accounting for wraparound.
func angularDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

type terrainOp struct {
	expand bool
	x, y   int
}

// mantlePhaseB lets accumulated energy reshape the landmass: cells deep in
// shortage collapse to void, cells deep in surplus expand onto a random
// void neighbor. Every cell's accumulator is evaluated against the current
// (post-Phase-A) energy field, and all resulting terrain changes are queued
// then applied in one pass so a cell's own expand/shrink decision never
// depends on another cell's decision made the same sweep (spec.md §4.2).
func (e *Engine) mantlePhaseB() {
	g := e.grid
	p := e.params

	var queue []terrainOp

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.At(x, y)
			if !c.Exists {
				continue
			}
			d := g.DistanceToCenter(x, y)

			if d <= p.MinRadius {
				c.ShrinkAccumulator = 0
			} else if c.MantleEnergy < p.ShrinkThreshold {
				c.ShrinkAccumulator += p.ShrinkThreshold - c.MantleEnergy
				if c.ShrinkAccumulator > 200 {
					queue = append(queue, terrainOp{expand: false, x: x, y: y})
					c.ShrinkAccumulator = 0
				}
			} else {
				c.ShrinkAccumulator -= 2
				if c.ShrinkAccumulator < 0 {
					c.ShrinkAccumulator = 0
				}
			}

			if c.MantleEnergy > p.ExpansionThreshold && d < p.MaxRadius {
				c.ExpansionAccumulator += c.MantleEnergy - p.ExpansionThreshold
				if c.ExpansionAccumulator > 100 {
					if target, ok := e.randomVoidNeighbor(x, y); ok {
						queue = append(queue, terrainOp{expand: true, x: target.X, y: target.Y})
					}
					c.MantleEnergy -= 20
					c.ExpansionAccumulator = 0
				}
			} else {
				c.ExpansionAccumulator -= 1
				if c.ExpansionAccumulator < 0 {
					c.ExpansionAccumulator = 0
				}
			}
		}
	}

	for _, op := range queue {
		c := g.At(op.x, op.y)
		if op.expand {
			if c.Exists {
				continue
			}
			c.Exists = true
			c.MantleEnergy = 30
		} else {
			if !c.Exists {
				continue
			}
			*c = Cell{Exists: false}
		}
	}
}

func (e *Engine) randomVoidNeighbor(x, y int) (Point, bool) {
	neighbors := e.grid.Neighbors(x, y, true, e.neighborBuf)
	var voids []Point
	for _, n := range neighbors {
		if !n.Cell.Exists {
			voids = append(voids, Point{X: n.X, Y: n.Y})
		}
	}
	if len(voids) == 0 {
		return Point{}, false
	}
	return voids[e.rng.IntN(len(voids))], true
}

// advanceSupplyPoints rotates each edge supply point by its shared speed
// plus a per-point sinusoidal oscillation (spec.md §3, §4.2 step 5).
func (e *Engine) advanceSupplyPoints() {
	speed := e.params.EdgeSupplyPointSpeed
	for i := range e.supplyPoints {
		sp := &e.supplyPoints[i]
		sp.phase += sp.frequency
		osc := supplyOscillationAmplitude * math.Sin(sp.phase)
		sp.angle = math.Mod(sp.angle+speed+osc, 2*math.Pi)
		if sp.angle < 0 {
			sp.angle += 2 * math.Pi
		}
	}
}
