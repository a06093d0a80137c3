package worldsim

// updateCrystal runs the resource layer's three sub-passes: per-cell
// metabolism, Alpha-network energy flow, and Alpha propagation onto empty
// land (spec.md §4.4).
func (e *Engine) updateCrystal() {
	e.crystalMetabolism()
	e.crystalNetworkFlow()
	e.crystalPropagation()
}

func (e *Engine) crystalMetabolism() {
	g := e.grid
	p := e.params

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.At(x, y)
			if !c.Exists || c.CrystalState == CrystalEmpty || c.CrystalState == CrystalBio {
				continue
			}

			c.IsAbsorbing = false
			c.CrystalEnergy = 0

			if c.CrystalState == CrystalAlpha && c.MantleEnergy > 10 {
				absorbed := p.MantleAbsorption * c.MantleEnergy
				c.StoredEnergy += absorbed
				c.CrystalEnergy += absorbed
				c.IsAbsorbing = true
			}

			if c.HasThunderstorm {
				c.StoredEnergy += p.ThunderstormEnergy
				c.CrystalEnergy += p.ThunderstormEnergy
			}

			switch c.CrystalState {
			case CrystalAlpha:
				c.StoredEnergy -= p.AlphaEnergyDemand
			case CrystalBeta:
				c.StoredEnergy -= p.BetaEnergyDemand
			}

			if c.StoredEnergy > p.MaxCrystalEnergy {
				c.StoredEnergy = p.MaxCrystalEnergy
			}

			if c.CrystalState == CrystalAlpha && c.StoredEnergy <= 0 {
				c.CrystalState = CrystalBeta
				c.StoredEnergy = 0
			}
			if c.StoredEnergy < 0 {
				c.StoredEnergy = 0
			}
		}
	}
}

// crystalNetworkFlow lets Alpha cells share surplus energy with poorer
// Alpha neighbors. Deltas are staged against the metabolism-committed
// values and applied in one pass, so the flow direction this tick never
// depends on the order cells are visited in (spec.md §4.4).
func (e *Engine) crystalNetworkFlow() {
	g := e.grid
	p := e.params
	delta := make([]float64, g.W*g.H)

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.At(x, y)
			if !c.Exists || c.CrystalState != CrystalAlpha {
				continue
			}
			c.EnergyFlow = nil

			neighbors := g.Neighbors(x, y, false, e.neighborBuf)
			for _, nb := range neighbors {
				if nb.Cell.CrystalState != CrystalAlpha {
					continue
				}
				if c.StoredEnergy <= nb.Cell.StoredEnergy {
					continue
				}
				diff := c.StoredEnergy - nb.Cell.StoredEnergy
				transfer := diff * 0.1 * p.EnergySharingRate
				if transfer > 5 {
					transfer = 5
				}
				if c.StoredEnergy-transfer < nb.Cell.StoredEnergy+transfer {
					transfer = diff * 0.4
				}
				if transfer <= 0.1 {
					continue
				}
				srcIdx := g.Index(x, y)
				dstIdx := g.Index(nb.X, nb.Y)
				delta[srcIdx] -= transfer
				delta[dstIdx] += transfer * (1 - p.EnergyDecayRate)
				c.EnergyFlow = append(c.EnergyFlow, EnergyTransfer{X: nb.X, Y: nb.Y, Amount: transfer})
			}
		}
	}

	for i := range g.cells {
		if delta[i] == 0 {
			continue
		}
		c := &g.cells[i]
		c.StoredEnergy = clamp(c.StoredEnergy+delta[i], 0, p.MaxCrystalEnergy)
	}
}

type propagationOp struct {
	x, y int
}

// crystalPropagation lets flush Alpha cells seed a new Alpha crystal onto a
// random empty land neighbor (spec.md §4.4).
func (e *Engine) crystalPropagation() {
	g := e.grid
	p := e.params
	var queue []propagationOp

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.At(x, y)
			if !c.Exists || c.CrystalState != CrystalAlpha {
				continue
			}
			if c.StoredEnergy <= 2*p.ExpansionCost {
				continue
			}
			neighbors := g.Neighbors(x, y, false, e.neighborBuf)
			var candidates []Point
			for _, nb := range neighbors {
				if nb.Cell.IsEmpty() {
					candidates = append(candidates, Point{X: nb.X, Y: nb.Y})
				}
			}
			if len(candidates) == 0 {
				continue
			}
			target := candidates[e.rng.IntN(len(candidates))]
			queue = append(queue, propagationOp{x: target.X, y: target.Y})
			c.StoredEnergy -= p.ExpansionCost
		}
	}

	for _, op := range queue {
		c := g.At(op.x, op.y)
		if !c.IsEmpty() {
			continue
		}
		c.CrystalState = CrystalAlpha
		c.StoredEnergy = 10
	}
}
