package worldsim

import "image/color"

// updateBio runs the biosphere layer's four stages: census, scheduled
// spawns, per-cell staged evolution, and the migrant step (spec.md §4.5).
func (e *Engine) updateBio() {
	speciesSeen, humanExists := e.censusBio()
	e.bioScheduledSpawns(speciesSeen, humanExists)
	e.bioEvolveCells()
	e.bioStepMigrants()
}

func (e *Engine) censusBio() (map[int]bool, bool) {
	species := make(map[int]bool)
	human := false
	for _, c := range e.grid.Cells() {
		if c.CrystalState == CrystalBio && c.BioAttributes != nil {
			if c.BioAttributes.SpeciesID == 0 {
				human = true
			} else {
				species[c.BioAttributes.SpeciesID] = true
			}
		}
	}
	return species, human
}

// bioScheduledSpawns handles the random-species auto-spawn and the human
// lifecycle (first spawn, respawn after an extinction delay) — spec.md
// §4.5.1.
func (e *Engine) bioScheduledSpawns(species map[int]bool, humanExists bool) {
	p := e.params

	if len(species) < p.BioAutoSpawnCount && p.BioAutoSpawnInterval > 0 && e.timeStep%int64(p.BioAutoSpawnInterval) == 0 {
		e.spawnRandomSpecies()
	}

	if humanExists {
		e.bioExtinctionStep = nil
		return
	}

	if e.isFirstSpawn {
		if e.timeStep >= 50 {
			e.spawnHuman()
			e.isFirstSpawn = false
		}
		return
	}

	if e.bioExtinctionStep == nil {
		step := e.timeStep
		e.bioExtinctionStep = &step
		return
	}
	if e.timeStep-*e.bioExtinctionStep >= int64(p.HumanRespawnDelay) {
		e.spawnHuman()
		e.bioExtinctionStep = nil
	}
}

func (e *Engine) spawnHuman() {
	p := e.params
	var target Point
	if p.HumanSpawnPoint != nil && e.grid.InBounds(p.HumanSpawnPoint.X, p.HumanSpawnPoint.Y) {
		target = *p.HumanSpawnPoint
	} else {
		var ok bool
		target, ok = e.randomLandCell()
		if !ok {
			return
		}
	}
	attrs := humanTemplate(p)
	c := e.grid.At(target.X, target.Y)
	c.CrystalState = CrystalBio
	c.BioAttributes = &attrs
	c.Prosperity = 30
	c.Migrant = nil
}

// spawnRandomSpecies seeds a freshly mutated settlement, templated on the
// human genome, at a random land cell (spec.md §4.5.1).
func (e *Engine) spawnRandomSpecies() {
	target, ok := e.randomLandCell()
	if !ok {
		return
	}
	base := humanTemplate(e.params)
	base.SpeciesID = e.freshSpeciesID()
	base.Color = e.randomColor()
	e.mutateAttributes(&base)

	c := e.grid.At(target.X, target.Y)
	c.CrystalState = CrystalBio
	c.BioAttributes = &base
	c.Prosperity = 30
	c.Migrant = nil
}

func (e *Engine) randomLandCell() (Point, bool) {
	var candidates []Point
	for y := 0; y < e.grid.H; y++ {
		for x := 0; x < e.grid.W; x++ {
			c := e.grid.At(x, y)
			if c.Exists && c.IsEmpty() {
				candidates = append(candidates, Point{X: x, Y: y})
			}
		}
	}
	if len(candidates) == 0 {
		return Point{}, false
	}
	return candidates[e.rng.IntN(len(candidates))], true
}

// freshSpeciesID hands out a unique positive id. mad-ca's own tuning
// harnesses rely on deterministic replay, so new species are numbered
// rather than drawn at random — avoids an id collision across a long run
// without needing to track every id ever issued.
func (e *Engine) freshSpeciesID() int {
	id := e.nextSpeciesID
	e.nextSpeciesID++
	return id
}

func (e *Engine) randomColor() color.RGBA {
	return color.RGBA{
		R: uint8(e.rng.IntN(256)),
		G: uint8(e.rng.IntN(256)),
		B: uint8(e.rng.IntN(256)),
		A: 255,
	}
}

// mutateAttributes perturbs a subset of a BioAttributes' tunable fields in
// place; SurvivalMinTemp/SurvivalMaxTemp and AlphaRadiationDamage are
// inherited unchanged. SpeciesID and Color are inherited unless a mutation
// is significant (MutationStrength above NewSpeciesThreshold), in which case
// they are replaced with a fresh id and a random color (spec.md §4.5.1/§4.5.2).
func (e *Engine) mutateAttributes(a *BioAttributes) {
	p := e.params
	mutate := func(v float64) (float64, bool) {
		if !e.rng.Chance(p.MutationRate) {
			return v, false
		}
		delta := v * p.MutationStrength * e.rng.Sign()
		significant := p.MutationStrength > p.NewSpeciesThreshold
		return v + delta, significant
	}

	var anySignificant bool
	var ok bool
	a.MinTemp, ok = mutate(a.MinTemp)
	anySignificant = anySignificant || ok
	a.MaxTemp, ok = mutate(a.MaxTemp)
	anySignificant = anySignificant || ok
	a.ProsperityGrowth, ok = mutate(a.ProsperityGrowth)
	anySignificant = anySignificant || ok
	a.ProsperityDecay, ok = mutate(a.ProsperityDecay)
	anySignificant = anySignificant || ok
	a.ExpansionThreshold, ok = mutate(a.ExpansionThreshold)
	anySignificant = anySignificant || ok
	a.MiningReward, ok = mutate(a.MiningReward)
	anySignificant = anySignificant || ok
	a.MigrationThreshold, ok = mutate(a.MigrationThreshold)
	anySignificant = anySignificant || ok

	if anySignificant {
		a.SpeciesID = e.freshSpeciesID()
		a.Color = e.randomColor()
	}
}

type bioCommit struct {
	clearToEmpty map[int]bool
	prosperity   map[int]float64
	energyBonus  map[int]float64
	bonusProsp   map[int]float64
	newSettle    []bioSpawn
	newMigrant   []bioSpawn
	toMigrant    map[int]bioSpawn
}

type bioSpawn struct {
	x, y       int
	prosperity float64
	attrs      BioAttributes
}

func newBioCommit() *bioCommit {
	return &bioCommit{
		clearToEmpty: make(map[int]bool),
		prosperity:   make(map[int]float64),
		energyBonus:  make(map[int]float64),
		bonusProsp:   make(map[int]float64),
		toMigrant:    make(map[int]bioSpawn),
	}
}

// bioEvolveCells runs stage 3 of the biosphere update: for every cell that
// was a settlement at the start of the stage, compute its fate against a
// frozen snapshot of the grid, then commit every resulting change in one
// pass (spec.md §4.5.2).
func (e *Engine) bioEvolveCells() {
	g := e.grid

	var cells []Point
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.At(x, y)
			if c.CrystalState == CrystalBio && c.BioAttributes != nil {
				cells = append(cells, Point{X: x, Y: y})
				c.IsMining = false
			}
		}
	}

	commit := newBioCommit()

	for _, pt := range cells {
		e.evolveOneCell(pt, commit)
	}

	e.commitBio(commit)
}

func (e *Engine) evolveOneCell(pt Point, commit *bioCommit) {
	g := e.grid
	p := e.params
	c := g.At(pt.X, pt.Y)
	a := c.BioAttributes
	idx := g.Index(pt.X, pt.Y)
	basePros := c.Prosperity

	if c.Temperature < a.SurvivalMinTemp || c.Temperature > a.SurvivalMaxTemp {
		commit.clearToEmpty[idx] = true
		e.distributeExtinctionBonus(pt, commit)
		return
	}

	deltaP := 0.0

	neighbors := g.Neighbors(pt.X, pt.Y, false, nil)
	neighbors = append([]NeighborCell(nil), neighbors...)
	var alphaCount int
	var betaNeighbors []NeighborCell
	for _, nb := range neighbors {
		switch nb.Cell.CrystalState {
		case CrystalBio:
			if nb.Cell.BioAttributes == nil {
				continue
			}
			if nb.Cell.BioAttributes.SpeciesID == a.SpeciesID {
				deltaP += p.SameSpeciesBonus
			} else if nb.Cell.Prosperity > basePros {
				deltaP -= p.CompetitionPenalty * (1 + (nb.Cell.Prosperity-basePros)/100)
			}
		case CrystalAlpha:
			alphaCount++
		case CrystalBeta:
			betaNeighbors = append(betaNeighbors, nb)
		}
	}

	if alphaCount > 0 {
		base := a.ProsperityGrowth + 0.2
		if a.AlphaRadiationDamage > base {
			base = a.AlphaRadiationDamage
		}
		f := 1 - basePros/p.RadiationImmunityThreshold
		if f < 0 {
			f = 0
		}
		deltaP -= float64(alphaCount) * base * f
	}

	growth := a.ProsperityGrowth
	if a.SpeciesID != 0 && growth < p.MinProsperityGrowth {
		growth = p.MinProsperityGrowth
	}
	if c.Temperature >= a.MinTemp && c.Temperature <= a.MaxTemp {
		deltaP += growth
	} else {
		var deviation float64
		if c.Temperature < a.MinTemp {
			deviation = a.MinTemp - c.Temperature
		} else {
			deviation = c.Temperature - a.MaxTemp
		}
		deltaP += growth - deviation*a.ProsperityDecay
	}

	if len(betaNeighbors) > 0 {
		target := betaNeighbors[e.rng.IntN(len(betaNeighbors))]
		commit.clearToEmpty[g.Index(target.X, target.Y)] = true
		deltaP += a.MiningReward
		c.IsMining = true
	}

	prosperity := basePros + deltaP

	if prosperity <= 0 {
		commit.clearToEmpty[idx] = true
		e.distributeExtinctionBonus(pt, commit)
		return
	}

	if prosperity > a.ExpansionThreshold {
		if e.rng.Chance(p.MigrantExpansionProb) {
			if target, ok := e.pickMigrantSlot(pt, commit); ok {
				child := *a
				e.mutateAttributes(&child)
				commit.newMigrant = append(commit.newMigrant, bioSpawn{x: target.X, y: target.Y, prosperity: 30, attrs: child})
				prosperity -= 30
			}
		} else {
			if target, ok := e.pickEmptyLandNeighbor(pt); ok {
				child := *a
				e.mutateAttributes(&child)
				commit.newSettle = append(commit.newSettle, bioSpawn{x: target.X, y: target.Y, prosperity: 30, attrs: child})
				prosperity -= 30
			} else if target, ok := e.pickMigrantSlot(pt, commit); ok {
				child := *a
				e.mutateAttributes(&child)
				commit.newMigrant = append(commit.newMigrant, bioSpawn{x: target.X, y: target.Y, prosperity: 30, attrs: child})
				prosperity -= 30
			}
		}
	}

	if prosperity > 0 && prosperity < a.MigrationThreshold {
		commit.toMigrant[idx] = bioSpawn{x: pt.X, y: pt.Y, prosperity: prosperity, attrs: *a}
		return
	}

	commit.prosperity[idx] = prosperity
}

func (e *Engine) pickEmptyLandNeighbor(pt Point) (Point, bool) {
	neighbors := e.grid.Neighbors(pt.X, pt.Y, false, e.neighborBuf)
	var candidates []Point
	for _, nb := range neighbors {
		if nb.Cell.IsEmpty() {
			candidates = append(candidates, Point{X: nb.X, Y: nb.Y})
		}
	}
	if len(candidates) == 0 {
		return Point{}, false
	}
	return candidates[e.rng.IntN(len(candidates))], true
}

// pickMigrantSlot finds a cell (self or a land neighbor) with no migrant
// currently assigned, preferring the originating cell is allowed to host
// its own migrant only if it has none already.
func (e *Engine) pickMigrantSlot(pt Point, commit *bioCommit) (Point, bool) {
	g := e.grid
	self := g.At(pt.X, pt.Y)
	if self.Migrant == nil {
		if !migrantReserved(commit, pt) {
			return pt, true
		}
	}
	neighbors := g.Neighbors(pt.X, pt.Y, false, e.neighborBuf)
	var candidates []Point
	for _, nb := range neighbors {
		if nb.Cell.Migrant == nil && !migrantReserved(commit, Point{X: nb.X, Y: nb.Y}) {
			candidates = append(candidates, Point{X: nb.X, Y: nb.Y})
		}
	}
	if len(candidates) == 0 {
		return Point{}, false
	}
	return candidates[e.rng.IntN(len(candidates))], true
}

func migrantReserved(commit *bioCommit, pt Point) bool {
	for _, m := range commit.newMigrant {
		if m.x == pt.X && m.y == pt.Y {
			return true
		}
	}
	return false
}

// distributeExtinctionBonus splits extinctionBonus evenly across all eight
// (edge-clipped) neighbors of a dying cell; Alpha/Beta neighbors gain
// storedEnergy, Bio neighbors gain prosperity, void/Empty neighbors get
// nothing and their share is simply lost (spec.md §4.5.2).
func (e *Engine) distributeExtinctionBonus(pt Point, commit *bioCommit) {
	g := e.grid
	p := e.params
	neighbors := g.Neighbors(pt.X, pt.Y, true, e.neighborBuf)
	if len(neighbors) == 0 {
		return
	}
	share := p.ExtinctionBonus / float64(len(neighbors))
	for _, nb := range neighbors {
		idx := g.Index(nb.X, nb.Y)
		switch nb.Cell.CrystalState {
		case CrystalAlpha, CrystalBeta:
			commit.energyBonus[idx] += share
		case CrystalBio:
			commit.bonusProsp[idx] += share
		}
	}
}

// commitBio applies every staged change from stage 3 in a fixed order so
// that STATE->Empty always wins over a same-tick spawn targeting the same
// cell (spec.md §4.5.2).
func (e *Engine) commitBio(commit *bioCommit) {
	g := e.grid

	for idx, v := range commit.prosperity {
		g.cells[idx].Prosperity = v
	}
	for idx, v := range commit.energyBonus {
		c := &g.cells[idx]
		c.StoredEnergy = clamp(c.StoredEnergy+v, 0, e.params.MaxCrystalEnergy)
	}
	for idx, v := range commit.bonusProsp {
		g.cells[idx].Prosperity += v
	}
	for idx := range commit.clearToEmpty {
		c := &g.cells[idx]
		c.CrystalState = CrystalEmpty
		c.BioAttributes = nil
		c.Prosperity = 0
		c.StoredEnergy = 0
		c.IsMining = false
	}
	for idx, spawn := range commit.toMigrant {
		c := &g.cells[idx]
		if commit.clearToEmpty[idx] {
			continue
		}
		c.CrystalState = CrystalEmpty
		c.BioAttributes = nil
		c.Prosperity = 0
		attrs := spawn.attrs
		c.Migrant = &Migrant{Prosperity: spawn.prosperity, Attributes: attrs}
	}
	for _, spawn := range commit.newSettle {
		c := g.At(spawn.x, spawn.y)
		idx := g.Index(spawn.x, spawn.y)
		if commit.clearToEmpty[idx] || !c.IsEmpty() {
			continue
		}
		attrs := spawn.attrs
		c.CrystalState = CrystalBio
		c.BioAttributes = &attrs
		c.Prosperity = spawn.prosperity
	}
	for _, spawn := range commit.newMigrant {
		c := g.At(spawn.x, spawn.y)
		if c.Migrant != nil {
			continue
		}
		attrs := spawn.attrs
		c.Migrant = &Migrant{Prosperity: spawn.prosperity, Attributes: attrs}
	}
}

type migrantMove struct {
	fromX, fromY int
	toX, toY     int
	settle       bool
	remove       bool
	migrant      Migrant
}

// bioStepMigrants runs stage 4: every migrant loses one prosperity, then
// either settles on an empty, climate-suitable cell, wanders toward a
// better neighbor, or stays put (spec.md §4.5.2 final stage, §4.5.3).
func (e *Engine) bioStepMigrants() {
	g := e.grid

	var origins []Point
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y).Migrant != nil {
				origins = append(origins, Point{X: x, Y: y})
			}
		}
	}

	reserved := make(map[int]bool)
	var moves []migrantMove

	for _, pt := range origins {
		c := g.At(pt.X, pt.Y)
		m := *c.Migrant
		m.Prosperity--

		if m.Prosperity <= 0 {
			moves = append(moves, migrantMove{fromX: pt.X, fromY: pt.Y, remove: true})
			continue
		}

		if c.IsEmpty() && c.Temperature >= m.Attributes.MinTemp && c.Temperature <= m.Attributes.MaxTemp {
			moves = append(moves, migrantMove{fromX: pt.X, fromY: pt.Y, toX: pt.X, toY: pt.Y, settle: true, migrant: m})
			continue
		}

		neighbors := g.Neighbors(pt.X, pt.Y, false, e.neighborBuf)
		mid := (m.Attributes.MinTemp + m.Attributes.MaxTemp) / 2
		bestIdx := -1
		bestDiff := 0.0
		for i, nb := range neighbors {
			if nb.Cell.Migrant != nil {
				continue
			}
			nidx := g.Index(nb.X, nb.Y)
			if reserved[nidx] {
				continue
			}
			diff := nb.Cell.Temperature - mid
			if diff < 0 {
				diff = -diff
			}
			if bestIdx == -1 || diff < bestDiff {
				bestIdx = i
				bestDiff = diff
			}
		}

		if bestIdx >= 0 && (neighbors[bestIdx].X != pt.X || neighbors[bestIdx].Y != pt.Y) {
			target := neighbors[bestIdx]
			reserved[g.Index(target.X, target.Y)] = true
			moves = append(moves, migrantMove{fromX: pt.X, fromY: pt.Y, toX: target.X, toY: target.Y, migrant: m})
		} else {
			moves = append(moves, migrantMove{fromX: pt.X, fromY: pt.Y, toX: pt.X, toY: pt.Y, migrant: m})
		}
	}

	for _, mv := range moves {
		from := g.At(mv.fromX, mv.fromY)
		from.Migrant = nil

		if mv.remove {
			continue
		}
		if mv.settle {
			attrs := mv.migrant.Attributes
			dest := g.At(mv.toX, mv.toY)
			dest.CrystalState = CrystalBio
			dest.BioAttributes = &attrs
			dest.Prosperity = mv.migrant.Prosperity
			continue
		}
		dest := g.At(mv.toX, mv.toY)
		m := mv.migrant
		dest.Migrant = &m
	}
}
