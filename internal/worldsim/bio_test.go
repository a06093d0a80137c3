package worldsim

import "testing"

func testAttrs() BioAttributes {
	return BioAttributes{
		MinTemp:            0,
		MaxTemp:            40,
		SurvivalMinTemp:    -50,
		SurvivalMaxTemp:    80,
		ProsperityGrowth:   5,
		ProsperityDecay:    1,
		ExpansionThreshold: 1000, // keep expansion out of play for isolated growth tests
		MigrationThreshold: 1,
		MiningReward:       6,
		SpeciesID:          0,
	}
}

func TestBioGrowthInBandNoNeighbors(t *testing.T) {
	e, _ := NewSeeded(10, 10, DefaultParams(), 1)
	for i := range e.grid.cells {
		e.grid.cells[i] = Cell{}
	}
	c := e.grid.At(5, 5)
	c.Exists = true
	c.Temperature = 20
	c.CrystalState = CrystalBio
	attrs := testAttrs()
	c.BioAttributes = &attrs
	c.Prosperity = 50

	e.bioEvolveCells()

	got := e.grid.At(5, 5).Prosperity
	want := 50 + attrs.ProsperityGrowth
	if got != want {
		t.Fatalf("prosperity = %f, want %f", got, want)
	}
}

func TestBioSurvivalBandDeathClearsCell(t *testing.T) {
	e, _ := NewSeeded(10, 10, DefaultParams(), 1)
	c := e.grid.At(5, 5)
	c.Exists = true
	c.Temperature = 9999
	c.CrystalState = CrystalBio
	attrs := testAttrs()
	c.BioAttributes = &attrs
	c.Prosperity = 50

	e.bioEvolveCells()

	got := e.grid.At(5, 5)
	if got.CrystalState != CrystalEmpty || got.BioAttributes != nil {
		t.Fatalf("cell outside survival band should clear to Empty, got state=%v attrs=%v", got.CrystalState, got.BioAttributes)
	}
}

func TestHumanRespawnAfterDelay(t *testing.T) {
	p := DefaultParams()
	p.HumanRespawnDelay = 5
	e, _ := NewSeeded(20, 20, p, 1)
	for i := range e.grid.cells {
		e.grid.cells[i].Exists = true
	}
	e.isFirstSpawn = false

	for i := 0; i < 6; i++ {
		e.timeStep++
		e.updateBio()
	}

	var found bool
	for _, c := range e.grid.Cells() {
		if c.CrystalState == CrystalBio && c.BioAttributes != nil && c.BioAttributes.SpeciesID == 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("human settlement should respawn after humanRespawnDelay ticks of extinction")
	}
}

func TestFirstSpawnWaitsUntilTimeStep50(t *testing.T) {
	e, _ := NewSeeded(20, 20, DefaultParams(), 1)
	for i := range e.grid.cells {
		e.grid.cells[i].Exists = true
	}

	for i := 0; i < 49; i++ {
		e.timeStep++
		e.updateBio()
	}
	for _, c := range e.grid.Cells() {
		if c.CrystalState == CrystalBio {
			t.Fatal("no settlement should exist before timeStep 50")
		}
	}

	e.timeStep++
	e.updateBio()
	var found bool
	for _, c := range e.grid.Cells() {
		if c.CrystalState == CrystalBio {
			found = true
		}
	}
	if !found {
		t.Fatal("human should spawn once timeStep reaches 50")
	}
}

func TestMigrantSettlesOnSuitableEmptyCell(t *testing.T) {
	e, _ := NewSeeded(10, 10, DefaultParams(), 1)
	c := e.grid.At(5, 5)
	c.Exists = true
	c.CrystalState = CrystalEmpty
	c.StoredEnergy = 0
	c.Temperature = 20
	attrs := testAttrs()
	c.Migrant = &Migrant{Prosperity: 30, Attributes: attrs}

	e.bioStepMigrants()

	got := e.grid.At(5, 5)
	if got.Migrant != nil {
		t.Fatal("migrant should have converted into a settlement, not remained a migrant")
	}
	if got.CrystalState != CrystalBio || got.BioAttributes == nil {
		t.Fatalf("expected a settlement at the migrant's cell, got state=%v", got.CrystalState)
	}
	if got.Prosperity != 29 {
		t.Fatalf("settled prosperity should be the decremented migrant prosperity, got %f", got.Prosperity)
	}
}

func TestMigrantExpiresAtZeroProsperity(t *testing.T) {
	e, _ := NewSeeded(10, 10, DefaultParams(), 1)
	c := e.grid.At(5, 5)
	c.Exists = true
	c.Temperature = 9999 // out of band, so it won't settle
	attrs := testAttrs()
	c.Migrant = &Migrant{Prosperity: 1, Attributes: attrs}

	e.bioStepMigrants()

	if e.grid.At(5, 5).Migrant != nil {
		t.Fatal("migrant at zero prosperity should be removed")
	}
}

func TestExtinctionBonusSkipsVoidAndEmpty(t *testing.T) {
	e, _ := NewSeeded(5, 5, DefaultParams(), 1)
	center := Point{X: 2, Y: 2}
	c := e.grid.At(center.X, center.Y)
	c.Exists = true

	alphaNb := e.grid.At(1, 2)
	alphaNb.Exists = true
	alphaNb.CrystalState = CrystalAlpha
	alphaNb.StoredEnergy = 0

	emptyNb := e.grid.At(3, 2)
	emptyNb.Exists = true
	emptyNb.CrystalState = CrystalEmpty
	emptyNb.StoredEnergy = 0

	voidNb := e.grid.At(2, 1)
	*voidNb = Cell{}

	commit := newBioCommit()
	e.distributeExtinctionBonus(center, commit)

	if commit.energyBonus[e.grid.Index(1, 2)] <= 0 {
		t.Fatal("Alpha neighbor should receive a positive extinction-bonus share")
	}
	for _, pt := range []Point{{X: 3, Y: 2}, {X: 2, Y: 1}} {
		idx := e.grid.Index(pt.X, pt.Y)
		if commit.energyBonus[idx] != 0 || commit.bonusProsp[idx] != 0 {
			t.Fatalf("empty/void neighbor (%d,%d) should receive no extinction bonus", pt.X, pt.Y)
		}
	}
}
