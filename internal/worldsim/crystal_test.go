package worldsim

import "testing"

func TestAlphaDemotesToBetaWhenExhausted(t *testing.T) {
	e, _ := NewSeeded(8, 8, DefaultParams(), 1)
	c := e.grid.At(4, 4)
	c.Exists = true
	c.CrystalState = CrystalAlpha
	c.StoredEnergy = 0
	c.MantleEnergy = 0

	e.crystalMetabolism()

	got := e.grid.At(4, 4)
	if got.CrystalState != CrystalBeta {
		t.Fatalf("exhausted Alpha cell should demote to Beta, got %v", got.CrystalState)
	}
	if got.StoredEnergy != 0 {
		t.Fatalf("demoted cell should have storedEnergy 0, got %f", got.StoredEnergy)
	}
}

func TestAlphaMetabolismClampsToMax(t *testing.T) {
	e, _ := NewSeeded(8, 8, DefaultParams(), 1)
	c := e.grid.At(4, 4)
	c.Exists = true
	c.CrystalState = CrystalAlpha
	c.StoredEnergy = e.params.MaxCrystalEnergy - 1
	c.MantleEnergy = 10000
	c.HasThunderstorm = true

	e.crystalMetabolism()

	got := e.grid.At(4, 4).StoredEnergy
	if got > e.params.MaxCrystalEnergy {
		t.Fatalf("storedEnergy %f exceeds maxCrystalEnergy %f", got, e.params.MaxCrystalEnergy)
	}
}

func TestNetworkFlowMovesEnergyFromRichToPoor(t *testing.T) {
	e, _ := NewSeeded(8, 8, DefaultParams(), 1)
	rich := e.grid.At(3, 3)
	rich.Exists = true
	rich.CrystalState = CrystalAlpha
	rich.StoredEnergy = 100

	poor := e.grid.At(4, 3)
	poor.Exists = true
	poor.CrystalState = CrystalAlpha
	poor.StoredEnergy = 0

	e.crystalNetworkFlow()

	if e.grid.At(3, 3).StoredEnergy >= 100 {
		t.Fatal("rich Alpha cell should have lost energy to its poorer neighbor")
	}
	if e.grid.At(4, 3).StoredEnergy <= 0 {
		t.Fatal("poor Alpha cell should have gained energy from its richer neighbor")
	}
}

func TestAlphaPropagationSeedsEmptyNeighbor(t *testing.T) {
	e, _ := NewSeeded(8, 8, DefaultParams(), 2)
	for i := range e.grid.cells {
		e.grid.cells[i] = Cell{}
	}
	c := e.grid.At(4, 4)
	c.Exists = true
	c.CrystalState = CrystalAlpha
	c.StoredEnergy = e.params.MaxCrystalEnergy

	for _, n := range e.grid.Neighbors(4, 4, true, nil) {
		n.Cell.Exists = true
	}

	var propagated bool
	for i := 0; i < 10 && !propagated; i++ {
		c.StoredEnergy = e.params.MaxCrystalEnergy
		e.crystalPropagation()
		for _, n := range e.grid.Neighbors(4, 4, true, nil) {
			if n.Cell.CrystalState == CrystalAlpha {
				propagated = true
			}
		}
	}
	if !propagated {
		t.Fatal("flush Alpha cell should eventually propagate onto an empty land neighbor")
	}
}

func TestCrystalMetabolismIgnoresVoidAndBioCells(t *testing.T) {
	e, _ := NewSeeded(8, 8, DefaultParams(), 1)
	void := e.grid.At(1, 1)
	void.Exists = false
	void.CrystalState = CrystalAlpha
	void.StoredEnergy = 5

	bio := e.grid.At(2, 2)
	bio.Exists = true
	bio.CrystalState = CrystalBio
	attrs := BioAttributes{}
	bio.BioAttributes = &attrs
	bio.StoredEnergy = 5

	e.crystalMetabolism()

	if e.grid.At(1, 1).StoredEnergy != 5 {
		t.Error("void cell's crystal bookkeeping should be untouched")
	}
	if e.grid.At(2, 2).StoredEnergy != 5 {
		t.Error("bio cell's crystal bookkeeping should be untouched")
	}
}
