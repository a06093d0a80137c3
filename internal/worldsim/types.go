// Package worldsim implements the four-layer cellular automaton engine:
// geosphere (mantle energy + landmass), atmosphere (temperature + storms),
// resource (Alpha/Beta crystals), and biosphere (settlements, migrants,
// species). A single Engine owns the grid and advances all four layers in
// lockstep once per Tick.
package worldsim

import "image/color"

// CrystalState enumerates the resource layer's per-cell state.
type CrystalState uint8

const (
	// CrystalEmpty means the cell holds no crystal.
	CrystalEmpty CrystalState = iota
	// CrystalAlpha is an active crystal: draws mantle energy, propagates,
	// shares energy with Alpha neighbors.
	CrystalAlpha
	// CrystalBeta is an inert, minable crystal produced by Alpha exhaustion.
	CrystalBeta
	// CrystalBio marks a cell occupied by a settlement; the resource slot
	// is unavailable while a settlement stands.
	CrystalBio
)

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// EnergyTransfer records one outbound Alpha-network transfer for a tick,
// kept for host-side visualization; the engine itself only needs the
// aggregate deltas it already commits.
type EnergyTransfer struct {
	X, Y   int
	Amount float64
}

// BioAttributes is a settlement's (or migrant's) genome.
type BioAttributes struct {
	MinTemp, MaxTemp                 float64
	SurvivalMinTemp, SurvivalMaxTemp float64
	ProsperityGrowth, ProsperityDecay float64
	ExpansionThreshold, MigrationThreshold float64
	MiningReward         float64
	AlphaRadiationDamage float64
	SpeciesID            int
	Color                color.RGBA
}

// Migrant is a mobile bio entity coexisting with whatever resource state
// occupies its cell.
type Migrant struct {
	Prosperity float64
	Attributes BioAttributes
}

// Cell carries every layer's state, active or not, so sweeps stay uniform.
type Cell struct {
	// Geosphere.
	Exists               bool
	MantleEnergy         float64
	ExpansionAccumulator float64
	ShrinkAccumulator    float64

	// Atmosphere. HasThunderstorm is only valid for the tick it was set.
	Temperature     float64
	HasThunderstorm bool

	// Resource.
	CrystalState CrystalState
	StoredEnergy float64
	IsAbsorbing  bool
	// CrystalEnergy is the per-tick display value of energy absorbed this
	// tick (mantle draw + storm burst); it is not itself simulation state.
	CrystalEnergy float64
	EnergyFlow    []EnergyTransfer

	// Biosphere.
	Prosperity    float64
	IsMining      bool
	BioAttributes *BioAttributes
	Migrant       *Migrant
}

// IsEmpty reports whether the cell's resource slot holds nothing.
func (c *Cell) IsEmpty() bool { return c.CrystalState == CrystalEmpty }
