package worldsim

import (
	"math"
	"strconv"
)

// Params is the immutable-per-tick record of tunables governing every
// layer, supplied by the host and read by all four updaters. It is
// generalized from mad-ca's ecology.Params/Config split, folded into one
// struct since, unlike mad-ca's pluggable-sim registry, this engine has
// exactly one simulation to configure.
type Params struct {
	// Mantle.
	MantleTimeScale      float64
	ExpansionThreshold   float64
	ShrinkThreshold      float64
	MantleEnergyLevel    float64
	MaxRadius            float64
	MinRadius            float64
	DistortionSpeed      float64
	EdgeGenerationWidth  float64
	EdgeGenerationEnergy float64
	EdgeGenerationOffset float64
	EdgeSupplyPointCount int // construction-only, see DESIGN.md
	EdgeSupplyPointSpeed float64
	MantleHeatFactor     float64

	// Climate.
	DiffusionRate         float64
	AdvectionRate         float64 // reserved, not consumed (spec.md §9)
	ThunderstormThreshold float64
	SeasonalAmplitude     float64 // reserved, not consumed (spec.md §9)

	// Crystal.
	AlphaEnergyDemand  float64
	BetaEnergyDemand   float64
	MantleAbsorption   float64
	ThunderstormEnergy float64
	ExpansionCost      float64
	MaxCrystalEnergy   float64
	EnergySharingRate  float64
	EnergySharingLimit float64 // reserved, not consumed (spec.md §9)
	EnergyDecayRate    float64
	HarvestThreshold   float64 // reserved, not consumed (spec.md §9)

	// Bio global.
	ExtinctionBonus            float64
	CompetitionPenalty         float64
	MutationRate               float64
	MutationStrength           float64
	NewSpeciesThreshold        float64
	MinProsperityGrowth        float64
	SameSpeciesBonus           float64
	MigrantExpansionProb       float64
	RadiationImmunityThreshold float64
	BioAutoSpawnCount          int
	BioAutoSpawnInterval       int

	// Human template.
	HumanMinTemp           float64
	HumanMaxTemp           float64
	HumanSurvivalMinTemp   float64
	HumanSurvivalMaxTemp   float64
	HumanProsperityGrowth  float64
	HumanProsperityDecay   float64
	HumanExpansionThreshold float64
	HumanMiningReward      float64
	HumanMigrationThreshold float64
	AlphaRadiationDamage   float64
	HumanRespawnDelay      int
	HumanSpawnPoint        *Point // optional; nil means "choose a cell"
}

// DefaultParams returns a balanced configuration. MinRadius/MaxRadius are
// left at zero here since they are naturally expressed as a fraction of the
// grid's own dimensions; New derives sane absolute values for them when
// zero is supplied, the same tolerant-defaulting policy mad-ca applies to
// its ecology Config.
func DefaultParams() Params {
	return Params{
		MantleTimeScale:      0.08,
		ExpansionThreshold:   85,
		ShrinkThreshold:      18,
		MantleEnergyLevel:    60,
		MaxRadius:            0,
		MinRadius:            0,
		DistortionSpeed:      0.01,
		EdgeGenerationWidth:  6,
		EdgeGenerationEnergy: 4,
		EdgeGenerationOffset: 2,
		EdgeSupplyPointCount: 3,
		EdgeSupplyPointSpeed: 0.02,
		MantleHeatFactor:     140,

		DiffusionRate:         0.2,
		AdvectionRate:         0,
		ThunderstormThreshold: 12,
		SeasonalAmplitude:     0,

		AlphaEnergyDemand:  0.6,
		BetaEnergyDemand:   0.2,
		MantleAbsorption:   0.08,
		ThunderstormEnergy: 6,
		ExpansionCost:      4,
		MaxCrystalEnergy:   100,
		EnergySharingRate:  0.5,
		EnergySharingLimit: 0,
		EnergyDecayRate:    0.1,
		HarvestThreshold:   0,

		ExtinctionBonus:            20,
		CompetitionPenalty:         0.4,
		MutationRate:               0.15,
		MutationStrength:           0.2,
		NewSpeciesThreshold:        0.35,
		MinProsperityGrowth:        0.05,
		SameSpeciesBonus:           0.1,
		MigrantExpansionProb:       0.3,
		RadiationImmunityThreshold: 50,
		BioAutoSpawnCount:          4,
		BioAutoSpawnInterval:       200,

		HumanMinTemp:            7,
		HumanMaxTemp:            34,
		HumanSurvivalMinTemp:    -20,
		HumanSurvivalMaxTemp:    50,
		HumanProsperityGrowth:   0.5,
		HumanProsperityDecay:    0.3,
		HumanExpansionThreshold: 80,
		HumanMiningReward:       6,
		HumanMigrationThreshold: 15,
		AlphaRadiationDamage:    0.3,
		HumanRespawnDelay:       100,
		HumanSpawnPoint:         nil,
	}
}

// Validate replaces non-finite values with their DefaultParams equivalent
// and leaves out-of-range-but-finite values untouched, per spec.md §7:
// parameters are never rejected, only guarded against blowing up the
// numerics. The exceptions are a negative MaxCrystalEnergy, a non-positive
// BioAutoSpawnInterval and a negative HumanRespawnDelay, which are also
// reset to their defaults. It returns a corrected copy.
func (p Params) Validate() Params {
	d := DefaultParams()
	fix := func(v, def float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return v
	}
	p.MantleTimeScale = fix(p.MantleTimeScale, d.MantleTimeScale)
	p.ExpansionThreshold = fix(p.ExpansionThreshold, d.ExpansionThreshold)
	p.ShrinkThreshold = fix(p.ShrinkThreshold, d.ShrinkThreshold)
	p.MantleEnergyLevel = fix(p.MantleEnergyLevel, d.MantleEnergyLevel)
	p.MaxRadius = fix(p.MaxRadius, d.MaxRadius)
	p.MinRadius = fix(p.MinRadius, d.MinRadius)
	p.DistortionSpeed = fix(p.DistortionSpeed, d.DistortionSpeed)
	p.EdgeGenerationWidth = fix(p.EdgeGenerationWidth, d.EdgeGenerationWidth)
	p.EdgeGenerationEnergy = fix(p.EdgeGenerationEnergy, d.EdgeGenerationEnergy)
	p.EdgeGenerationOffset = fix(p.EdgeGenerationOffset, d.EdgeGenerationOffset)
	p.EdgeSupplyPointSpeed = fix(p.EdgeSupplyPointSpeed, d.EdgeSupplyPointSpeed)
	p.MantleHeatFactor = fix(p.MantleHeatFactor, d.MantleHeatFactor)

	p.DiffusionRate = fix(p.DiffusionRate, d.DiffusionRate)
	p.ThunderstormThreshold = fix(p.ThunderstormThreshold, d.ThunderstormThreshold)

	p.AlphaEnergyDemand = fix(p.AlphaEnergyDemand, d.AlphaEnergyDemand)
	p.BetaEnergyDemand = fix(p.BetaEnergyDemand, d.BetaEnergyDemand)
	p.MantleAbsorption = fix(p.MantleAbsorption, d.MantleAbsorption)
	p.ThunderstormEnergy = fix(p.ThunderstormEnergy, d.ThunderstormEnergy)
	p.ExpansionCost = fix(p.ExpansionCost, d.ExpansionCost)
	if p.MaxCrystalEnergy = fix(p.MaxCrystalEnergy, d.MaxCrystalEnergy); p.MaxCrystalEnergy < 0 {
		p.MaxCrystalEnergy = d.MaxCrystalEnergy
	}
	p.EnergySharingRate = fix(p.EnergySharingRate, d.EnergySharingRate)
	p.EnergyDecayRate = fix(p.EnergyDecayRate, d.EnergyDecayRate)

	p.ExtinctionBonus = fix(p.ExtinctionBonus, d.ExtinctionBonus)
	p.CompetitionPenalty = fix(p.CompetitionPenalty, d.CompetitionPenalty)
	p.MutationRate = fix(p.MutationRate, d.MutationRate)
	p.MutationStrength = fix(p.MutationStrength, d.MutationStrength)
	p.NewSpeciesThreshold = fix(p.NewSpeciesThreshold, d.NewSpeciesThreshold)
	p.MinProsperityGrowth = fix(p.MinProsperityGrowth, d.MinProsperityGrowth)
	p.SameSpeciesBonus = fix(p.SameSpeciesBonus, d.SameSpeciesBonus)
	p.MigrantExpansionProb = fix(p.MigrantExpansionProb, d.MigrantExpansionProb)
	p.RadiationImmunityThreshold = fix(p.RadiationImmunityThreshold, d.RadiationImmunityThreshold)
	if p.BioAutoSpawnInterval <= 0 {
		p.BioAutoSpawnInterval = d.BioAutoSpawnInterval
	}

	p.HumanMinTemp = fix(p.HumanMinTemp, d.HumanMinTemp)
	p.HumanMaxTemp = fix(p.HumanMaxTemp, d.HumanMaxTemp)
	p.HumanSurvivalMinTemp = fix(p.HumanSurvivalMinTemp, d.HumanSurvivalMinTemp)
	p.HumanSurvivalMaxTemp = fix(p.HumanSurvivalMaxTemp, d.HumanSurvivalMaxTemp)
	p.HumanProsperityGrowth = fix(p.HumanProsperityGrowth, d.HumanProsperityGrowth)
	p.HumanProsperityDecay = fix(p.HumanProsperityDecay, d.HumanProsperityDecay)
	p.HumanExpansionThreshold = fix(p.HumanExpansionThreshold, d.HumanExpansionThreshold)
	p.HumanMiningReward = fix(p.HumanMiningReward, d.HumanMiningReward)
	p.HumanMigrationThreshold = fix(p.HumanMigrationThreshold, d.HumanMigrationThreshold)
	p.AlphaRadiationDamage = fix(p.AlphaRadiationDamage, d.AlphaRadiationDamage)
	if p.HumanRespawnDelay < 0 {
		p.HumanRespawnDelay = d.HumanRespawnDelay
	}

	return p
}

// humanTemplate builds a fresh BioAttributes from the human-template
// parameters, used both for the initial/respawned human settlement and as
// the mutation base for random-species spawn (spec.md §4.5.1).
func humanTemplate(p Params) BioAttributes {
	return BioAttributes{
		MinTemp:              p.HumanMinTemp,
		MaxTemp:               p.HumanMaxTemp,
		SurvivalMinTemp:       p.HumanSurvivalMinTemp,
		SurvivalMaxTemp:       p.HumanSurvivalMaxTemp,
		ProsperityGrowth:      p.HumanProsperityGrowth,
		ProsperityDecay:       p.HumanProsperityDecay,
		ExpansionThreshold:    p.HumanExpansionThreshold,
		MigrationThreshold:    p.HumanMigrationThreshold,
		MiningReward:          p.HumanMiningReward,
		AlphaRadiationDamage:  p.AlphaRadiationDamage,
		SpeciesID:             0,
	}
}

// FromFlags populates a Params from a string map (flag-style key/value
// pairs), the same manual strconv-based parsing mad-ca's ecology.FromMap
// uses. Unknown keys and unparsable values are silently ignored, per
// spec.md §7 — a caller's malformed override never aborts construction.
func FromFlags(flags map[string]string) Params {
	p := DefaultParams()
	if flags == nil {
		return p
	}
	f := func(key string, dst *float64) {
		if v, ok := flags[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}
	i := func(key string, dst *int) {
		if v, ok := flags[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil {
				*dst = parsed
			}
		}
	}

	f("mantle_time_scale", &p.MantleTimeScale)
	f("expansion_threshold", &p.ExpansionThreshold)
	f("shrink_threshold", &p.ShrinkThreshold)
	f("mantle_energy_level", &p.MantleEnergyLevel)
	f("max_radius", &p.MaxRadius)
	f("min_radius", &p.MinRadius)
	f("distortion_speed", &p.DistortionSpeed)
	f("edge_generation_width", &p.EdgeGenerationWidth)
	f("edge_generation_energy", &p.EdgeGenerationEnergy)
	f("edge_generation_offset", &p.EdgeGenerationOffset)
	i("edge_supply_point_count", &p.EdgeSupplyPointCount)
	f("edge_supply_point_speed", &p.EdgeSupplyPointSpeed)
	f("mantle_heat_factor", &p.MantleHeatFactor)

	f("diffusion_rate", &p.DiffusionRate)
	f("advection_rate", &p.AdvectionRate)
	f("thunderstorm_threshold", &p.ThunderstormThreshold)
	f("seasonal_amplitude", &p.SeasonalAmplitude)

	f("alpha_energy_demand", &p.AlphaEnergyDemand)
	f("beta_energy_demand", &p.BetaEnergyDemand)
	f("mantle_absorption", &p.MantleAbsorption)
	f("thunderstorm_energy", &p.ThunderstormEnergy)
	f("expansion_cost", &p.ExpansionCost)
	f("max_crystal_energy", &p.MaxCrystalEnergy)
	f("energy_sharing_rate", &p.EnergySharingRate)
	f("energy_sharing_limit", &p.EnergySharingLimit)
	f("energy_decay_rate", &p.EnergyDecayRate)
	f("harvest_threshold", &p.HarvestThreshold)

	f("extinction_bonus", &p.ExtinctionBonus)
	f("competition_penalty", &p.CompetitionPenalty)
	f("mutation_rate", &p.MutationRate)
	f("mutation_strength", &p.MutationStrength)
	f("new_species_threshold", &p.NewSpeciesThreshold)
	f("min_prosperity_growth", &p.MinProsperityGrowth)
	f("same_species_bonus", &p.SameSpeciesBonus)
	f("migrant_expansion_prob", &p.MigrantExpansionProb)
	f("radiation_immunity_threshold", &p.RadiationImmunityThreshold)
	i("bio_auto_spawn_count", &p.BioAutoSpawnCount)
	i("bio_auto_spawn_interval", &p.BioAutoSpawnInterval)

	f("human_min_temp", &p.HumanMinTemp)
	f("human_max_temp", &p.HumanMaxTemp)
	f("human_survival_min_temp", &p.HumanSurvivalMinTemp)
	f("human_survival_max_temp", &p.HumanSurvivalMaxTemp)
	f("human_prosperity_growth", &p.HumanProsperityGrowth)
	f("human_prosperity_decay", &p.HumanProsperityDecay)
	f("human_expansion_threshold", &p.HumanExpansionThreshold)
	f("human_mining_reward", &p.HumanMiningReward)
	f("human_migration_threshold", &p.HumanMigrationThreshold)
	f("alpha_radiation_damage", &p.AlphaRadiationDamage)
	i("human_respawn_delay", &p.HumanRespawnDelay)

	return p
}
