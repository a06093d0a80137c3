package worldsim

import (
	"strconv"

	"cataclysm/internal/core"
)

// ParameterGroups returns the engine's tunables clustered by layer, the
// same read-only introspection shape mad-ca's ecology.Parameters() builds
// from its own World/Terrain/Lava/Fire/Rain/Wind/Vegetation/Volcano
// groups. It carries no UI binding — the control panel that would consume
// it is out of scope (spec.md §1).
func (e *Engine) ParameterGroups() []core.ParameterGroup {
	p := e.params
	return []core.ParameterGroup{
		{
			Name: "Mantle",
			Params: []core.Parameter{
				floatParam("mantle_time_scale", "Mantle time scale", p.MantleTimeScale),
				floatParam("expansion_threshold", "Expansion threshold", p.ExpansionThreshold),
				floatParam("shrink_threshold", "Shrink threshold", p.ShrinkThreshold),
				floatParam("mantle_energy_level", "Mantle energy level", p.MantleEnergyLevel),
				floatParam("max_radius", "Max radius", p.MaxRadius),
				floatParam("min_radius", "Min radius", p.MinRadius),
				floatParam("distortion_speed", "Distortion speed", p.DistortionSpeed),
				floatParam("edge_generation_width", "Edge generation width", p.EdgeGenerationWidth),
				floatParam("edge_generation_energy", "Edge generation energy", p.EdgeGenerationEnergy),
				floatParam("edge_generation_offset", "Edge generation offset", p.EdgeGenerationOffset),
				intParam("edge_supply_point_count", "Edge supply point count (construction-only)", p.EdgeSupplyPointCount),
				floatParam("edge_supply_point_speed", "Edge supply point speed", p.EdgeSupplyPointSpeed),
				floatParam("mantle_heat_factor", "Mantle heat factor", p.MantleHeatFactor),
			},
		},
		{
			Name: "Climate",
			Params: []core.Parameter{
				floatParam("diffusion_rate", "Diffusion rate", p.DiffusionRate),
				floatParam("advection_rate", "Advection rate (reserved)", p.AdvectionRate),
				floatParam("thunderstorm_threshold", "Thunderstorm threshold", p.ThunderstormThreshold),
				floatParam("seasonal_amplitude", "Seasonal amplitude (reserved)", p.SeasonalAmplitude),
			},
		},
		{
			Name: "Crystal",
			Params: []core.Parameter{
				floatParam("alpha_energy_demand", "Alpha energy demand", p.AlphaEnergyDemand),
				floatParam("beta_energy_demand", "Beta energy demand", p.BetaEnergyDemand),
				floatParam("mantle_absorption", "Mantle absorption", p.MantleAbsorption),
				floatParam("thunderstorm_energy", "Thunderstorm energy", p.ThunderstormEnergy),
				floatParam("expansion_cost", "Expansion cost", p.ExpansionCost),
				floatParam("max_crystal_energy", "Max crystal energy", p.MaxCrystalEnergy),
				floatParam("energy_sharing_rate", "Energy sharing rate", p.EnergySharingRate),
				floatParam("energy_sharing_limit", "Energy sharing limit (reserved)", p.EnergySharingLimit),
				floatParam("energy_decay_rate", "Energy decay rate", p.EnergyDecayRate),
				floatParam("harvest_threshold", "Harvest threshold (reserved)", p.HarvestThreshold),
			},
		},
		{
			Name: "Bio",
			Params: []core.Parameter{
				floatParam("extinction_bonus", "Extinction bonus", p.ExtinctionBonus),
				floatParam("competition_penalty", "Competition penalty", p.CompetitionPenalty),
				floatParam("mutation_rate", "Mutation rate", p.MutationRate),
				floatParam("mutation_strength", "Mutation strength", p.MutationStrength),
				floatParam("new_species_threshold", "New species threshold", p.NewSpeciesThreshold),
				floatParam("min_prosperity_growth", "Min prosperity growth", p.MinProsperityGrowth),
				floatParam("same_species_bonus", "Same species bonus", p.SameSpeciesBonus),
				floatParam("migrant_expansion_prob", "Migrant expansion probability", p.MigrantExpansionProb),
				floatParam("radiation_immunity_threshold", "Radiation immunity threshold", p.RadiationImmunityThreshold),
				intParam("bio_auto_spawn_count", "Bio auto spawn count", p.BioAutoSpawnCount),
				intParam("bio_auto_spawn_interval", "Bio auto spawn interval", p.BioAutoSpawnInterval),
			},
		},
		{
			Name: "Human Template",
			Params: []core.Parameter{
				floatParam("human_min_temp", "Human min temp", p.HumanMinTemp),
				floatParam("human_max_temp", "Human max temp", p.HumanMaxTemp),
				floatParam("human_survival_min_temp", "Human survival min temp", p.HumanSurvivalMinTemp),
				floatParam("human_survival_max_temp", "Human survival max temp", p.HumanSurvivalMaxTemp),
				floatParam("human_prosperity_growth", "Human prosperity growth", p.HumanProsperityGrowth),
				floatParam("human_prosperity_decay", "Human prosperity decay", p.HumanProsperityDecay),
				floatParam("human_expansion_threshold", "Human expansion threshold", p.HumanExpansionThreshold),
				floatParam("human_mining_reward", "Human mining reward", p.HumanMiningReward),
				floatParam("human_migration_threshold", "Human migration threshold", p.HumanMigrationThreshold),
				floatParam("alpha_radiation_damage", "Alpha radiation damage", p.AlphaRadiationDamage),
				intParam("human_respawn_delay", "Human respawn delay", p.HumanRespawnDelay),
			},
		},
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}
