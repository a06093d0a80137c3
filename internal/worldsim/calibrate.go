package worldsim

import (
	"math"
	"math/rand/v2"
)

// StabilityResult summarizes one calibration candidate's outcome, the same
// role mad-ca's ecology.LavaFlowResult plays for its volcano tuner.
type StabilityResult struct {
	TicksSimulated int
	LandFraction   float64
	AlphaCount     int
	BetaCount      int
	BioPopulation  int
	Extinct        bool
}

// Simulate runs a fresh, disposable Engine for steps ticks and reports its
// terminal state. Each call owns its own Engine instance, so ParameterSweep
// can run many of these concurrently without shared mutable state
// (spec.md §5's single-writer-per-Engine rule, generalized to N engines).
func Simulate(width, height int, params Params, seed int64, steps int) StabilityResult {
	e, err := NewSeeded(width, height, params, seed)
	if err != nil {
		return StabilityResult{}
	}
	for i := 0; i < steps; i++ {
		e.Tick()
	}

	var land, alpha, beta, bio int
	for _, c := range e.grid.Cells() {
		if c.Exists {
			land++
		}
		switch c.CrystalState {
		case CrystalAlpha:
			alpha++
		case CrystalBeta:
			beta++
		case CrystalBio:
			bio++
		}
	}

	return StabilityResult{
		TicksSimulated: steps,
		LandFraction:   float64(land) / float64(width*height),
		AlphaCount:     alpha,
		BetaCount:      beta,
		BioPopulation:  bio,
		Extinct:        bio == 0,
	}
}

// stabilityScore rates a candidate; lower is better. It rewards a landmass
// that settled near 40% coverage (neither collapsed nor swallowed the
// grid) and a surviving biosphere.
func stabilityScore(r StabilityResult) float64 {
	score := math.Abs(r.LandFraction - 0.4)
	if r.Extinct {
		score += 1
	}
	return score
}

func betterResult(a, b StabilityResult) bool {
	return stabilityScore(a) < stabilityScore(b)
}

// SweepRecord logs one accepted improvement during a ParameterSweep pass,
// mirroring mad-ca's ecology.SweepRecord.
type SweepRecord struct {
	Pass      int
	Parameter string
	Value     float64
	Result    StabilityResult
}

type sweepDimension struct {
	name   string
	getter func(Params) float64
	setter func(*Params, float64)
	deltas []float64 // multiplicative candidates around the current value
}

func sweepDimensions() []sweepDimension {
	return []sweepDimension{
		{"mantle_time_scale",
			func(p Params) float64 { return p.MantleTimeScale },
			func(p *Params, v float64) { p.MantleTimeScale = v },
			[]float64{0.7, 0.85, 1.15, 1.3}},
		{"expansion_threshold",
			func(p Params) float64 { return p.ExpansionThreshold },
			func(p *Params, v float64) { p.ExpansionThreshold = v },
			[]float64{0.8, 0.9, 1.1, 1.2}},
		{"shrink_threshold",
			func(p Params) float64 { return p.ShrinkThreshold },
			func(p *Params, v float64) { p.ShrinkThreshold = v },
			[]float64{0.7, 0.85, 1.15, 1.3}},
		{"diffusion_rate",
			func(p Params) float64 { return p.DiffusionRate },
			func(p *Params, v float64) { p.DiffusionRate = v },
			[]float64{0.7, 0.85, 1.15, 1.3}},
		{"mantle_absorption",
			func(p Params) float64 { return p.MantleAbsorption },
			func(p *Params, v float64) { p.MantleAbsorption = v },
			[]float64{0.7, 0.85, 1.15, 1.3}},
	}
}

// ParameterSweep runs coordinate-descent over a handful of mantle/crystal
// knobs, evaluating candidates for one dimension concurrently behind a
// worker semaphore, exactly like mad-ca's VolcanoParameterSweep — but
// scored against landmass stability instead of lava reach.
func ParameterSweep(width, height int, base Params, seed int64, steps, passes, workers int) (Params, StabilityResult, []SweepRecord) {
	if steps <= 0 {
		steps = 400
	}
	if passes <= 0 {
		passes = 1
	}
	if workers <= 0 {
		workers = 1
	}

	params := base
	best := Simulate(width, height, params, seed, steps)
	records := []SweepRecord{{Pass: 0, Parameter: "baseline", Value: 0, Result: best}}

	dims := sweepDimensions()

	for pass := 1; pass <= passes; pass++ {
		improved := false
		for _, dim := range dims {
			current := dim.getter(params)
			candidates := make([]float64, len(dim.deltas))
			for i, d := range dim.deltas {
				candidates[i] = current * d
			}

			results := make([]StabilityResult, len(candidates))
			valid := make([]bool, len(candidates))

			sem := make(chan struct{}, workers)
			done := make(chan int, len(candidates))
			for i, v := range candidates {
				sem <- struct{}{}
				go func(i int, v float64) {
					defer func() { <-sem; done <- i }()
					cand := params
					dim.setter(&cand, v)
					results[i] = Simulate(width, height, cand.Validate(), seed, steps)
					valid[i] = true
				}(i, v)
			}
			for range candidates {
				<-done
			}

			for i, v := range candidates {
				if !valid[i] {
					continue
				}
				if betterResult(results[i], best) {
					dim.setter(&params, v)
					best = results[i]
					improved = true
					records = append(records, SweepRecord{Pass: pass, Parameter: dim.name, Value: v, Result: best})
				}
			}
		}
		if !improved {
			break
		}
	}

	return params, best, records
}

// RandomizeParams perturbs each swept dimension by a random factor in
// [0.8, 1.2], used to seed a sweep from something other than the defaults.
func RandomizeParams(rng *rand.Rand, base Params) Params {
	out := base
	for _, dim := range sweepDimensions() {
		factor := 0.8 + rng.Float64()*0.4
		dim.setter(&out, dim.getter(base)*factor)
	}
	return out.Validate()
}
