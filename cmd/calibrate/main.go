// Command calibrate runs a coordinate-descent parameter sweep searching
// for mantle/crystal settings that keep the landmass stable over a long
// run, the same role mad-ca's cmd/volcano_tuner plays for lava reach.
package main

import (
	"flag"
	"fmt"
	"runtime"

	"cataclysm/internal/worldsim"
)

func main() {
	steps := flag.Int("steps", 2000, "ticks to simulate per candidate")
	passes := flag.Int("passes", 3, "coordinate-descent passes to execute")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel candidate evaluations")
	width := flag.Int("width", 96, "grid width for tuning runs")
	height := flag.Int("height", 96, "grid height for tuning runs")
	seed := flag.Int64("seed", 1337, "seed used for every candidate simulation")
	flag.Parse()

	base := worldsim.DefaultParams()

	baseline := worldsim.Simulate(*width, *height, base, *seed, *steps)
	fmt.Printf("Baseline: land fraction %.3f, alpha=%d beta=%d settlements=%d extinct=%v\n",
		baseline.LandFraction, baseline.AlphaCount, baseline.BetaCount, baseline.BioPopulation, baseline.Extinct)

	params, best, trace := worldsim.ParameterSweep(*width, *height, base, *seed, *steps, *passes, *workers)

	fmt.Printf("\nBest found: land fraction %.3f, alpha=%d beta=%d settlements=%d extinct=%v\n",
		best.LandFraction, best.AlphaCount, best.BetaCount, best.BioPopulation, best.Extinct)
	fmt.Printf("  mantle_time_scale=%.4f expansion_threshold=%.2f shrink_threshold=%.2f diffusion_rate=%.3f mantle_absorption=%.3f\n",
		params.MantleTimeScale, params.ExpansionThreshold, params.ShrinkThreshold, params.DiffusionRate, params.MantleAbsorption)

	if len(trace) > 1 {
		fmt.Println("\nImprovements:")
		for _, rec := range trace[1:] {
			fmt.Printf("  pass %d: %s=%.4f -> land fraction %.3f\n", rec.Pass, rec.Parameter, rec.Value, rec.Result.LandFraction)
		}
	}
}
