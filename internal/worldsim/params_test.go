package worldsim

import (
	"math"
	"testing"
)

func TestValidateReplacesNonFinite(t *testing.T) {
	p := DefaultParams()
	p.MantleTimeScale = math.NaN()
	p.ExpansionThreshold = math.Inf(1)
	p.DiffusionRate = math.Inf(-1)

	fixed := p.Validate()

	d := DefaultParams()
	if fixed.MantleTimeScale != d.MantleTimeScale {
		t.Errorf("NaN MantleTimeScale not replaced with default")
	}
	if fixed.ExpansionThreshold != d.ExpansionThreshold {
		t.Errorf("+Inf ExpansionThreshold not replaced with default")
	}
	if fixed.DiffusionRate != d.DiffusionRate {
		t.Errorf("-Inf DiffusionRate not replaced with default")
	}
}

func TestValidateNeverRejects(t *testing.T) {
	p := DefaultParams()
	p.ShrinkThreshold = -500
	p.MutationRate = 9
	fixed := p.Validate()
	if fixed.ShrinkThreshold != -500 {
		t.Errorf("finite out-of-range value should pass through unchanged, got %f", fixed.ShrinkThreshold)
	}
	if fixed.MutationRate != 9 {
		t.Errorf("finite out-of-range value should pass through unchanged, got %f", fixed.MutationRate)
	}
}

func TestFromFlagsIgnoresUnknownAndMalformed(t *testing.T) {
	p := FromFlags(map[string]string{
		"mantle_time_scale": "0.5",
		"unknown_key":       "123",
		"shrink_threshold":  "not-a-number",
	})
	if p.MantleTimeScale != 0.5 {
		t.Errorf("known key not applied, got %f", p.MantleTimeScale)
	}
	if p.ShrinkThreshold != DefaultParams().ShrinkThreshold {
		t.Errorf("malformed value should leave default untouched, got %f", p.ShrinkThreshold)
	}
}

func TestFromFlagsNilMap(t *testing.T) {
	p := FromFlags(nil)
	if p != DefaultParams() {
		t.Errorf("nil flag map should yield defaults")
	}
}
