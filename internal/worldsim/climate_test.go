package worldsim

import "testing"

func TestClimateVoidCellsStayAtZeroTemperature(t *testing.T) {
	e, _ := NewSeeded(8, 8, DefaultParams(), 1)
	for i := range e.grid.cells {
		e.grid.cells[i] = Cell{Temperature: 55}
	}
	e.updateClimate()
	for i, c := range e.grid.Cells() {
		if c.Temperature != 0 || c.HasThunderstorm {
			t.Fatalf("void cell %d should reset to zero temperature and no storm, got t=%f storm=%v", i, c.Temperature, c.HasThunderstorm)
		}
	}
}

func TestClimateCoolsTowardAmbient(t *testing.T) {
	e, _ := NewSeeded(10, 10, DefaultParams(), 1)
	for i := range e.grid.cells {
		c := &e.grid.cells[i]
		c.Exists = true
		c.Temperature = 500
		c.MantleEnergy = e.params.MantleEnergyLevel
	}
	for i := 0; i < 300; i++ {
		e.updateClimate()
	}
	got := e.grid.At(5, 5).Temperature
	if got > 400 {
		t.Fatalf("temperature should trend down toward ambient over many steps, got %f", got)
	}
}

func TestBilinearSampleMatchesGridpoints(t *testing.T) {
	field := []float64{
		0, 10,
		20, 30,
	}
	if got := bilinearSample(field, 2, 2, 0, 0); got != 0 {
		t.Errorf("corner sample = %f, want 0", got)
	}
	if got := bilinearSample(field, 2, 2, 1, 1); got != 30 {
		t.Errorf("corner sample = %f, want 30", got)
	}
	mid := bilinearSample(field, 2, 2, 0.5, 0.5)
	if mid != 15 {
		t.Errorf("center sample = %f, want 15", mid)
	}
}

func TestSampleClampedOutOfRange(t *testing.T) {
	field := []float64{1, 2, 3, 4}
	if got := sampleClamped(field, 2, 2, -5, -5); got != 1 {
		t.Errorf("clamped sample = %f, want 1", got)
	}
	if got := sampleClamped(field, 2, 2, 50, 50); got != 4 {
		t.Errorf("clamped sample = %f, want 4", got)
	}
}
