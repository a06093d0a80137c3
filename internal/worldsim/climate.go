package worldsim

import "math"

const ambientTemperature = -100

// updateClimate runs the atmosphere layer. Every step reads exclusively
// from the pre-tick temperature snapshot (tempNext staging, committed at
// the end) so the five sub-steps stay mutually consistent within one tick
// (spec.md §4.3).
func (e *Engine) updateClimate() {
	g := e.grid
	p := e.params
	w, h := g.W, g.H

	snapshot := make([]float64, w*h)
	for i, c := range g.cells {
		snapshot[i] = c.Temperature
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := g.Index(x, y)
			c := g.At(x, y)
			if !c.Exists {
				e.tempNext[idx] = 0
				continue
			}

			neighbors := g.Neighbors(x, y, true, e.neighborBuf)
			var sum float64
			n := len(neighbors)
			for _, nb := range neighbors {
				sum += snapshot[g.Index(nb.X, nb.Y)]
			}
			meanT := 0.0
			if n > 0 {
				meanT = sum / float64(n)
			}
			t := snapshot[idx]*(1-p.DiffusionRate) + meanT*p.DiffusionRate

			target := ambientTemperature + (c.MantleEnergy/100)*p.MantleHeatFactor
			t = 0.995*t + 0.005*target

			gx := (sampleClamped(snapshot, w, h, x+1, y) - sampleClamped(snapshot, w, h, x-1, y)) / 2
			gy := (sampleClamped(snapshot, w, h, x, y+1) - sampleClamped(snapshot, w, h, x, y-1)) / 2
			vx, vy := -2*gx, -2*gy
			srcX := clamp(float64(x)-vx, 0, float64(w-1))
			srcY := clamp(float64(y)-vy, 0, float64(h-1))
			advected := bilinearSample(snapshot, w, h, srcX, srcY)
			t = t*0.6 + advected*0.4

			t += (ambientTemperature - t) * 0.01

			e.tempNext[idx] = t

			origT := snapshot[idx]
			diff := math.Abs(origT - meanT)
			if origT > -50 && diff > p.ThunderstormThreshold && e.rng.Chance(0.15) {
				c.HasThunderstorm = true
			} else {
				c.HasThunderstorm = false
			}
		}
	}

	for i := range g.cells {
		if g.cells[i].Exists {
			g.cells[i].Temperature = e.tempNext[i]
		} else {
			g.cells[i].Temperature = 0
			g.cells[i].HasThunderstorm = false
		}
	}
}

func sampleClamped(field []float64, w, h, x, y int) float64 {
	if x < 0 {
		x = 0
	}
	if x >= w {
		x = w - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= h {
		y = h - 1
	}
	return field[y*w+x]
}

// bilinearSample interpolates field (row-major, w*h) at continuous
// coordinates (x, y), clamping at the border.
func bilinearSample(field []float64, w, h int, x, y float64) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1, y1 := x0+1, y0+1
	fx := x - float64(x0)
	fy := y - float64(y0)

	v00 := sampleClamped(field, w, h, x0, y0)
	v10 := sampleClamped(field, w, h, x1, y0)
	v01 := sampleClamped(field, w, h, x0, y1)
	v11 := sampleClamped(field, w, h, x1, y1)

	top := v00*(1-fx) + v10*fx
	bottom := v01*(1-fx) + v11*fx
	return top*(1-fy) + bottom*fy
}
