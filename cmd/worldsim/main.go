// Command worldsim runs the four-layer simulation headlessly and prints a
// periodic summary, the same role mad-ca's cmd/ca/main_stub.go plays when
// built without the ebiten renderer.
package main

import (
	"flag"
	"fmt"

	"github.com/dustin/go-humanize"

	"cataclysm/internal/worldsim"
)

func main() {
	width := flag.Int("width", 160, "grid width")
	height := flag.Int("height", 160, "grid height")
	seed := flag.Int64("seed", 1, "RNG/noise seed")
	ticks := flag.Int("ticks", 5000, "number of ticks to simulate")
	reportEvery := flag.Int("report-every", 250, "ticks between progress reports")
	flag.Parse()

	params := worldsim.DefaultParams()
	e, err := worldsim.NewSeeded(*width, *height, params, *seed)
	if err != nil {
		fmt.Println("worldsim:", err)
		return
	}

	fmt.Printf("simulating %s x %s grid for %s ticks (seed %d)\n",
		humanize.Comma(int64(*width)), humanize.Comma(int64(*height)), humanize.Comma(int64(*ticks)), *seed)

	for i := 1; i <= *ticks; i++ {
		e.Tick()
		if *reportEvery > 0 && i%*reportEvery == 0 {
			printReport(e, i)
		}
	}
	printReport(e, *ticks)
}

func printReport(e *worldsim.Engine, tick int) {
	var land, alpha, beta, bio, migrants int
	speciesSeen := map[int]bool{}
	for _, c := range e.GridCells() {
		if c.Exists {
			land++
		}
		switch c.CrystalState {
		case worldsim.CrystalAlpha:
			alpha++
		case worldsim.CrystalBeta:
			beta++
		case worldsim.CrystalBio:
			bio++
			if c.BioAttributes != nil {
				speciesSeen[c.BioAttributes.SpeciesID] = true
			}
		}
		if c.Migrant != nil {
			migrants++
		}
	}

	fmt.Printf("tick %s: land=%s alpha=%s beta=%s settlements=%s (species=%d) migrants=%s\n",
		humanize.Comma(int64(tick)),
		humanize.Comma(int64(land)),
		humanize.Comma(int64(alpha)),
		humanize.Comma(int64(beta)),
		humanize.Comma(int64(bio)),
		len(speciesSeen),
		humanize.Comma(int64(migrants)))
}
