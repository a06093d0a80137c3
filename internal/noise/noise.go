// Package noise supplies the continuous 2D noise field the mantle updater
// samples for its energy forcing term. It wraps opensimplex-go rather than
// hand-rolling a value-noise function, the way tobyjaguar-mini-world's world
// generator leans on the same library for elevation/rain/temperature fields.
package noise

import opensimplex "github.com/ojrac/opensimplex-go"

// Field is a seeded, continuous 2D noise field returning values in [-1, 1].
type Field struct {
	n opensimplex.Noise
}

// NewField constructs a noise field seeded deterministically.
func NewField(seed int64) *Field {
	return &Field{n: opensimplex.New(seed)}
}

// Sample evaluates the field at the given continuous coordinates.
func (f *Field) Sample(x, y float64) float64 {
	return f.n.Eval2(x, y)
}
