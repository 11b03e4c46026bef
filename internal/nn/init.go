package nn

import (
	"math"
	"math/rand"
)

// Xavier fills p with draws from U(-b, b), b = sqrt(6/(fanIn+fanOut)). A nil
// rng uses the global source.
func Xavier(p *Parameters, fanIn, fanOut int, rng *rand.Rand) {
	Uniform(p, math.Sqrt(6.0/float64(fanIn+fanOut)), rng)
}

// Uniform fills the parameter values with draws from U(-bound, bound).
func Uniform(p *Parameters, bound float64, rng *rand.Rand) {
	draw := rand.Float64
	if rng != nil {
		draw = rng.Float64
	}
	for i := range p.data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		p.data[i] = (draw()*2.0 - 1.0) * bound
	}
}

// Zeros sets all parameter values to zero.
func Zeros(p *Parameters) {
	clear(p.data)
}

// InitNetwork applies Xavier initialization to every full connection of
// net, using the connection's slice widths as fans. Other parameter stores
// get values from U(-0.1, 0.1). Nested networks are initialized
// recursively.
func InitNetwork(net *Network, rng *rand.Rand) {
	for _, c := range net.connections {
		switch c := c.(type) {
		case *FullConnection:
			Xavier(c.Parameters(), c.inLen(), c.outLen(), rng)
		case Parametrized:
			if p := c.Parameters(); p != nil {
				Uniform(p, 0.1, rng)
			}
		}
	}
	for _, m := range net.modules {
		if sub, ok := m.(*Network); ok {
			InitNetwork(sub, rng)
			continue
		}
		if pm, ok := m.(Parametrized); ok && pm.Parameters() != nil {
			Uniform(pm.Parameters(), 0.1, rng)
		}
	}
}
