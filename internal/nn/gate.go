package nn

// Gate multiplies the second half of its input with the logistic of the
// first half, size 2N→N:
//
//	out[i] = σ(in[i]) · in[N+i]
type Gate struct {
	layer
}

// NewGate creates a 2N→N gate module.
func NewGate(size int) *Gate {
	mustPositive("gate", size)
	g := &Gate{}
	g.init(g, 2*size, size)
	return g
}

func (g *Gate) forward() {
	in := g.input.Row(g.timestep)
	out := g.output.Row(g.timestep)
	n := g.outsize
	for i := range n {
		out[i] = sigmoid(in[i]) * in[n+i]
	}
}

func (g *Gate) backward() {
	this := g.timestep - 1
	in := g.input.Row(this)
	outerr := g.outerror.Row(this)
	inerr := g.inerror.Row(this)
	n := g.outsize
	for i := range n {
		inerr[i] = sigmoidPrime(in[i]) * in[n+i] * outerr[i]
		inerr[n+i] = sigmoid(in[i]) * outerr[i]
	}
}
