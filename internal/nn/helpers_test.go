package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
)

// testInput returns n deterministic values in roughly [-1, 1].
func testInput(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.37*float64(i%7) - 0.9 + 0.05*float64(i)
	}
	return x
}

// forwardOnce clears m, feeds x and returns the output row.
func forwardOnce(m Module, x []float64) []float64 {
	m.Clear()
	m.AddToInput(x)
	m.Forward()
	return m.Output().Row(0)
}

// checkInputGradient compares the in-error of a single-shot backward pass
// with the numeric gradient of the loss dot(outerr, output) w.r.t. x.
func checkInputGradient(t *testing.T, m Module, x, outerr []float64) {
	t.Helper()

	loss := func(in []float64) float64 {
		return floats.Dot(outerr, forwardOnce(m, in))
	}
	want := fd.Gradient(nil, loss, x, &fd.Settings{Formula: fd.Central})

	forwardOnce(m, x)
	m.AddToOutError(outerr)
	m.Backward()

	assert.InDeltaSlice(t, want, m.InError().Row(0), 1e-6)
}

// activator is a network driven through Activate and BackActivate.
type activator interface {
	Module
	Activate(input []float64) []float64
	BackActivate(err []float64) []float64
}

// checkSequenceGradient runs xs through net, backpropagates errs in reverse
// and compares the derivatives of p with the numeric gradient of the loss
// Σ_t dot(errs[t], y_t) w.r.t. the values of p.
func checkSequenceGradient(t *testing.T, net activator, p *Parameters, xs, errs [][]float64) {
	t.Helper()

	w := append([]float64(nil), p.Data()...)
	loss := func(v []float64) float64 {
		copy(p.Data(), v)
		net.Clear()
		sum := 0.0
		for i, x := range xs {
			sum += floats.Dot(errs[i], net.Activate(x))
		}
		return sum
	}
	want := fd.Gradient(nil, loss, w, &fd.Settings{Formula: fd.Central})

	copy(p.Data(), w)
	p.ClearDerivatives()
	net.Clear()
	for _, x := range xs {
		net.Activate(x)
	}
	for i := len(xs) - 1; i >= 0; i-- {
		net.BackActivate(errs[i])
	}

	assert.InDeltaSlice(t, want, p.Derivatives(), 1e-6)
}

// setSequential puts every component into sequential mode.
func setSequential(cs ...Component) {
	for _, c := range cs {
		c.SetMode(c.Mode() | Sequential)
	}
}
