package nn

import "fmt"

// Squash applies an activation function elementwise, size N→N.
//
// Backward multiplies the out-error with the derivative taken at the input
// of the same timestep.
type Squash struct {
	layer
	activation Activation
	f, df      func(float64) float64
}

// NewSquash creates an N→N module applying a.
func NewSquash(size int, a Activation) *Squash {
	s := &Squash{}
	s.setup(s, size, a)
	return s
}

func (s *Squash) setup(k kernel, size int, a Activation) {
	mustPositive("squash", size)
	s.activation = a
	s.f, s.df = a.Funcs()
	s.init(k, size, size)
}

// Activation returns the applied activation.
func (s *Squash) Activation() Activation {
	return s.activation
}

func (s *Squash) forward() {
	in := s.input.Row(s.timestep)
	out := s.output.Row(s.timestep)
	for i, x := range in {
		out[i] = s.f(x)
	}
}

func (s *Squash) backward() {
	this := s.timestep - 1
	in := s.input.Row(this)
	outerr := s.outerror.Row(this)
	inerr := s.inerror.Row(this)
	for i, x := range in {
		inerr[i] = s.df(x) * outerr[i]
	}
}

// Sigmoid applies the logistic function elementwise.
type Sigmoid struct {
	Squash
}

// NewSigmoid creates an N→N logistic module.
func NewSigmoid(size int) *Sigmoid {
	s := &Sigmoid{}
	s.setup(s, size, LogisticFunc)
	return s
}

// Tanh applies the hyperbolic tangent elementwise.
type Tanh struct {
	Squash
}

// NewTanh creates an N→N tanh module.
func NewTanh(size int) *Tanh {
	t := &Tanh{}
	t.setup(t, size, TanhFunc)
	return t
}

func mustPositive(op string, size int) {
	if size <= 0 {
		panic(fmt.Sprintf("%s: size must be positive, got %d", op, size))
	}
}
