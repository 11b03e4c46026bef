package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// expLimit bounds the argument of exp in the softmax.
const expLimit = 500

// Softmax normalises the exponentials of its input to sum to one, size
// N→N.
//
// Backward copies the out-error unchanged. This is the combined gradient
// of softmax and cross-entropy, so the out-error is expected to be
// output - target.
type Softmax struct {
	layer
}

// NewSoftmax creates an N→N softmax module.
func NewSoftmax(size int) *Softmax {
	mustPositive("softmax", size)
	s := &Softmax{}
	s.init(s, size, size)
	return s
}

func (s *Softmax) forward() {
	softmax(s.input.Row(s.timestep), s.output.Row(s.timestep))
}

func (s *Softmax) backward() {
	this := s.timestep - 1
	copy(s.inerror.Row(this), s.outerror.Row(this))
}

// PartialSoftmax applies an independent softmax to every consecutive slice
// of slicelen values.
type PartialSoftmax struct {
	layer
	slicelen int
}

// NewPartialSoftmax creates an N→N module normalising N/slicelen slices.
// size must be a multiple of slicelen.
func NewPartialSoftmax(size, slicelen int) (*PartialSoftmax, error) {
	if size <= 0 || slicelen <= 0 || size%slicelen != 0 {
		return nil, configErrorf("partial softmax", ErrInvalidShape,
			"size %d is not a positive multiple of slice length %d", size, slicelen)
	}
	s := &PartialSoftmax{slicelen: slicelen}
	s.init(s, size, size)
	return s, nil
}

// SliceLength returns the width of one normalised slice.
func (s *PartialSoftmax) SliceLength() int {
	return s.slicelen
}

func (s *PartialSoftmax) forward() {
	in := s.input.Row(s.timestep)
	out := s.output.Row(s.timestep)
	for i := 0; i < len(in); i += s.slicelen {
		softmax(in[i:i+s.slicelen], out[i:i+s.slicelen])
	}
}

func (s *PartialSoftmax) backward() {
	this := s.timestep - 1
	copy(s.inerror.Row(this), s.outerror.Row(this))
}

// softmax writes the normalised exponentials of in to out.
func softmax(in, out []float64) {
	for i, x := range in {
		out[i] = math.Exp(math.Max(-expLimit, math.Min(expLimit, x)))
	}
	floats.Scale(1/floats.Sum(out), out)
}
