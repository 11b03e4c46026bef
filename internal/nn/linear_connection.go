package nn

// LinearConnection multiplies every element of the incoming slice by its
// own weight: target[i] += source[i]·w[i]. Both slices have the same
// width, which is also the number of parameters.
type LinearConnection struct {
	connection
	params *Parameters
}

// NewLinearConnection connects the whole output of incoming to the whole
// input of outgoing with zero weights.
func NewLinearConnection(incoming, outgoing Module) (*LinearConnection, error) {
	return NewLinearConnectionSliced(incoming, outgoing, 0, incoming.OutSize(), 0, outgoing.InSize())
}

// NewLinearConnectionSliced connects incoming output [inStart, inStop) to
// outgoing input [outStart, outStop) with zero weights.
func NewLinearConnectionSliced(incoming, outgoing Module, inStart, inStop, outStart, outStop int) (*LinearConnection, error) {
	c := &LinearConnection{}
	if err := c.init(c, incoming, outgoing, inStart, inStop, outStart, outStop); err != nil {
		return nil, err
	}
	if c.inLen() != c.outLen() {
		return nil, configErrorf("linear connection", ErrDimensionMismatch,
			"incoming slice %d, outgoing slice %d", c.inLen(), c.outLen())
	}
	c.params = NewParameters(c.inLen())
	return c, nil
}

// Parameters returns the weights.
func (c *LinearConnection) Parameters() *Parameters {
	return c.params
}

func (c *LinearConnection) forward(src, dst []float64) {
	w := c.params.Data()
	for i, x := range src {
		dst[i] += x * w[i]
	}
}

func (c *LinearConnection) backward(dstErr, srcErr, srcOut []float64) {
	w := c.params.Data()
	d := c.params.Derivatives()
	for i, e := range dstErr {
		srcErr[i] += w[i] * e
		d[i] += e * srcOut[i]
	}
}
