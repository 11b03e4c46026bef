package nn

import "gonum.org/v1/gonum/floats"

// IdentityConnection adds a slice of the incoming output unchanged into a
// slice of the outgoing input. Both slices have the same width.
type IdentityConnection struct {
	connection
}

// NewIdentityConnection connects the whole output of incoming to the whole
// input of outgoing.
func NewIdentityConnection(incoming, outgoing Module) (*IdentityConnection, error) {
	return NewIdentityConnectionSliced(incoming, outgoing, 0, incoming.OutSize(), 0, outgoing.InSize())
}

// NewIdentityConnectionSliced connects incoming output [inStart, inStop) to
// outgoing input [outStart, outStop).
func NewIdentityConnectionSliced(incoming, outgoing Module, inStart, inStop, outStart, outStop int) (*IdentityConnection, error) {
	c := &IdentityConnection{}
	if err := c.init(c, incoming, outgoing, inStart, inStop, outStart, outStop); err != nil {
		return nil, err
	}
	if c.inLen() != c.outLen() {
		return nil, configErrorf("identity connection", ErrDimensionMismatch,
			"incoming slice %d, outgoing slice %d", c.inLen(), c.outLen())
	}
	return c, nil
}

func (c *IdentityConnection) forward(src, dst []float64) {
	floats.Add(dst, src)
}

func (c *IdentityConnection) backward(dstErr, srcErr, _ []float64) {
	floats.Add(srcErr, dstErr)
}
