package nn

import "github.com/born-ml/arac/internal/linalg"

// FullConnection is a dense connection: target += W·source, where W is a
// row-major matrix of (outgoing slice width) × (incoming slice width).
//
// The weights may live in a caller-owned flat vector, see
// NewFullConnectionWithParameters.
type FullConnection struct {
	connection
	params *Parameters
}

// NewFullConnection densely connects the whole output of incoming to the
// whole input of outgoing with zero weights.
func NewFullConnection(incoming, outgoing Module) (*FullConnection, error) {
	return NewFullConnectionSliced(incoming, outgoing, 0, incoming.OutSize(), 0, outgoing.InSize())
}

// NewFullConnectionSliced densely connects incoming output
// [inStart, inStop) to outgoing input [outStart, outStop).
func NewFullConnectionSliced(incoming, outgoing Module, inStart, inStop, outStart, outStop int) (*FullConnection, error) {
	c := &FullConnection{}
	if err := c.init(c, incoming, outgoing, inStart, inStop, outStart, outStop); err != nil {
		return nil, err
	}
	c.params = NewParameters(c.inLen() * c.outLen())
	return c, nil
}

// NewFullConnectionWithParameters is like NewFullConnectionSliced but the
// weights and derivatives are borrowed from data and grad, which must both
// hold exactly (outStop-outStart)·(inStop-inStart) values.
func NewFullConnectionWithParameters(incoming, outgoing Module, data, grad []float64,
	inStart, inStop, outStart, outStop int) (*FullConnection, error) {
	c := &FullConnection{}
	if err := c.init(c, incoming, outgoing, inStart, inStop, outStart, outStop); err != nil {
		return nil, err
	}
	if n := c.inLen() * c.outLen(); len(data) != n {
		return nil, configErrorf("full connection", ErrParameterLength, "got %d values, want %d", len(data), n)
	}
	params, err := NewBorrowedParameters(data, grad)
	if err != nil {
		return nil, err
	}
	c.params = params
	return c, nil
}

// Parameters returns the weight matrix.
func (c *FullConnection) Parameters() *Parameters {
	return c.params
}

func (c *FullConnection) forward(src, dst []float64) {
	n := c.inLen()
	linalg.Gemv(false, c.outLen(), n, 1, c.params.Data(), n, src, 1, 1, dst, 1)
}

func (c *FullConnection) backward(dstErr, srcErr, srcOut []float64) {
	n := c.inLen()
	linalg.Gemv(true, c.outLen(), n, 1, c.params.Data(), n, dstErr, 1, 1, srcErr, 1)
	linalg.Ger(c.outLen(), n, 1, dstErr, 1, srcOut, 1, c.params.Derivatives(), n)
}
