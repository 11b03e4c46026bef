package nn

import "fmt"

// Connection routes values from the output of one module into the input of
// another, and errors back the opposite way.
//
// A connection works on a slice [start, stop) of the incoming module's
// output and a slice of the outgoing module's input. With a recurrent
// offset n > 0, Forward at timestep t reads the incoming output of
// timestep t-n; rows before the start of the sequence contribute nothing.
type Connection interface {
	Component

	// Incoming returns the module the connection reads from.
	Incoming() Module

	// Outgoing returns the module the connection writes to.
	Outgoing() Module

	// IncomingSlice returns the bounds of the read slice.
	IncomingSlice() (start, stop int)

	// OutgoingSlice returns the bounds of the written slice.
	OutgoingSlice() (start, stop int)

	// Recurrent returns the recurrent time offset, 0 if not recurrent.
	Recurrent() int

	// SetRecurrent sets the recurrent time offset. A positive offset
	// requires sequential mode.
	SetRecurrent(offset int) error
}

// connectionKernel is the numeric part of a connection. It works on the
// already resolved row slices.
type connectionKernel interface {
	// forward adds the contribution of src to dst.
	forward(src, dst []float64)

	// backward adds the error of dst to srcErr and accumulates
	// derivatives against srcOut.
	backward(dstErr, srcErr, srcOut []float64)
}

// connection is the common Connection implementation.
type connection struct {
	component

	incoming Module
	outgoing Module

	inStart, inStop   int
	outStart, outStop int

	recurrent int

	kernel connectionKernel
}

func (c *connection) init(k connectionKernel, incoming, outgoing Module,
	inStart, inStop, outStart, outStop int) error {
	if incoming == nil || outgoing == nil {
		return configErrorf("connection", ErrUnknownModule, "nil endpoint")
	}
	if err := checkSlice("connection", incoming.OutSize(), inStart, inStop); err != nil {
		return err
	}
	if err := checkSlice("connection", outgoing.InSize(), outStart, outStop); err != nil {
		return err
	}

	c.kernel = k
	c.incoming = incoming
	c.outgoing = outgoing
	c.inStart, c.inStop = inStart, inStop
	c.outStart, c.outStop = outStart, outStop
	return nil
}

func checkSlice(op string, size, start, stop int) error {
	if start < 0 || stop < start || stop > size {
		return configErrorf(op, ErrSliceOutOfRange, "[%d, %d) of width %d", start, stop, size)
	}
	return nil
}

// Forward adds the incoming output slice of timestep t-offset into the
// outgoing input slice of timestep t.
func (c *connection) Forward() {
	c.preForward()
	if src := c.timestep - c.recurrent; src >= 0 {
		c.kernel.forward(
			c.incoming.Output().Row(src)[c.inStart:c.inStop],
			c.outgoing.Input().Row(c.timestep)[c.outStart:c.outStop],
		)
	}
	c.postForward()
}

// Backward adds the outgoing in-error slice of the previous timestep into
// the incoming out-error slice offset by the recurrence.
func (c *connection) Backward() {
	c.preBackward()
	this := c.timestep - 1
	if src := this - c.recurrent; src >= 0 {
		c.kernel.backward(
			c.outgoing.InError().Row(this)[c.outStart:c.outStop],
			c.incoming.OutError().Row(src)[c.inStart:c.inStop],
			c.incoming.Output().Row(src)[c.inStart:c.inStop],
		)
	}
	c.postBackward()
}

// Incoming returns the module the connection reads from.
func (c *connection) Incoming() Module { return c.incoming }

// Outgoing returns the module the connection writes to.
func (c *connection) Outgoing() Module { return c.outgoing }

// IncomingSlice returns the bounds of the read slice.
func (c *connection) IncomingSlice() (start, stop int) { return c.inStart, c.inStop }

// OutgoingSlice returns the bounds of the written slice.
func (c *connection) OutgoingSlice() (start, stop int) { return c.outStart, c.outStop }

// Recurrent returns the recurrent time offset.
func (c *connection) Recurrent() int { return c.recurrent }

// SetRecurrent sets the recurrent time offset.
func (c *connection) SetRecurrent(offset int) error {
	if offset < 0 {
		return configErrorf("set recurrent", ErrSliceOutOfRange, "negative offset %d", offset)
	}
	if offset > 0 && !c.Sequential() {
		return configErrorf("set recurrent", ErrRecurrentNotSequential, "mode %v", c.mode)
	}
	c.recurrent = offset
	return nil
}

// inLen and outLen return the slice widths.
func (c *connection) inLen() int  { return c.inStop - c.inStart }
func (c *connection) outLen() int { return c.outStop - c.outStart }

func (c *connection) String() string {
	return fmt.Sprintf("connection[%d:%d]→[%d:%d] rec=%d", c.inStart, c.inStop, c.outStart, c.outStop, c.recurrent)
}
