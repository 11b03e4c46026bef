// Package nn implements the arac graph execution engine.
//
// This package provides the building blocks for composing networks:
//   - Component: forward/backward contract with timestep bookkeeping
//   - Module: node with input, output and error buffers per timestep
//   - Connection: edge routing a module's output into another's input
//   - Layers: Linear, Bias, Sigmoid, Tanh, Softmax, PartialSoftmax, Gate,
//     MDLSTM, LSTM
//   - Connections: Identity, Linear, Full, Permutation
//   - Network: scheduler driving an arbitrary (recurrent) graph
//   - Mdrnn: multi-dimensional recurrent sweep over block-structured input
//
// Execution is single-threaded and synchronous: a network runs its
// components strictly in schedule order.
package nn

import (
	"fmt"

	"github.com/born-ml/arac/internal/buffer"
)

// Module is a node of a network graph.
//
// A module transforms its input buffer into its output buffer on Forward
// and its out-error buffer into its in-error buffer on Backward. Buffers
// hold one row per timestep; incoming connections add into the input row
// of the current timestep.
type Module interface {
	Component

	// InSize returns the width of the input buffer.
	InSize() int

	// OutSize returns the width of the output buffer.
	OutSize() int

	// Input returns the input buffer.
	Input() *buffer.Buffer

	// Output returns the output buffer.
	Output() *buffer.Buffer

	// InError returns the buffer of errors with respect to the input.
	InError() *buffer.Buffer

	// OutError returns the buffer of errors with respect to the output.
	OutError() *buffer.Buffer

	// AddToInput adds addend to the input row of the current timestep.
	AddToInput(addend []float64)

	// AddToOutError adds addend to the out-error row of the last
	// processed timestep.
	AddToOutError(addend []float64)

	// LastTimestep reports whether the timestep points at the newest
	// input row.
	LastTimestep() bool
}

// stateExpander is implemented by kernels that keep additional
// per-timestep state which has to grow together with the module buffers.
type stateExpander interface {
	expandState()
}

// stateClearer is implemented by kernels with additional state to reset.
type stateClearer interface {
	clearState()
}

// layer is the common Module implementation. Concrete modules embed it and
// register themselves as its kernel.
type layer struct {
	component

	insize  int
	outsize int

	input    *buffer.Buffer
	output   *buffer.Buffer
	inerror  *buffer.Buffer
	outerror *buffer.Buffer

	kernel kernel
}

func (l *layer) init(k kernel, insize, outsize int) {
	if insize < 0 || outsize < 0 {
		panic(fmt.Sprintf("module: negative size %d→%d", insize, outsize))
	}
	l.kernel = k
	l.initBuffers(insize, outsize)
}

// initBuffers (re)allocates all four buffers as owned buffers.
func (l *layer) initBuffers(insize, outsize int) {
	l.insize = insize
	l.outsize = outsize
	l.input = buffer.New(insize)
	l.output = buffer.New(outsize)
	l.inerror = buffer.New(insize)
	l.outerror = buffer.New(outsize)
}

// Forward runs the kernel on the current input row and, in sequential
// mode, grows the buffers for the next timestep.
func (l *layer) Forward() {
	l.preForward()
	if l.timestep >= l.input.Len() || l.timestep >= l.output.Len() {
		panic(fmt.Sprintf("forward: timestep %d has no input row (%d rows)", l.timestep, l.input.Len()))
	}
	l.kernel.forward()
	l.postForward()
	if l.Sequential() {
		l.expand()
	}
}

// Backward runs the kernel for the previous timestep. Error-agnostic
// modules only rewind their timestep.
func (l *layer) Backward() {
	l.preBackward()
	if !l.ErrorAgnostic() {
		l.kernel.backward()
	}
	l.postBackward()
}

// Clear resets the timestep and sets every buffer to zero. Input rows bound
// with BindInput belong to the caller and are left untouched.
func (l *layer) Clear() {
	l.component.Clear()
	if l.input.Owner() {
		l.input.Clear()
	}
	l.output.Clear()
	l.inerror.Clear()
	l.outerror.Clear()
	if c, ok := l.kernel.(stateClearer); ok {
		c.clearState()
	}
}

// expand makes sure a row exists for the current timestep. Rows left over
// from an earlier sequence are reused.
func (l *layer) expand() {
	for _, b := range []*buffer.Buffer{l.input, l.output, l.inerror, l.outerror} {
		if b.Len() <= l.timestep {
			b.Expand()
		}
	}
	if e, ok := l.kernel.(stateExpander); ok {
		e.expandState()
	}
}

// InSize returns the width of the input buffer.
func (l *layer) InSize() int { return l.insize }

// OutSize returns the width of the output buffer.
func (l *layer) OutSize() int { return l.outsize }

// Input returns the input buffer.
func (l *layer) Input() *buffer.Buffer { return l.input }

// Output returns the output buffer.
func (l *layer) Output() *buffer.Buffer { return l.output }

// InError returns the in-error buffer.
func (l *layer) InError() *buffer.Buffer { return l.inerror }

// OutError returns the out-error buffer.
func (l *layer) OutError() *buffer.Buffer { return l.outerror }

// AddToInput adds addend to the input row of the current timestep.
func (l *layer) AddToInput(addend []float64) {
	l.input.Add(addend, l.row())
}

// AddToOutError adds addend to the out-error row of the last processed
// timestep.
func (l *layer) AddToOutError(addend []float64) {
	r := l.errorRow()
	if r < 0 {
		panic("add to outerror: no timestep has been processed")
	}
	l.outerror.Add(addend, r)
}

// LastTimestep reports whether the timestep points at the newest input row.
func (l *layer) LastTimestep() bool {
	return l.timestep == l.input.Len()-1
}

// BindInput replaces the input buffer with the given caller-owned rows,
// one per timestep. The rows are used in place, so the caller can feed a
// whole sequence without copying; the module never grows a bound buffer.
func (l *layer) BindInput(rows ...[]float64) {
	l.input = buffer.NewBorrowed(l.insize, rows...)
}

// currentRow returns the buffer row c reads and writes in its next forward
// pass.
func currentRow(c Component) int {
	if c.Sequential() {
		return c.Timestep()
	}
	return 0
}
