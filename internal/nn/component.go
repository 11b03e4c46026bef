package nn

import "fmt"

// Mode combines the error-agnostic and the sequential flag of a component.
type Mode int

// Component modes.
const (
	Simple                  Mode = 0
	ErrorAgnostic           Mode = 1
	Sequential              Mode = 2
	SequentialErrorAgnostic Mode = ErrorAgnostic | Sequential
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case Simple:
		return "Simple"
	case ErrorAgnostic:
		return "ErrorAgnostic"
	case Sequential:
		return "Sequential"
	case SequentialErrorAgnostic:
		return "SequentialErrorAgnostic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Component is the basic unit of an arac architecture. Modules and
// connections are both components.
//
// Forward computes the contribution of the component for the current
// timestep, Backward propagates errors and accumulates derivatives for the
// timestep before the current one.
//
// In sequential mode every Forward advances the timestep by one and every
// Backward moves it back by one, so that a sequence can be unrolled and
// backpropagated through time. In non-sequential mode the component has no
// history: Forward always works on timestep 0 and Backward on timestep 0
// as seen from timestep 1.
type Component interface {
	// Forward runs the forward pass for the current timestep.
	Forward()

	// Backward runs the backward pass for the previous timestep.
	Backward()

	// DryForward advances the timestep bookkeeping without computing.
	DryForward()

	// DryBackward rewinds the timestep bookkeeping without computing.
	DryBackward()

	// Clear resets the timestep to zero.
	Clear()

	// Mode returns the current mode.
	Mode() Mode

	// SetMode changes the mode.
	SetMode(mode Mode)

	// Timestep returns the current timestep.
	Timestep() int

	// SequenceLength returns how many forward steps the current sequence has.
	SequenceLength() int

	// Sequential reports whether the component keeps per-timestep history.
	Sequential() bool

	// ErrorAgnostic reports whether the component has no concept of errors.
	ErrorAgnostic() bool
}

// kernel is the numeric part of a component, run between the pre and post
// hooks of Forward and Backward.
type kernel interface {
	forward()
	backward()
}

// component holds the timestep state machine shared by every Component.
type component struct {
	timestep int
	seqlen   int
	mode     Mode
}

func (c *component) preForward() {
	if !c.Sequential() {
		c.timestep = 0
	}
}

func (c *component) postForward() {
	if c.Sequential() {
		c.timestep++
		c.seqlen++
		return
	}
	c.timestep = 1
	c.seqlen = 1
}

func (c *component) preBackward() {
	if !c.Sequential() {
		c.timestep = 1
	}
	if c.timestep < 1 {
		panic(fmt.Sprintf("backward: no forward step to backpropagate (timestep %d)", c.timestep))
	}
}

func (c *component) postBackward() {
	if c.Sequential() {
		c.timestep--
		return
	}
	c.timestep = 0
}

// DryForward runs only the timestep bookkeeping of a forward pass.
func (c *component) DryForward() {
	c.preForward()
	c.postForward()
}

// DryBackward runs only the timestep bookkeeping of a backward pass.
func (c *component) DryBackward() {
	c.preBackward()
	c.postBackward()
}

// Clear resets the timestep and the sequence length to zero.
func (c *component) Clear() {
	c.timestep = 0
	c.seqlen = 0
}

// Mode returns the current mode.
func (c *component) Mode() Mode {
	return c.mode
}

// SetMode changes the mode.
func (c *component) SetMode(mode Mode) {
	c.mode = mode
}

// Timestep returns the current timestep.
func (c *component) Timestep() int {
	return c.timestep
}

// SequenceLength returns the length of the current sequence.
func (c *component) SequenceLength() int {
	return c.seqlen
}

// Sequential reports whether the component is in sequential mode.
func (c *component) Sequential() bool {
	return c.mode&Sequential != 0
}

// ErrorAgnostic reports whether the component ignores errors.
func (c *component) ErrorAgnostic() bool {
	return c.mode&ErrorAgnostic != 0
}

// row returns the buffer row for the current timestep. Non-sequential
// components always work on row 0.
func (c *component) row() int {
	if c.Sequential() {
		return c.timestep
	}
	return 0
}

// errorRow returns the buffer row errors are injected into, which lags the
// current timestep by one.
func (c *component) errorRow() int {
	if c.Sequential() {
		return c.timestep - 1
	}
	return 0
}
