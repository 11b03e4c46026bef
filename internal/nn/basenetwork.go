package nn

import "fmt"

// baseNetwork is the part shared by every composite module: lazy
// scheduling and the activate/back-activate entry points.
type baseNetwork struct {
	layer

	// dirty is set whenever the structure changed since the last sort.
	dirty bool

	// sort rebuilds the schedule and resizes the buffers.
	sort func() error
}

// Dirty reports whether the network has to be sorted before the next
// activation.
func (n *baseNetwork) Dirty() bool {
	return n.dirty
}

// Activate feeds input through the network for the current timestep and
// returns the output row. The returned slice is owned by the network and
// only valid until the next call.
//
// A non-sequential network forgets all state of earlier activations. A
// sequential network adds its input into the rows of its input modules, so
// it has to be cleared before a new sequence reuses those rows.
// Activate panics if the network cannot be sorted.
func (n *baseNetwork) Activate(input []float64) []float64 {
	if n.dirty {
		if err := n.sort(); err != nil {
			panic(err)
		}
	} else if !n.Sequential() {
		n.Clear()
	}
	if len(input) != n.insize {
		panic(fmt.Sprintf("activate: input has %d values, want %d", len(input), n.insize))
	}

	copy(n.input.Row(n.row()), input)
	n.Forward()
	return n.output.Row(n.timestep - 1)
}

// ActivateInto is like Activate but copies the output into out.
func (n *baseNetwork) ActivateInto(input, out []float64) {
	res := n.Activate(input)
	if len(out) != len(res) {
		panic(fmt.Sprintf("activate: output has %d values, want %d", len(out), len(res)))
	}
	copy(out, res)
}

// BackActivate propagates err, the error of the last produced output row,
// back through the network and returns the error of the matching input
// row. The returned slice is owned by the network.
func (n *baseNetwork) BackActivate(err []float64) []float64 {
	if len(err) != n.outsize {
		panic(fmt.Sprintf("back activate: error has %d values, want %d", len(err), n.outsize))
	}
	r := n.errorRow()
	if r < 0 || n.timestep < 1 {
		panic("back activate: no activation to backpropagate")
	}

	copy(n.outerror.Row(r), err)
	n.Backward()
	return n.inerror.Row(n.row())
}

// BackActivateInto is like BackActivate but copies the input error into
// inerr.
func (n *baseNetwork) BackActivateInto(err, inerr []float64) {
	res := n.BackActivate(err)
	if len(inerr) != len(res) {
		panic(fmt.Sprintf("back activate: input error has %d values, want %d", len(inerr), len(res)))
	}
	copy(inerr, res)
}
