package nn

import "github.com/born-ml/arac/internal/buffer"

// LSTM is a long short-term memory layer of N cells, size 4N→N.
//
// The input row is laid out [input gate | forget gate | cell input |
// output gate], N values each. The cell state of every timestep is kept in
// State and fed back into the next step, so an LSTM is always sequential.
//
// The numeric work is done by an internal one-dimensional MDLSTM.
type LSTM struct {
	layer

	size int
	cell *MDLSTM

	// state[t] is the cell state after step t. stateError[t] is the error
	// of state[t-1] coming from step t.
	state      *buffer.Buffer
	stateError *buffer.Buffer
}

// NewLSTM creates an LSTM layer of the given size.
func NewLSTM(size int) *LSTM {
	mustPositive("lstm", size)
	l := &LSTM{
		size:       size,
		cell:       NewMDLSTM(size, 1),
		state:      buffer.New(size),
		stateError: buffer.New(size),
	}
	l.init(l, 4*size, size)
	l.mode = Sequential
	l.cell.SetMode(Sequential)
	return l
}

// SetMode changes the mode. The sequential flag is always kept.
func (l *LSTM) SetMode(mode Mode) {
	l.mode = mode | Sequential
}

// Size returns the number of cells.
func (l *LSTM) Size() int { return l.size }

// State returns the cell states, one row per timestep.
func (l *LSTM) State() *buffer.Buffer { return l.state }

// StateError returns the cell state errors.
func (l *LSTM) StateError() *buffer.Buffer { return l.stateError }

// Cell returns the internal cell, which carries the optional peepholes.
func (l *LSTM) Cell() *MDLSTM { return l.cell }

// Parameters returns the peephole weights of the cell, or nil if peepholes
// are disabled.
func (l *LSTM) Parameters() *Parameters { return l.cell.Parameters() }

func (l *LSTM) forward() {
	t := l.timestep
	n := l.size

	in := l.cell.Input().Row(t)
	copy(in[:4*n], l.input.Row(t))
	if t > 0 {
		copy(in[4*n:], l.state.Row(t-1))
	} else {
		clear(in[4*n:])
	}

	l.cell.Forward()

	out := l.cell.Output().Row(t)
	copy(l.output.Row(t), out[:n])
	copy(l.state.Row(t), out[n:])
}

func (l *LSTM) backward() {
	this := l.timestep - 1
	n := l.size

	outerr := l.cell.OutError().Row(this)
	copy(outerr[:n], l.outerror.Row(this))
	copy(outerr[n:], l.stateError.Row(this+1))

	l.cell.Backward()

	inerr := l.cell.InError().Row(this)
	copy(l.inerror.Row(this), inerr[:4*n])
	copy(l.stateError.Row(this), inerr[4*n:])
}

func (l *LSTM) expandState() {
	for _, b := range []*buffer.Buffer{l.state, l.stateError} {
		if b.Len() <= l.timestep {
			b.Expand()
		}
	}
}

func (l *LSTM) clearState() {
	l.cell.Clear()
	l.state.Clear()
	l.stateError.Clear()
}
