package nn

import "math"

// MDLSTM is a multi-dimensional LSTM cell of size N with D incoming state
// directions.
//
// Input layout, width (3+2D)·N:
//
//	[input gate N | forget gates D·N | cell input N | output gate N | previous states D·N]
//
// Output layout, width 2N:
//
//	[hidden output N | cell state N]
//
// Forget gates and previous states are laid out direction-major: the
// value for direction d and cell j is at d·N+j.
//
// The cell state is
//
//	s = σ(ig)·tanh(ci) + Σ_d σ(fg_d)·prev_d
//
// and the hidden output is σ(og)·tanh(s). With peepholes enabled the
// previous states feed into the input and forget gates and the new state
// feeds into the output gate through elementwise weights.
type MDLSTM struct {
	layer

	size    int
	timedim int

	// Peephole weights [input N | forget D·N | output N], nil if disabled.
	peepholes *Parameters

	// Squashed gates of every forward step, indexed like the buffers.
	records []mdlstmRecord
}

type mdlstmRecord struct {
	inputGate  []float64
	forgetGate []float64
	cellInput  []float64 // tanh of the cell input
	outputGate []float64
}

func newMdlstmRecord(size, timedim int) mdlstmRecord {
	return mdlstmRecord{
		inputGate:  make([]float64, size),
		forgetGate: make([]float64, size*timedim),
		cellInput:  make([]float64, size),
		outputGate: make([]float64, size),
	}
}

// NewMDLSTM creates a cell of the given size with timedim state
// directions.
func NewMDLSTM(size, timedim int) *MDLSTM {
	mustPositive("mdlstm", size)
	mustPositive("mdlstm timedim", timedim)
	m := &MDLSTM{size: size, timedim: timedim}
	m.init(m, (3+2*timedim)*size, 2*size)
	m.records = []mdlstmRecord{newMdlstmRecord(size, timedim)}
	return m
}

// Size returns the number of cells.
func (m *MDLSTM) Size() int { return m.size }

// TimeDim returns the number of incoming state directions.
func (m *MDLSTM) TimeDim() int { return m.timedim }

// EnablePeepholes allocates zero peephole weights and returns them. Calling
// it again returns the existing weights.
func (m *MDLSTM) EnablePeepholes() *Parameters {
	if m.peepholes == nil {
		m.peepholes = NewParameters(2*m.size + m.size*m.timedim)
	}
	return m.peepholes
}

// Parameters returns the peephole weights, or nil if peepholes are
// disabled.
func (m *MDLSTM) Parameters() *Parameters {
	return m.peepholes
}

// regions splits a row of input width into its five parts.
func (m *MDLSTM) regions(row []float64) (ig, fg, ci, og, prev []float64) {
	s, sd := m.size, m.size*m.timedim
	ig = row[:s]
	fg = row[s : s+sd]
	ci = row[s+sd : 2*s+sd]
	og = row[2*s+sd : 3*s+sd]
	prev = row[3*s+sd : 3*s+2*sd]
	return
}

// peepholeWeights returns the three weight regions, all nil without
// peepholes.
func (m *MDLSTM) peepholeWeights(p []float64) (in, forget, out []float64) {
	if p == nil {
		return nil, nil, nil
	}
	s, sd := m.size, m.size*m.timedim
	return p[:s], p[s : s+sd], p[s+sd : 2*s+sd]
}

func (m *MDLSTM) forward() {
	t := m.timestep
	ig, fg, ci, og, prev := m.regions(m.input.Row(t))
	out := m.output.Row(t)
	h, state := out[:m.size], out[m.size:]
	r := &m.records[t]

	var wIn, wF, wOut []float64
	if m.peepholes != nil {
		wIn, wF, wOut = m.peepholeWeights(m.peepholes.Data())
	}

	for j := range m.size {
		igRaw := ig[j]
		if wIn != nil {
			for d := range m.timedim {
				igRaw += wIn[j] * prev[d*m.size+j]
			}
		}
		r.inputGate[j] = sigmoid(igRaw)
		r.cellInput[j] = math.Tanh(ci[j])

		s := r.inputGate[j] * r.cellInput[j]
		for d := range m.timedim {
			k := d*m.size + j
			fRaw := fg[k]
			if wF != nil {
				fRaw += wF[k] * prev[k]
			}
			r.forgetGate[k] = sigmoid(fRaw)
			s += r.forgetGate[k] * prev[k]
		}
		state[j] = s

		oRaw := og[j]
		if wOut != nil {
			oRaw += wOut[j] * s
		}
		r.outputGate[j] = sigmoid(oRaw)
		h[j] = r.outputGate[j] * math.Tanh(s)
	}
}

func (m *MDLSTM) backward() {
	this := m.timestep - 1
	_, _, _, _, prev := m.regions(m.input.Row(this))
	state := m.output.Row(this)[m.size:]
	outerr := m.outerror.Row(this)
	hErr, nextStateErr := outerr[:m.size], outerr[m.size:]
	igErr, fgErr, ciErr, ogErr, prevErr := m.regions(m.inerror.Row(this))
	r := &m.records[this]

	var wIn, wF, wOut, dIn, dF, dOut []float64
	if m.peepholes != nil {
		wIn, wF, wOut = m.peepholeWeights(m.peepholes.Data())
		dIn, dF, dOut = m.peepholeWeights(m.peepholes.Derivatives())
	}

	for j := range m.size {
		og := r.outputGate[j]
		ts := math.Tanh(state[j])

		ogErr[j] = og * (1 - og) * hErr[j] * ts

		stateErr := hErr[j]*og*(1-ts*ts) + nextStateErr[j]
		if wOut != nil {
			stateErr += ogErr[j] * wOut[j]
			dOut[j] += ogErr[j] * state[j]
		}

		ig, c := r.inputGate[j], r.cellInput[j]
		ciErr[j] = ig * (1 - c*c) * stateErr
		igErr[j] = ig * (1 - ig) * c * stateErr

		for d := range m.timedim {
			k := d*m.size + j
			f := r.forgetGate[k]
			fgErr[k] = f * (1 - f) * stateErr * prev[k]
			prevErr[k] = stateErr * f
			if wF != nil {
				prevErr[k] += fgErr[k]*wF[k] + igErr[j]*wIn[j]
				dF[k] += fgErr[k] * prev[k]
				dIn[j] += igErr[j] * prev[k]
			}
		}
	}
}

func (m *MDLSTM) expandState() {
	for len(m.records) < m.output.Len() {
		m.records = append(m.records, newMdlstmRecord(m.size, m.timedim))
	}
}
