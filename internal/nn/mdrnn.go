package nn

// ModuleFactory creates the hidden module of an Mdrnn. The module must map
// size inputs to size outputs.
type ModuleFactory func(size int) Module

// MdrnnConfig describes a multi-dimensional recurrent network.
type MdrnnConfig struct {
	// TimeDim is the number of sequence dimensions.
	TimeDim int

	// HiddenSize is the number of hidden units per input element.
	HiddenSize int

	// SequenceShape is the extent of the input per dimension.
	SequenceShape []int

	// BlockShape is the extent of one block per dimension. Every block is
	// processed as a single timestep.
	BlockShape []int
}

// DefaultMdrnnConfig returns a config with all shapes set to one.
func DefaultMdrnnConfig(timedim, hiddensize int) MdrnnConfig {
	cfg := MdrnnConfig{
		TimeDim:       timedim,
		HiddenSize:    hiddensize,
		SequenceShape: make([]int, timedim),
		BlockShape:    make([]int, timedim),
	}
	for i := range timedim {
		cfg.SequenceShape[i] = 1
		cfg.BlockShape[i] = 1
	}
	return cfg
}

// Mdrnn sweeps one hidden module over a multi-dimensional input, block by
// block.
//
// The input is split into blocks of BlockShape. Blocks are visited in
// order with dimension 0 running fastest; each block is one timestep of
// the hidden module. For every dimension d a self-recurrent full
// connection feeds the hidden output of the previous block along d into
// the current one, so a block sees its predecessors in all dimensions.
// Blocks at the border of a dimension get no input along it.
//
// Input and output rows are laid out block after block, each block holding
// HiddenSize·(block size) values.
type Mdrnn struct {
	baseNetwork

	timedim    int
	hiddensize int
	shape      []int
	block      []int

	factory ModuleFactory
	module  Module
	cons    []*FullConnection
	params  *Parameters

	// Derived by the last sort.
	numBlocks int
	unit      int
}

// NewMdrnn creates an Mdrnn from cfg whose hidden module is built by
// factory.
func NewMdrnn(cfg MdrnnConfig, factory ModuleFactory) (*Mdrnn, error) {
	if cfg.TimeDim <= 0 || cfg.HiddenSize <= 0 {
		return nil, configErrorf("mdrnn", ErrInvalidShape,
			"timedim %d, hidden size %d", cfg.TimeDim, cfg.HiddenSize)
	}
	if len(cfg.SequenceShape) != cfg.TimeDim || len(cfg.BlockShape) != cfg.TimeDim {
		return nil, configErrorf("mdrnn", ErrInvalidShape,
			"%d sequence and %d block extents for %d dimensions",
			len(cfg.SequenceShape), len(cfg.BlockShape), cfg.TimeDim)
	}
	if factory == nil {
		return nil, configErrorf("mdrnn", ErrInvalidShape, "no module factory")
	}

	m := &Mdrnn{
		timedim:    cfg.TimeDim,
		hiddensize: cfg.HiddenSize,
		shape:      append([]int(nil), cfg.SequenceShape...),
		block:      append([]int(nil), cfg.BlockShape...),
		factory:    factory,
	}
	m.init(m, 0, 0)
	m.sort = m.Sort
	if err := m.Sort(); err != nil {
		return nil, err
	}
	return m, nil
}

// TimeDim returns the number of sequence dimensions.
func (m *Mdrnn) TimeDim() int { return m.timedim }

// HiddenSize returns the number of hidden units per input element.
func (m *Mdrnn) HiddenSize() int { return m.hiddensize }

// SequenceShape returns a copy of the sequence extents.
func (m *Mdrnn) SequenceShape() []int { return append([]int(nil), m.shape...) }

// BlockShape returns a copy of the block extents.
func (m *Mdrnn) BlockShape() []int { return append([]int(nil), m.block...) }

// SetSequenceShape sets the extent of dimension dim.
func (m *Mdrnn) SetSequenceShape(dim, n int) error {
	if err := m.checkDim("set sequence shape", dim, n); err != nil {
		return err
	}
	if m.shape[dim] != n {
		m.shape[dim] = n
		m.dirty = true
	}
	return nil
}

// SetBlockShape sets the block extent of dimension dim.
func (m *Mdrnn) SetBlockShape(dim, n int) error {
	if err := m.checkDim("set block shape", dim, n); err != nil {
		return err
	}
	if m.block[dim] != n {
		m.block[dim] = n
		m.dirty = true
	}
	return nil
}

func (m *Mdrnn) checkDim(op string, dim, n int) error {
	if dim < 0 || dim >= m.timedim {
		return configErrorf(op, ErrInvalidShape, "dimension %d of %d", dim, m.timedim)
	}
	if n <= 0 {
		return configErrorf(op, ErrInvalidShape, "extent %d", n)
	}
	return nil
}

// BlockSize returns the number of input elements per block.
func (m *Mdrnn) BlockSize() int {
	size := 1
	for _, b := range m.block {
		size *= b
	}
	return size
}

// NumBlocks returns the number of blocks, which is the number of timesteps
// of the hidden module per activation.
func (m *Mdrnn) NumBlocks() int {
	n := 1
	for d := range m.timedim {
		n *= m.shape[d] / m.block[d]
	}
	return n
}

// Module returns the hidden module of the last sort.
func (m *Mdrnn) Module() Module { return m.module }

// Connections returns the recurrent connections, one per dimension.
func (m *Mdrnn) Connections() []*FullConnection {
	return append([]*FullConnection(nil), m.cons...)
}

// Parameters returns the weights of all recurrent connections: one
// unit×unit matrix per dimension, where unit is HiddenSize·BlockSize.
func (m *Mdrnn) Parameters() *Parameters {
	return m.params
}

// Sort validates the shapes, rebuilds the hidden module and its recurrent
// connections, and resizes the buffers. Weights are kept when their
// number does not change.
func (m *Mdrnn) Sort() error {
	for d := range m.timedim {
		if m.shape[d]%m.block[d] != 0 {
			return configErrorf("sort", ErrInvalidShape,
				"dimension %d: sequence extent %d is not a multiple of block extent %d", d, m.shape[d], m.block[d])
		}
	}

	unit := m.hiddensize * m.BlockSize()
	module := m.factory(unit)
	if module.InSize() != unit || module.OutSize() != unit {
		return configErrorf("sort", ErrDimensionMismatch,
			"hidden module maps %d→%d, want %d→%d", module.InSize(), module.OutSize(), unit, unit)
	}
	module.SetMode(module.Mode() | Sequential)

	if n := unit * unit * m.timedim; m.params == nil || m.params.Len() != n {
		m.params = NewParameters(n)
	}
	data, grad := m.params.Data(), m.params.Derivatives()

	cons := make([]*FullConnection, m.timedim)
	recurrency := 1
	for d := range m.timedim {
		lo, hi := d*unit*unit, (d+1)*unit*unit
		c, err := NewFullConnectionWithParameters(module, module, data[lo:hi], grad[lo:hi], 0, unit, 0, unit)
		if err != nil {
			return err
		}
		c.SetMode(Sequential)
		if err := c.SetRecurrent(recurrency); err != nil {
			return err
		}
		recurrency *= m.shape[d] / m.block[d]
		cons[d] = c
	}

	m.module = module
	m.cons = cons
	m.unit = unit
	m.numBlocks = m.NumBlocks()
	m.initBuffers(m.numBlocks*unit, m.numBlocks*unit)
	m.dirty = false
	m.Clear()
	return nil
}

// coords writes the block coordinates of block index i into c.
func (m *Mdrnn) coords(i int, c []int) {
	for d := range m.timedim {
		n := m.shape[d] / m.block[d]
		c[d] = i % n
		i /= n
	}
}

func (m *Mdrnn) forward() {
	in := m.input.Row(m.timestep)
	out := m.output.Row(m.timestep)
	u := m.unit

	m.clearState()
	coords := make([]int, m.timedim)
	for i := range m.numBlocks {
		m.coords(i, coords)
		for d, c := range m.cons {
			if coords[d] == 0 {
				c.DryForward()
			} else {
				c.Forward()
			}
		}
		m.module.AddToInput(in[i*u : (i+1)*u])
		m.module.Forward()
		copy(out[i*u:(i+1)*u], m.module.Output().Row(i))
	}
}

func (m *Mdrnn) backward() {
	this := m.timestep - 1
	outerr := m.outerror.Row(this)
	inerr := m.inerror.Row(this)
	u := m.unit

	coords := make([]int, m.timedim)
	for i := m.numBlocks - 1; i >= 0; i-- {
		m.module.AddToOutError(outerr[i*u : (i+1)*u])
		m.module.Backward()

		m.coords(i, coords)
		for d, c := range m.cons {
			if coords[d] == 0 {
				c.DryBackward()
			} else {
				c.Backward()
			}
		}
		copy(inerr[i*u:(i+1)*u], m.module.InError().Row(i))
	}
}

func (m *Mdrnn) clearState() {
	if m.module == nil {
		return
	}
	m.module.Clear()
	for _, c := range m.cons {
		c.Clear()
	}
}
