package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func linearFactory(size int) Module { return NewLinear(size) }

func newTestMdrnn(t *testing.T) *Mdrnn {
	t.Helper()

	cfg := DefaultMdrnnConfig(2, 1)
	cfg.SequenceShape = []int{2, 2}
	net, err := NewMdrnn(cfg, linearFactory)
	require.NoError(t, err)
	return net
}

func TestMdrnn(t *testing.T) {
	net := newTestMdrnn(t)
	require.Equal(t, 4, net.NumBlocks())
	require.Equal(t, 1, net.BlockSize())
	require.Equal(t, 2, net.Parameters().Len())
	copy(net.Parameters().Data(), []float64{0.5, 2})

	out := net.Activate([]float64{1, 2, 3, 4})
	assert.InDeltaSlice(t, []float64{1, 2.5, 5, 11.5}, out, 1e-12)

	inerr := net.BackActivate([]float64{2, 4, 8, 10})
	assert.InDeltaSlice(t, []float64{40, 24, 13, 10}, inerr, 1e-12)

	// d/dw0 sums err·prev over blocks with a predecessor along dimension 0,
	// d/dw1 along dimension 1.
	assert.InDeltaSlice(t, []float64{24*1 + 10*5, 13*1 + 10*2.5}, net.Parameters().Derivatives(), 1e-12)
}

func TestMdrnn_ActivateTwice(t *testing.T) {
	net := newTestMdrnn(t)
	copy(net.Parameters().Data(), []float64{0.5, 2})

	net.Activate([]float64{9, 9, 9, 9})
	out := net.Activate([]float64{1, 2, 3, 4})
	assert.InDeltaSlice(t, []float64{1, 2.5, 5, 11.5}, out, 1e-12)
}

func TestMdrnn_Blocks(t *testing.T) {
	cfg := DefaultMdrnnConfig(1, 2)
	cfg.SequenceShape = []int{4}
	cfg.BlockShape = []int{2}
	net, err := NewMdrnn(cfg, func(size int) Module { return NewTanh(size) })
	require.NoError(t, err)

	assert.Equal(t, 2, net.NumBlocks())
	assert.Equal(t, 2, net.BlockSize())
	assert.Equal(t, 8, net.InSize(), "two blocks of HiddenSize·BlockSize values")
	assert.Equal(t, 16, net.Parameters().Len(), "one 4×4 matrix")
	assert.Equal(t, 4, net.Module().InSize())
	require.Len(t, net.Connections(), 1)
	assert.Equal(t, 1, net.Connections()[0].Recurrent())
}

func TestMdrnn_Reshape(t *testing.T) {
	net := newTestMdrnn(t)
	net.Parameters().Data()[0] = 0.5

	require.NoError(t, net.SetSequenceShape(0, 3))
	assert.True(t, net.Dirty())
	assert.Equal(t, []int{3, 2}, net.SequenceShape())

	out := net.Activate([]float64{1, 1, 1, 1, 1, 1})
	assert.Len(t, out, 6)
	assert.Equal(t, 0.5, net.Parameters().Data()[0], "weights survive a reshape")
	assert.Equal(t, 3, net.Connections()[1].Recurrent())

	assert.ErrorIs(t, net.SetSequenceShape(2, 1), ErrInvalidShape)
	assert.ErrorIs(t, net.SetBlockShape(0, 0), ErrInvalidShape)

	require.NoError(t, net.SetBlockShape(0, 2))
	assert.Equal(t, []int{2, 1}, net.BlockShape())
	assert.ErrorIs(t, net.Sort(), ErrInvalidShape, "3 is not a multiple of 2")
}

func TestMdrnn_ConfigErrors(t *testing.T) {
	_, err := NewMdrnn(MdrnnConfig{TimeDim: 0, HiddenSize: 1}, linearFactory)
	assert.ErrorIs(t, err, ErrInvalidShape)

	cfg := DefaultMdrnnConfig(2, 1)
	cfg.BlockShape = []int{1}
	_, err = NewMdrnn(cfg, linearFactory)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = NewMdrnn(DefaultMdrnnConfig(1, 1), func(size int) Module { return NewGate(size) })
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewMdrnn(DefaultMdrnnConfig(1, 1), nil)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestMdrnn_Gradient(t *testing.T) {
	cfg := DefaultMdrnnConfig(2, 1)
	cfg.SequenceShape = []int{4, 2}
	cfg.BlockShape = []int{2, 1}
	net, err := NewMdrnn(cfg, func(size int) Module { return NewTanh(size) })
	require.NoError(t, err)
	require.Equal(t, 4, net.NumBlocks())
	require.Equal(t, 8, net.Parameters().Len())

	w := testInput(8)
	floats.Scale(0.6, w)
	copy(net.Parameters().Data(), w)

	x := testInput(net.InSize())
	outerr := []float64{1, -0.5, 0.3, 2, -1.2, 0.7, 0.4, -0.9}
	checkSequenceGradient(t, net, net.Parameters(), [][]float64{x}, [][]float64{outerr})
}
