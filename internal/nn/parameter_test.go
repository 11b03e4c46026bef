package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameters_Owned(t *testing.T) {
	p := NewParameters(3)
	assert.Equal(t, 3, p.Len())
	assert.True(t, p.OwnsData())
	assert.True(t, p.OwnsDerivatives())
	assert.Equal(t, []float64{0, 0, 0}, p.Derivatives())

	assert.Panics(t, func() { NewParameters(-1) })
}

func TestParameters_Borrowed(t *testing.T) {
	data := []float64{1, 2}
	grad := []float64{0, 0}

	p, err := NewBorrowedParameters(data, grad)
	require.NoError(t, err)
	assert.False(t, p.OwnsData())
	assert.False(t, p.OwnsDerivatives())

	p.Data()[0] = 5
	assert.Equal(t, 5.0, data[0], "writes go to the caller's array")

	_, err = NewBorrowedParameters(data, grad[:1])
	assert.ErrorIs(t, err, ErrParameterLength)
}

func TestParameters_Set(t *testing.T) {
	p := NewParameters(2)

	require.NoError(t, p.SetData([]float64{3, 4}))
	assert.False(t, p.OwnsData())
	assert.True(t, p.OwnsDerivatives())

	grad := []float64{1, 1}
	require.NoError(t, p.SetDerivatives(grad))
	p.ClearDerivatives()
	assert.Equal(t, []float64{0, 0}, grad)

	assert.ErrorIs(t, p.SetData([]float64{1}), ErrParameterLength)
	assert.ErrorIs(t, p.SetDerivatives(nil), ErrParameterLength)
}

func TestConfigError(t *testing.T) {
	err := configErrorf("sort", ErrCycle, "%d modules", 2)
	assert.Equal(t, "sort: graph has a non-recurrent cycle: 2 modules", err.Error())
	assert.ErrorIs(t, err, ErrCycle)

	bare := &ConfigError{Op: "sort", Err: ErrCycle}
	assert.Equal(t, "sort: graph has a non-recurrent cycle", bare.Error())
}
