package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftmax(t *testing.T) {
	s := NewSoftmax(2)
	s.AddToInput([]float64{2, 4})
	s.Forward()

	assert.InDeltaSlice(t, []float64{0.11920292202211756, 0.88079707797788243}, s.Output().Row(0), 1e-12)

	s.AddToOutError([]float64{2, 4})
	s.Backward()

	assert.Equal(t, []float64{2, 4}, s.InError().Row(0))
}

func TestSoftmax_Clamp(t *testing.T) {
	s := NewSoftmax(3)
	s.AddToInput([]float64{1000, 1000, -1000})
	s.Forward()

	out := s.Output().Row(0)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0}, out, 1e-12)
	for _, v := range out {
		assert.False(t, math.IsNaN(v))
	}
}

func TestPartialSoftmax(t *testing.T) {
	s, err := NewPartialSoftmax(4, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, s.SliceLength())

	s.AddToInput([]float64{2, 4, 4, 8})
	s.Forward()

	assert.InDeltaSlice(t,
		[]float64{0.11920292202211756, 0.88079707797788243, 0.098446325560013689, 0.90155367443998624},
		s.Output().Row(0), 1e-12)

	s.AddToOutError([]float64{2, 4, 4, 8})
	s.Backward()

	assert.Equal(t, []float64{2, 4, 4, 8}, s.InError().Row(0))
}

func TestPartialSoftmax_InvalidShape(t *testing.T) {
	_, err := NewPartialSoftmax(5, 2)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = NewPartialSoftmax(4, 0)
	assert.ErrorIs(t, err, ErrInvalidShape)
}
