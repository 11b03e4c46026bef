package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGemv_NoTrans(t *testing.T) {
	// 2×3 matrix, row-major.
	a := []float64{
		2.5, 3.0, 1.0,
		3.0, 4.0, -3.0,
	}
	x := []float64{1.2, -2.25, 5.0}
	y := []float64{0, 0}

	Gemv(false, 2, 3, 1, a, 3, x, 1, 1, y, 1)

	assert.InDeltaSlice(t, []float64{1.25, -20.4}, y, 1e-9)
}

func TestGemv_Accumulates(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	x := []float64{1, 1}
	y := []float64{10, 20}

	Gemv(false, 2, 2, 1, a, 2, x, 1, 1, y, 1)

	assert.InDeltaSlice(t, []float64{13, 27}, y, 1e-12)
}

func TestGemv_Trans(t *testing.T) {
	// Aᵀ·x for A = [[0 1] [2 3] [4 5]].
	a := []float64{0, 1, 2, 3, 4, 5}
	x := []float64{0.5, 1.2, 3.4}
	y := []float64{0, 0}

	Gemv(true, 3, 2, 1, a, 2, x, 1, 1, y, 1)

	assert.InDeltaSlice(t, []float64{16, 21.1}, y, 1e-9)
}

func TestGemv_Stride(t *testing.T) {
	// Upper-left 2×2 block of a 2×3 matrix.
	a := []float64{
		1, 2, 99,
		3, 4, 99,
	}
	x := []float64{1, 0, 1, 0}
	y := []float64{0, 0, 0}

	Gemv(false, 2, 2, 2, a, 3, x, 2, 0, y, 2)

	assert.InDeltaSlice(t, []float64{6, 0, 14}, y, 1e-12)
}

func TestGemv_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		Gemv(false, 0, 3, 1, nil, 3, []float64{1, 2, 3}, 1, 1, nil, 1)
	})
}

func TestGer(t *testing.T) {
	a := make([]float64, 6)
	x := []float64{0.5, 1.2, 3.4}
	y := []float64{2, 3}

	Ger(3, 2, 1, x, 1, y, 1, a, 2)

	assert.InDeltaSlice(t, []float64{1, 1.5, 2.4, 3.6, 6.8, 10.2}, a, 1e-9)

	Ger(3, 2, 1, x, 1, y, 1, a, 2)
	assert.InDeltaSlice(t, []float64{2, 3, 4.8, 7.2, 13.6, 20.4}, a, 1e-9)
}

func TestGemv_BadLeadingDimension(t *testing.T) {
	assert.Panics(t, func() {
		Gemv(false, 2, 3, 1, make([]float64, 6), 2, make([]float64, 3), 1, 0, make([]float64, 2), 1)
	})
}
