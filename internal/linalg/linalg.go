// Package linalg provides the dense linear algebra primitives used by the
// connection kernels. Storage is row-major with explicit leading dimensions
// and strides; the work is delegated to gonum's BLAS implementation.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// Gemv computes y := alpha*op(A)*x + beta*y where A is an m×n row-major
// matrix with leading dimension lda and op(A) is A or Aᵀ.
//
// With trans == false, x has n elements and y has m elements; with
// trans == true the roles are swapped.
func Gemv(trans bool, m, n int, alpha float64, a []float64, lda int,
	x []float64, incX int, beta float64, y []float64, incY int) {
	if m == 0 || n == 0 {
		return
	}
	if lda < n {
		panic(fmt.Sprintf("gemv: leading dimension %d smaller than %d columns", lda, n))
	}

	t := blas.NoTrans
	lenX, lenY := n, m
	if trans {
		t = blas.Trans
		lenX, lenY = m, n
	}

	blas64.Gemv(t, alpha,
		blas64.General{Rows: m, Cols: n, Stride: lda, Data: a},
		blas64.Vector{N: lenX, Inc: incX, Data: x},
		beta,
		blas64.Vector{N: lenY, Inc: incY, Data: y},
	)
}

// Ger performs the rank-one update A += alpha*x*yᵀ where A is m×n
// row-major with leading dimension lda, x has m elements and y has n.
func Ger(m, n int, alpha float64, x []float64, incX int, y []float64, incY int, a []float64, lda int) {
	if m == 0 || n == 0 {
		return
	}
	if lda < n {
		panic(fmt.Sprintf("ger: leading dimension %d smaller than %d columns", lda, n))
	}

	blas64.Ger(alpha,
		blas64.Vector{N: m, Inc: incX, Data: x},
		blas64.Vector{N: n, Inc: incY, Data: y},
		blas64.General{Rows: m, Cols: n, Stride: lda, Data: a},
	)
}
