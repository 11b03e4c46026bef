package nn

import "fmt"

// Parameters is a flat array of trainable values together with a parallel
// array of accumulated derivatives.
//
// Both arrays are either owned by the store or borrowed from a caller, for
// example a slice of one big parameter vector handed to an external
// optimizer. Borrowed arrays must stay alive as long as the store is used.
//
// Derivatives are only ever accumulated by backward passes. Callers zero
// them between optimization steps with ClearDerivatives.
//
// Example:
//
//	// All weights of a network in one vector.
//	flat := make([]float64, 6)
//	grad := make([]float64, 6)
//	con, err := nn.NewFullConnectionWithParameters(in, out, flat, grad, 0, 2, 0, 3)
type Parameters struct {
	data      []float64 // Parameter values
	grad      []float64 // Accumulated derivatives
	ownsData  bool
	ownsGrads bool
}

// NewParameters creates a store owning n zero-initialized parameters and
// derivatives.
func NewParameters(n int) *Parameters {
	if n < 0 {
		panic(fmt.Sprintf("parameters: negative length %d", n))
	}
	return &Parameters{
		data:      make([]float64, n),
		grad:      make([]float64, n),
		ownsData:  true,
		ownsGrads: true,
	}
}

// NewBorrowedParameters creates a store referencing caller-owned arrays.
// Both arrays must have the same length.
func NewBorrowedParameters(data, grad []float64) (*Parameters, error) {
	if len(data) != len(grad) {
		return nil, configErrorf("parameters", ErrParameterLength,
			"%d values but %d derivatives", len(data), len(grad))
	}
	return &Parameters{data: data, grad: grad}, nil
}

// Len returns the number of parameters.
func (p *Parameters) Len() int {
	return len(p.data)
}

// Data returns the parameter values. Writes go straight into the store.
func (p *Parameters) Data() []float64 {
	return p.data
}

// Derivatives returns the accumulated derivatives.
func (p *Parameters) Derivatives() []float64 {
	return p.grad
}

// OwnsData reports whether the parameter values are owned by the store.
func (p *Parameters) OwnsData() bool {
	return p.ownsData
}

// OwnsDerivatives reports whether the derivatives are owned by the store.
func (p *Parameters) OwnsDerivatives() bool {
	return p.ownsGrads
}

// SetData makes the store reference data instead of its current values.
// The length must not change.
func (p *Parameters) SetData(data []float64) error {
	if len(data) != len(p.data) {
		return configErrorf("parameters", ErrParameterLength,
			"got %d values, want %d", len(data), len(p.data))
	}
	p.data = data
	p.ownsData = false
	return nil
}

// SetDerivatives makes the store accumulate into grad instead of its
// current derivative array. The length must not change.
func (p *Parameters) SetDerivatives(grad []float64) error {
	if len(grad) != len(p.grad) {
		return configErrorf("parameters", ErrParameterLength,
			"got %d derivatives, want %d", len(grad), len(p.grad))
	}
	p.grad = grad
	p.ownsGrads = false
	return nil
}

// ClearDerivatives sets all derivatives to zero.
func (p *Parameters) ClearDerivatives() {
	clear(p.grad)
}

// Parametrized is implemented by components that carry trainable
// parameters.
type Parametrized interface {
	Parameters() *Parameters
}
