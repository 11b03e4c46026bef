package nn

import (
	"fmt"
	"math"
)

// Activation selects an elementwise squashing function.
type Activation int

// Supported activations.
const (
	IdentityFunc Activation = iota // f(x) = x
	LogisticFunc                   // f(x) = 1 / (1 + e^-x)
	TanhFunc                       // f(x) = tanh(x)
)

// String returns the name of the activation.
func (a Activation) String() string {
	switch a {
	case IdentityFunc:
		return "identity"
	case LogisticFunc:
		return "logistic"
	case TanhFunc:
		return "tanh"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// Funcs returns the function and its derivative, both taking the
// unsquashed argument.
func (a Activation) Funcs() (f, df func(float64) float64) {
	switch a {
	case IdentityFunc:
		return identity, identityPrime
	case LogisticFunc:
		return sigmoid, sigmoidPrime
	case TanhFunc:
		return math.Tanh, tanhPrime
	default:
		panic(fmt.Sprintf("activation: unknown kind %d", int(a)))
	}
}

func identity(x float64) float64 { return x }

func identityPrime(float64) float64 { return 1 }

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func sigmoidPrime(x float64) float64 {
	s := sigmoid(x)
	return s * (1 - s)
}

func tanhPrime(x float64) float64 {
	t := math.Tanh(x)
	return 1 - t*t
}
