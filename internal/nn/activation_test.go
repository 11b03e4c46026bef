package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivation_Funcs(t *testing.T) {
	f, df := LogisticFunc.Funcs()
	assert.Equal(t, 0.5, f(0))
	assert.Equal(t, 0.25, df(0))

	f, df = TanhFunc.Funcs()
	assert.InDelta(t, math.Tanh(0.3), f(0.3), 1e-15)
	assert.InDelta(t, 1-math.Tanh(0.3)*math.Tanh(0.3), df(0.3), 1e-15)

	f, df = IdentityFunc.Funcs()
	assert.Equal(t, -4.5, f(-4.5))
	assert.Equal(t, 1.0, df(-4.5))
}

func TestActivation_Unknown(t *testing.T) {
	assert.Equal(t, "Activation(9)", Activation(9).String())
	assert.Panics(t, func() { Activation(9).Funcs() })
}
