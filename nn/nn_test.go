// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/born-ml/arac/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestModuleInterface verifies that concrete types implement Module.
func TestModuleInterface(t *testing.T) {
	gate := nn.NewGate(2)
	softmax, err := nn.NewPartialSoftmax(4, 2)
	require.NoError(t, err)

	modules := []nn.Module{
		nn.NewLinear(2), nn.NewBias(), nn.NewSigmoid(2), nn.NewTanh(2),
		nn.NewSquash(2, nn.IdentityFunc), nn.NewSoftmax(2), softmax, gate,
		nn.NewMDLSTM(1, 2), nn.NewLSTM(1), nn.NewNetwork(),
	}
	for _, m := range modules {
		assert.Equal(t, m.InSize(), m.Input().Width())
		assert.Equal(t, m.OutSize(), m.Output().Width())
	}
}

// TestConnectionInterface verifies that concrete types implement
// Connection and expose their parameters.
func TestConnectionInterface(t *testing.T) {
	in, out := nn.NewLinear(2), nn.NewLinear(2)

	full, err := nn.NewFullConnection(in, out)
	require.NoError(t, err)
	linear, err := nn.NewLinearConnection(in, out)
	require.NoError(t, err)
	identity, err := nn.NewIdentityConnection(in, out)
	require.NoError(t, err)
	perm, err := nn.NewPermutationConnection(in, out, []int{1, 0}, 1)
	require.NoError(t, err)

	for _, c := range []nn.Connection{full, linear, identity, perm} {
		assert.Same(t, in, c.Incoming())
		assert.Same(t, out, c.Outgoing())
	}
	for _, p := range []nn.Parametrized{full, linear} {
		assert.Positive(t, p.Parameters().Len())
	}
}

func TestRecurrentSequence(t *testing.T) {
	net := nn.NewNetwork()
	in, hidden, out := nn.NewLinear(1), nn.NewTanh(2), nn.NewLinear(1)
	net.AddModule(in, nn.RoleInput)
	net.AddModule(hidden, nn.RoleHidden)
	net.AddModule(out, nn.RoleOutput)

	c1, err := nn.NewFullConnection(in, hidden)
	require.NoError(t, err)
	c2, err := nn.NewFullConnection(hidden, out)
	require.NoError(t, err)
	rec, err := nn.NewFullConnection(hidden, hidden)
	require.NoError(t, err)

	for _, c := range []nn.Component{net, in, hidden, out, c1, c2, rec} {
		c.SetMode(nn.Sequential)
	}
	require.NoError(t, rec.SetRecurrent(1))
	net.AddConnection(c1)
	net.AddConnection(c2)
	net.AddConnection(rec)
	nn.InitNetwork(net, rand.New(rand.NewSource(42)))

	for _, x := range []float64{0.5, -0.25, 1} {
		net.Activate([]float64{x})
	}
	assert.Equal(t, 3, net.Timestep())

	for range 3 {
		net.BackActivate([]float64{1})
	}
	assert.Equal(t, 0, net.Timestep())
	for _, p := range net.Parameters() {
		assert.Len(t, p.Derivatives(), p.Len())
	}
}

func TestSortErrors(t *testing.T) {
	net := nn.NewNetwork()
	a, b := nn.NewLinear(1), nn.NewLinear(1)
	net.AddModule(a, nn.RoleInput)
	net.AddModule(b, nn.RoleOutput)
	ab, _ := nn.NewIdentityConnection(a, b)
	ba, _ := nn.NewIdentityConnection(b, a)
	net.AddConnection(ab)
	net.AddConnection(ba)

	var cerr *nn.ConfigError
	require.ErrorAs(t, net.Sort(), &cerr)
	assert.ErrorIs(t, cerr, nn.ErrCycle)
}

func ExampleNetwork() {
	net := nn.NewNetwork()
	in, out := nn.NewLinear(2), nn.NewLinear(2)
	net.AddModule(in, nn.RoleInput)
	net.AddModule(out, nn.RoleOutput)

	con, err := nn.NewFullConnection(in, out)
	if err != nil {
		panic(err)
	}
	copy(con.Parameters().Data(), []float64{0.5, -2, 1.2, 4})
	net.AddConnection(con)

	fmt.Printf("%.2f\n", net.Activate([]float64{2, 4}))
	fmt.Printf("%.2f\n", net.BackActivate([]float64{3, -2}))
	fmt.Printf("%.2f\n", con.Parameters().Derivatives())
	// Output:
	// [-7.00 18.40]
	// [-0.90 -14.00]
	// [6.00 12.00 -4.00 -8.00]
}

func ExampleMdrnn() {
	cfg := nn.DefaultMdrnnConfig(2, 1)
	cfg.SequenceShape = []int{2, 2}
	net, err := nn.NewMdrnn(cfg, func(size int) nn.Module { return nn.NewLinear(size) })
	if err != nil {
		panic(err)
	}
	copy(net.Parameters().Data(), []float64{0.5, 2})

	fmt.Println(net.Activate([]float64{1, 2, 3, 4}))
	// Output:
	// [1 2.5 5 11.5]
}
