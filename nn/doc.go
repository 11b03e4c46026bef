// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the arac neural network composition library.
//
// # Overview
//
// Networks are graphs of modules connected by connections:
//   - Modules: Linear, Bias, Sigmoid, Tanh, Squash, Softmax,
//     PartialSoftmax, Gate, MDLSTM, LSTM
//   - Connections: IdentityConnection, LinearConnection, FullConnection,
//     PermutationConnection
//   - Composites: Network, Mdrnn
//   - Parameters: flat value and derivative arrays, owned or borrowed
//   - Initialization: Xavier, Uniform, Zeros, InitNetwork
//
// Every module keeps one row per timestep in its input, output and error
// buffers, so a sequence can be run forward step by step and then
// backpropagated through time.
//
// # Basic Usage
//
//	import "github.com/born-ml/arac/nn"
//
//	func main() {
//	    net := nn.NewNetwork()
//	    in, hidden, out := nn.NewLinear(2), nn.NewTanh(3), nn.NewLinear(1)
//	    net.AddModule(in, nn.RoleInput)
//	    net.AddModule(hidden, nn.RoleHidden)
//	    net.AddModule(out, nn.RoleOutput)
//
//	    c1, _ := nn.NewFullConnection(in, hidden)
//	    c2, _ := nn.NewFullConnection(hidden, out)
//	    net.AddConnection(c1)
//	    net.AddConnection(c2)
//	    nn.InitNetwork(net, nil)
//
//	    y := net.Activate([]float64{0.5, -1})
//	    net.BackActivate([]float64{y[0] - 1})
//	}
//
// # Recurrent Networks
//
// Put every component into Sequential mode and mark the connections that
// close a cycle with SetRecurrent. A recurrent connection with offset n
// reads the output of n timesteps ago; it contributes nothing while that
// timestep lies before the start of the sequence.
//
//	rec, _ := nn.NewFullConnection(hidden, hidden)
//	rec.SetMode(nn.Sequential)
//	if err := rec.SetRecurrent(1); err != nil {
//	    log.Fatal(err)
//	}
//
// Call Clear between sequences.
//
// # Errors
//
// Invalid graphs are reported as *ConfigError values wrapping one of the
// Err* sentinels. Precondition violations, such as backpropagating a
// timestep that was never activated, panic.
package nn
