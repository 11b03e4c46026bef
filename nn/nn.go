// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/arac/internal/buffer"
	"github.com/born-ml/arac/internal/nn"
)

// Buffer holds one row of values per timestep.
type Buffer = buffer.Buffer

// Ownership tells whether a Buffer owns its rows.
type Ownership = buffer.Ownership

// Buffer ownership.
const (
	Owned    = buffer.Owned
	Borrowed = buffer.Borrowed
)

// Component is the forward/backward contract shared by modules and
// connections.
type Component = nn.Component

// Mode selects sequential and error-agnostic behavior of a component.
type Mode = nn.Mode

// Component modes.
const (
	Simple                  = nn.Simple
	ErrorAgnostic           = nn.ErrorAgnostic
	Sequential              = nn.Sequential
	SequentialErrorAgnostic = nn.SequentialErrorAgnostic
)

// Module is a network node with per-timestep buffers.
type Module = nn.Module

// Connection routes values between two modules.
type Connection = nn.Connection

// Parameters is a flat array of weights with their derivatives.
type Parameters = nn.Parameters

// Parametrized is implemented by components with trainable parameters.
type Parametrized = nn.Parametrized

// NewParameters creates n owned, zero parameters.
func NewParameters(n int) *Parameters {
	return nn.NewParameters(n)
}

// NewBorrowedParameters creates parameters referencing caller-owned arrays.
func NewBorrowedParameters(data, grad []float64) (*Parameters, error) {
	return nn.NewBorrowedParameters(data, grad)
}

// Errors

// ConfigError describes a rejected graph configuration.
type ConfigError = nn.ConfigError

// Configuration errors.
var (
	ErrDimensionMismatch      = nn.ErrDimensionMismatch
	ErrSliceOutOfRange        = nn.ErrSliceOutOfRange
	ErrRecurrentNotSequential = nn.ErrRecurrentNotSequential
	ErrCycle                  = nn.ErrCycle
	ErrUnknownModule          = nn.ErrUnknownModule
	ErrInvalidShape           = nn.ErrInvalidShape
	ErrInvalidPermutation     = nn.ErrInvalidPermutation
	ErrParameterLength        = nn.ErrParameterLength
)

// Modules

// Linear passes its input through unchanged.
type Linear = nn.Linear

// NewLinear creates an N→N identity module.
func NewLinear(size int) *Linear {
	return nn.NewLinear(size)
}

// Bias always outputs 1.
type Bias = nn.Bias

// NewBias creates a bias module.
func NewBias() *Bias {
	return nn.NewBias()
}

// Activation selects an elementwise function.
type Activation = nn.Activation

// Activations.
const (
	IdentityFunc = nn.IdentityFunc
	LogisticFunc = nn.LogisticFunc
	TanhFunc     = nn.TanhFunc
)

// Squash applies an activation elementwise.
type Squash = nn.Squash

// NewSquash creates an N→N module applying a.
func NewSquash(size int, a Activation) *Squash {
	return nn.NewSquash(size, a)
}

// Sigmoid applies the logistic function elementwise.
type Sigmoid = nn.Sigmoid

// NewSigmoid creates an N→N logistic module.
func NewSigmoid(size int) *Sigmoid {
	return nn.NewSigmoid(size)
}

// Tanh applies tanh elementwise.
type Tanh = nn.Tanh

// NewTanh creates an N→N tanh module.
func NewTanh(size int) *Tanh {
	return nn.NewTanh(size)
}

// Softmax normalises exponentials to sum to one.
type Softmax = nn.Softmax

// NewSoftmax creates an N→N softmax module.
func NewSoftmax(size int) *Softmax {
	return nn.NewSoftmax(size)
}

// PartialSoftmax applies a softmax per slice.
type PartialSoftmax = nn.PartialSoftmax

// NewPartialSoftmax creates an N→N module normalising slices of slicelen.
func NewPartialSoftmax(size, slicelen int) (*PartialSoftmax, error) {
	return nn.NewPartialSoftmax(size, slicelen)
}

// Gate multiplies the second input half with the logistic of the first.
type Gate = nn.Gate

// NewGate creates a 2N→N gate.
func NewGate(size int) *Gate {
	return nn.NewGate(size)
}

// MDLSTM is a multi-dimensional LSTM cell.
type MDLSTM = nn.MDLSTM

// NewMDLSTM creates a cell of size cells and timedim state directions.
func NewMDLSTM(size, timedim int) *MDLSTM {
	return nn.NewMDLSTM(size, timedim)
}

// LSTM is a long short-term memory layer.
type LSTM = nn.LSTM

// NewLSTM creates a 4N→N LSTM layer.
func NewLSTM(size int) *LSTM {
	return nn.NewLSTM(size)
}

// Connections

// IdentityConnection copies values unchanged.
type IdentityConnection = nn.IdentityConnection

// NewIdentityConnection connects incoming to outgoing one to one.
func NewIdentityConnection(incoming, outgoing Module) (*IdentityConnection, error) {
	return nn.NewIdentityConnection(incoming, outgoing)
}

// NewIdentityConnectionSliced connects two slices one to one.
func NewIdentityConnectionSliced(incoming, outgoing Module, inStart, inStop, outStart, outStop int) (*IdentityConnection, error) {
	return nn.NewIdentityConnectionSliced(incoming, outgoing, inStart, inStop, outStart, outStop)
}

// LinearConnection weights every value separately.
type LinearConnection = nn.LinearConnection

// NewLinearConnection connects incoming to outgoing with one weight per
// value.
func NewLinearConnection(incoming, outgoing Module) (*LinearConnection, error) {
	return nn.NewLinearConnection(incoming, outgoing)
}

// NewLinearConnectionSliced connects two slices with one weight per value.
func NewLinearConnectionSliced(incoming, outgoing Module, inStart, inStop, outStart, outStop int) (*LinearConnection, error) {
	return nn.NewLinearConnectionSliced(incoming, outgoing, inStart, inStop, outStart, outStop)
}

// FullConnection is a dense weight matrix.
type FullConnection = nn.FullConnection

// NewFullConnection densely connects incoming to outgoing.
func NewFullConnection(incoming, outgoing Module) (*FullConnection, error) {
	return nn.NewFullConnection(incoming, outgoing)
}

// NewFullConnectionSliced densely connects two slices.
func NewFullConnectionSliced(incoming, outgoing Module, inStart, inStop, outStart, outStop int) (*FullConnection, error) {
	return nn.NewFullConnectionSliced(incoming, outgoing, inStart, inStop, outStart, outStop)
}

// NewFullConnectionWithParameters densely connects two slices with weights
// borrowed from data and grad.
func NewFullConnectionWithParameters(incoming, outgoing Module, data, grad []float64,
	inStart, inStop, outStart, outStop int) (*FullConnection, error) {
	return nn.NewFullConnectionWithParameters(incoming, outgoing, data, grad, inStart, inStop, outStart, outStop)
}

// PermutationConnection moves blocks of values to permuted positions.
type PermutationConnection = nn.PermutationConnection

// NewPermutationConnection permutes blocks of blocksize values.
func NewPermutationConnection(incoming, outgoing Module, perm []int, blocksize int) (*PermutationConnection, error) {
	return nn.NewPermutationConnection(incoming, outgoing, perm, blocksize)
}

// NewPermutationConnectionSliced permutes blocks between two slices.
func NewPermutationConnectionSliced(incoming, outgoing Module, perm []int, blocksize int,
	inStart, inStop, outStart, outStop int) (*PermutationConnection, error) {
	return nn.NewPermutationConnectionSliced(incoming, outgoing, perm, blocksize, inStart, inStop, outStart, outStop)
}

// Networks

// Role marks how a network uses a module.
type Role = nn.Role

// Module roles.
const (
	RoleHidden = nn.RoleHidden
	RoleInput  = nn.RoleInput
	RoleOutput = nn.RoleOutput
)

// Network runs an arbitrary graph of modules and connections.
type Network = nn.Network

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return nn.NewNetwork()
}

// Mdrnn sweeps a hidden module over a multi-dimensional input.
type Mdrnn = nn.Mdrnn

// MdrnnConfig describes an Mdrnn.
type MdrnnConfig = nn.MdrnnConfig

// ModuleFactory builds the hidden module of an Mdrnn.
type ModuleFactory = nn.ModuleFactory

// DefaultMdrnnConfig returns a config with all shapes set to one.
func DefaultMdrnnConfig(timedim, hiddensize int) MdrnnConfig {
	return nn.DefaultMdrnnConfig(timedim, hiddensize)
}

// NewMdrnn creates an Mdrnn.
func NewMdrnn(cfg MdrnnConfig, factory ModuleFactory) (*Mdrnn, error) {
	return nn.NewMdrnn(cfg, factory)
}

// Initialization

// Xavier fills p with Glorot-uniform values.
func Xavier(p *Parameters, fanIn, fanOut int, rng *rand.Rand) {
	nn.Xavier(p, fanIn, fanOut, rng)
}

// Uniform fills p with values from U(-bound, bound).
func Uniform(p *Parameters, bound float64, rng *rand.Rand) {
	nn.Uniform(p, bound, rng)
}

// Zeros sets all values of p to zero.
func Zeros(p *Parameters) {
	nn.Zeros(p)
}

// InitNetwork initializes all parameters of net.
func InitNetwork(net *Network, rng *rand.Rand) {
	nn.InitNetwork(net, rng)
}
