package nn

// PermutationConnection moves fixed-size blocks of the incoming slice to
// permuted positions in the outgoing slice: block i of the source is added
// to block perm[i] of the target.
//
// Example:
//
//	// Reverse two blocks of three values each.
//	con, err := nn.NewPermutationConnection(in, out, []int{1, 0}, 3)
type PermutationConnection struct {
	connection
	perm      []int
	blocksize int
}

// NewPermutationConnection permutes the whole output of incoming into the
// whole input of outgoing in blocks of blocksize values.
func NewPermutationConnection(incoming, outgoing Module, perm []int, blocksize int) (*PermutationConnection, error) {
	return NewPermutationConnectionSliced(incoming, outgoing, perm, blocksize,
		0, incoming.OutSize(), 0, outgoing.InSize())
}

// NewPermutationConnectionSliced permutes incoming output [inStart, inStop)
// into outgoing input [outStart, outStop). Both slices must hold exactly
// len(perm) blocks.
func NewPermutationConnectionSliced(incoming, outgoing Module, perm []int, blocksize int,
	inStart, inStop, outStart, outStop int) (*PermutationConnection, error) {
	c := &PermutationConnection{blocksize: blocksize}
	if err := c.init(c, incoming, outgoing, inStart, inStop, outStart, outStop); err != nil {
		return nil, err
	}
	if blocksize <= 0 {
		return nil, configErrorf("permutation connection", ErrInvalidShape, "block size %d", blocksize)
	}
	if c.inLen() != c.outLen() || c.inLen() != len(perm)*blocksize {
		return nil, configErrorf("permutation connection", ErrDimensionMismatch,
			"slices %d and %d for %d blocks of %d", c.inLen(), c.outLen(), len(perm), blocksize)
	}

	seen := make([]bool, len(perm))
	for i, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return nil, configErrorf("permutation connection", ErrInvalidPermutation, "position %d maps to %d", i, p)
		}
		seen[p] = true
	}
	c.perm = append([]int(nil), perm...)
	return c, nil
}

// Permutation returns a copy of the block permutation.
func (c *PermutationConnection) Permutation() []int {
	return append([]int(nil), c.perm...)
}

// BlockSize returns the number of values per block.
func (c *PermutationConnection) BlockSize() int {
	return c.blocksize
}

func (c *PermutationConnection) forward(src, dst []float64) {
	b := c.blocksize
	for i, p := range c.perm {
		for j := range b {
			dst[p*b+j] += src[i*b+j]
		}
	}
}

func (c *PermutationConnection) backward(dstErr, srcErr, _ []float64) {
	b := c.blocksize
	for i, p := range c.perm {
		for j := range b {
			srcErr[i*b+j] += dstErr[p*b+j]
		}
	}
}
