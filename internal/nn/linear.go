package nn

// Linear passes its input through unchanged, size N→N. It is the usual
// input, output and hidden node of a network when no squashing is wanted.
type Linear struct {
	layer
}

// NewLinear creates an N→N identity module.
func NewLinear(size int) *Linear {
	mustPositive("linear", size)
	l := &Linear{}
	l.init(l, size, size)
	return l
}

func (l *Linear) forward() {
	copy(l.output.Row(l.timestep), l.input.Row(l.timestep))
}

func (l *Linear) backward() {
	this := l.timestep - 1
	copy(l.inerror.Row(this), l.outerror.Row(this))
}
