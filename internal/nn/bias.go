package nn

// Bias is a 1→1 module that always outputs 1. Connected through a weighted
// connection it adds a trainable offset to the target.
//
// Bias is error-agnostic: a network never backpropagates into it, but the
// connections leaving it still accumulate their derivatives.
type Bias struct {
	layer
}

// NewBias creates a bias module.
func NewBias() *Bias {
	b := &Bias{}
	b.init(b, 1, 1)
	b.mode = ErrorAgnostic
	return b
}

// SetMode changes the mode. The error-agnostic flag is always kept.
func (b *Bias) SetMode(mode Mode) {
	b.mode = mode | ErrorAgnostic
}

func (b *Bias) forward() {
	b.output.Row(b.timestep)[0] = 1
}

func (b *Bias) backward() {}
