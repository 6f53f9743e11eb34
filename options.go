package calc

// Option is an option for parsing or evaluating expressions. Options which
// don't apply to an operation are ignored by it, so the same list may be
// passed to both Parse and Eval.
type Option interface {
	apply(*config)
}

// Defaults for resource limits.
const (
	// DefaultMaxDepth is the default maximum nesting depth of parentheses,
	// unary operators, and right-associative exponentiations.
	DefaultMaxDepth = 200
	// DefaultMaxIntBits is the default maximum size of an exact integer
	// result. It is roughly the size of a 4900-digit decimal number.
	DefaultMaxIntBits = 1 << 14
)

// config holds the limits for one parse or evaluation.
type config struct {
	// depth is the maximum nesting depth of the parser.
	depth int
	// intbits is the maximum bit length of exact integer results.
	intbits int
}

type (
	depthopt   int
	intbitsopt int
)

func (o depthopt) apply(c *config) {
	c.depth = int(o)
}

func (o intbitsopt) apply(c *config) {
	c.intbits = int(o)
}

// MaxDepth sets the maximum nesting depth that Parse accepts. Deeper inputs
// are rejected with a *DepthError. A non-positive n selects DefaultMaxDepth.
func MaxDepth(n int) Option {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	return depthopt(n)
}

// MaxIntBits sets the maximum bit length of exact integer results during
// evaluation. Larger results are rejected with an *IntSizeError. A
// non-positive n selects DefaultMaxIntBits.
func MaxIntBits(n int) Option {
	if n <= 0 {
		n = DefaultMaxIntBits
	}
	return intbitsopt(n)
}

// newConfig applies options in order over the defaults.
func newConfig(opts []Option) config {
	c := config{
		depth:   DefaultMaxDepth,
		intbits: DefaultMaxIntBits,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&c)
	}
	return c
}
