package calc

import (
	"math"
	"math/big"
	"slices"
	"strconv"
)

// function is a function of the symbol table.
type function interface {
	// call evaluates the function. args has a length for which canCall
	// returned true.
	call(c *config, args []Value) (Value, error)

	// canCall returns whether the function can be called with n arguments.
	canCall(n int) bool
}

// SymbolKind is the kind of a name in the symbol table.
type SymbolKind int

const (
	// Constant is a named number, e.g. pi.
	Constant SymbolKind = iota + 1
	// Function is a named function, which must be called with arguments.
	Function
)

func (k SymbolKind) String() string {
	switch k {
	case Constant:
		return "constant"
	case Function:
		return "function"
	default:
		return "SymbolKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// symbol is an entry in the symbol table. Exactly one of fn and arity is
// meaningful, according to kind.
type symbol struct {
	kind  SymbolKind
	val   Value
	fn    function
	arity int
}

// symbols is the symbol table. It is never modified.
var symbols = map[string]symbol{
	"pi": {kind: Constant, val: Float(math.Pi)},
	"e":  {kind: Constant, val: Float(math.E)},

	"sqrt":  fn(monadic{"sqrt", sqrt}),
	"sin":   fn(monadic{"sin", realfn("sin", math.Sin)}),
	"cos":   fn(monadic{"cos", realfn("cos", math.Cos)}),
	"tan":   fn(monadic{"tan", realfn("tan", math.Tan)}),
	"abs":   fn(monadic{"abs", abs}),
	"round": fn(monadic{"round", round}),

	"min": fn(dyadic{"min", func(c *config, x, y Value) (Value, error) { return choose(x, y, -1), nil }}),
	"max": fn(dyadic{"max", func(c *config, x, y Value) (Value, error) { return choose(x, y, 1), nil }}),
	"pow": fn(dyadic{"pow", func(c *config, x, y Value) (Value, error) { return c.pow(x, y, "pow") }}),
}

func fn(f interface {
	function
	arity() int
}) symbol {
	return symbol{kind: Function, fn: f, arity: f.arity()}
}

// Symbols returns the names in the symbol table in sorted order.
func Symbols() []string {
	r := make([]string, 0, len(symbols))
	for k := range symbols {
		r = append(r, k)
	}
	slices.Sort(r)
	return r
}

// Lookup returns the kind of a name in the symbol table and, for functions,
// the number of arguments it takes. ok is false if the name is not in the
// table.
func Lookup(name string) (kind SymbolKind, arity int, ok bool) {
	s, ok := symbols[name]
	if !ok {
		return 0, 0, false
	}
	return s.kind, s.arity, true
}

type monadic struct {
	name string
	f    func(c *config, x Value) (Value, error)
}

func (m monadic) call(c *config, args []Value) (Value, error) {
	return m.f(c, args[0])
}

func (m monadic) canCall(n int) bool {
	return n == 1
}

func (m monadic) arity() int {
	return 1
}

type dyadic struct {
	name string
	f    func(c *config, x, y Value) (Value, error)
}

func (d dyadic) call(c *config, args []Value) (Value, error) {
	return d.f(c, args[0], args[1])
}

func (d dyadic) canCall(n int) bool {
	return n == 2
}

func (d dyadic) arity() int {
	return 2
}

// realfn wraps a function of float64.
func realfn(name string, f func(float64) float64) func(*config, Value) (Value, error) {
	return func(c *config, x Value) (Value, error) {
		a, err := x.real(name, 1)
		if err != nil {
			return Value{}, err
		}
		return realResult(f(a), name)
	}
}

func sqrt(c *config, x Value) (Value, error) {
	if x.sign() < 0 {
		return Value{}, &DomainError{X: x, Arg: 1, Func: "sqrt"}
	}
	a, err := x.real("sqrt", 1)
	if err != nil {
		// Integer too large for a float64.
		z := new(big.Float).SetPrec(bigprec).SetInt(x.i)
		f, _ := z.Sqrt(z).Float64()
		return realResult(f, "sqrt")
	}
	return realResult(math.Sqrt(a), "sqrt")
}

func abs(c *config, x Value) (Value, error) {
	if x.i != nil {
		return Value{i: new(big.Int).Abs(x.i)}, nil
	}
	return Float(math.Abs(x.f)), nil
}

// round rounds half to even, giving an integer.
func round(c *config, x Value) (Value, error) {
	if x.i != nil {
		return x, nil
	}
	if math.IsInf(x.f, 0) || math.IsNaN(x.f) {
		return Value{}, &DomainError{X: x, Arg: 1, Func: "round"}
	}
	z, _ := new(big.Float).SetFloat64(math.RoundToEven(x.f)).Int(nil)
	return c.intResult(z, "round")
}

// choose returns x if x compares to y with the given sign or equal, otherwise
// y. Ties go to x.
func choose(x, y Value, sign int) Value {
	if c := y.Cmp(x); c != 0 && c == sign {
		return y
	}
	return x
}

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X Value
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
