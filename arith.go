package calc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// bigprec is the precision of real arithmetic on integers too large for a
// float64.
const bigprec = 64

// intResult checks that an integer result is within the size limit.
func (c *config) intResult(z *big.Int, op string) (Value, error) {
	if z.BitLen() > c.intbits {
		return Value{}, &IntSizeError{Op: op, Max: c.intbits}
	}
	return Value{i: z}, nil
}

// realResult checks that a real result is finite.
func realResult(f float64, op string) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, &OverflowError{Op: op}
	}
	return Float(f), nil
}

// reals converts both operands of a binary operator to float64.
func reals(op string, x, y Value) (float64, float64, error) {
	a, err := x.real(op, 1)
	if err != nil {
		return 0, 0, err
	}
	b, err := y.real(op, 2)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// arith applies a binary operator.
func (c *config) arith(kind nodeKind, x, y Value) (Value, error) {
	op := kind.symbol()
	switch kind {
	case nodeAdd:
		if x.i != nil && y.i != nil {
			return c.intResult(new(big.Int).Add(x.i, y.i), op)
		}
		a, b, err := reals(op, x, y)
		if err != nil {
			return Value{}, err
		}
		return realResult(a+b, op)
	case nodeSub:
		if x.i != nil && y.i != nil {
			return c.intResult(new(big.Int).Sub(x.i, y.i), op)
		}
		a, b, err := reals(op, x, y)
		if err != nil {
			return Value{}, err
		}
		return realResult(a-b, op)
	case nodeMul:
		if x.i != nil && y.i != nil {
			if x.i.BitLen()+y.i.BitLen() > c.intbits+1 {
				// The product has at least BitLen(x)+BitLen(y)-1 bits.
				return Value{}, &IntSizeError{Op: op, Max: c.intbits}
			}
			return c.intResult(new(big.Int).Mul(x.i, y.i), op)
		}
		a, b, err := reals(op, x, y)
		if err != nil {
			return Value{}, err
		}
		return realResult(a*b, op)
	case nodeDiv:
		return div(x, y)
	case nodePow:
		return c.pow(x, y, op)
	default:
		panic("calc: invalid binary operator " + kind.String())
	}
}

// div divides x by y. The result is always real. Division of integers is
// correctly rounded.
func div(x, y Value) (Value, error) {
	if y.sign() == 0 && (y.i != nil || !math.IsNaN(y.f)) {
		return Value{}, &ZeroDivisionError{Op: "/"}
	}
	if x.i != nil && y.i != nil {
		f, _ := new(big.Rat).SetFrac(x.i, y.i).Float64()
		return realResult(f, "/")
	}
	a, b, err := reals("/", x, y)
	if err != nil {
		return Value{}, err
	}
	return realResult(a/b, "/")
}

// neg negates x.
func neg(x Value) Value {
	if x.i != nil {
		return Value{i: new(big.Int).Neg(x.i)}
	}
	return Float(-x.f)
}

// pow raises x to the power y. op names the operation for errors.
func (c *config) pow(x, y Value, op string) (Value, error) {
	if x.i != nil && y.i != nil && y.i.Sign() >= 0 {
		return c.intPow(x.i, y.i, op)
	}
	if x.sign() == 0 && y.sign() < 0 {
		return Value{}, &ZeroDivisionError{Op: op}
	}
	if x.sign() < 0 && !y.integral() {
		return Value{}, &DomainError{X: x, Arg: 1, Func: op}
	}
	e, err := y.real(op, 2)
	if err != nil {
		return Value{}, err
	}
	b, err := x.real(op, 1)
	if err != nil {
		// Only an integer base can fail to convert.
		return bigPow(x.i, e, op)
	}
	return realResult(math.Pow(b, e), op)
}

// intPow computes b**e for e >= 0 exactly, refusing results which would exceed
// the integer size limit before computing them.
func (c *config) intPow(b, e *big.Int, op string) (Value, error) {
	if b.CmpAbs(big.NewInt(1)) <= 0 {
		// 0, 1, and -1 have results in {-1, 0, 1} for any exponent.
		switch {
		case e.Sign() == 0:
			return Int(1), nil
		case b.Sign() < 0 && e.Bit(0) == 1:
			return Int(-1), nil
		default:
			return Value{i: new(big.Int).Abs(b)}, nil
		}
	}
	// The result has at least (BitLen(b)-1)*e+1 bits.
	if !e.IsInt64() || e.Int64() > int64(c.intbits)/int64(b.BitLen()-1) {
		return Value{}, &IntSizeError{Op: op, Max: c.intbits}
	}
	return c.intResult(new(big.Int).Exp(b, e, nil), op)
}

// bigPow computes b**e for an integer b too large for a float64. If b is
// negative, then e is an integer.
func bigPow(b *big.Int, e float64, op string) (v Value, err error) {
	defer func() {
		// bigfloat panics with big.ErrNaN on results it cannot represent.
		if r := recover(); r != nil {
			if _, ok := r.(big.ErrNaN); !ok {
				panic(r)
			}
			v, err = Value{}, &OverflowError{Op: op}
		}
	}()
	// |b| >= 2**1024, so the result is out of range unless |e| is small.
	if bits := float64(b.BitLen()-1) * math.Abs(e); bits > 1100 {
		if e < 0 {
			return Float(0), nil
		}
		return Value{}, &OverflowError{Op: op}
	}
	x := new(big.Float).SetPrec(bigprec).SetInt(b)
	x.Abs(x)
	y := new(big.Float).SetPrec(bigprec).SetFloat64(e)
	z := new(big.Float).SetPrec(bigprec)
	bigfloat.Pow(z, x, y)
	if b.Sign() < 0 && math.Mod(e, 2) != 0 {
		z.Neg(z)
	}
	f, _ := z.Float64()
	return realResult(f, op)
}

// ZeroDivisionError is an error returned when dividing by zero or raising zero
// to a negative power.
type ZeroDivisionError struct {
	// Op is the operator or function that divided by zero.
	Op string
}

func (err *ZeroDivisionError) Error() string {
	return "division by zero in " + err.Op
}

// OverflowError is an error returned when a real result is infinite or not a
// number.
type OverflowError struct {
	// Op is the operator or function whose result was out of range.
	Op string
}

func (err *OverflowError) Error() string {
	return "result of " + err.Op + " out of range"
}

// IntSizeError is an error returned when an exact integer result would exceed
// the size limit set by MaxIntBits.
type IntSizeError struct {
	// Op is the operator or function whose result was too large.
	Op string
	// Max is the limit in bits.
	Max int
}

func (err *IntSizeError) Error() string {
	return "integer result of " + err.Op + " exceeds " + strconv.Itoa(err.Max) + " bits"
}

// ConversionError is an error returned when an integer is too large to
// convert to a float64 for an operation on reals.
type ConversionError struct {
	// Op is the operator or function that needed a real.
	Op string
	// Arg is the 1-based index of the argument.
	Arg int
}

func (err *ConversionError) Error() string {
	return "integer too large to convert to float (argument " + strconv.Itoa(err.Arg) + " of " + err.Op + ")"
}
